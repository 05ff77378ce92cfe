package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationToken authorizes a single email-verification callback.
// Deleted on use or by the periodic expiry sweep.
type VerificationToken struct {
	gorm.Model
	Token     string    `json:"token" gorm:"uniqueIndex;size:64"`
	UserID    uint      `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PasswordResetToken authorizes a single password change.
type PasswordResetToken struct {
	gorm.Model
	Token     string    `json:"token" gorm:"uniqueIndex;size:64"`
	UserID    uint      `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
