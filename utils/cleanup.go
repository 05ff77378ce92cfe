package utils

import (
	"log"
	"time"

	"github.com/catchy/catchy-api/models"
	"gorm.io/gorm"
)

// GuestCartRetention is how long an untouched guest cart row survives
// before the sweep removes it.
const GuestCartRetention = 30 * 24 * time.Hour

// RunCleanup deletes expired verification and password reset tokens and
// stale guest cart rows. Delete-only, so it is safe to run while
// requests are creating and consuming tokens.
func RunCleanup(db *gorm.DB) {
	now := time.Now()

	if err := db.Unscoped().Where("expires_at < ?", now).Delete(&models.VerificationToken{}).Error; err != nil {
		log.Println("Cleanup: verification tokens:", err)
	}
	if err := db.Unscoped().Where("expires_at < ?", now).Delete(&models.PasswordResetToken{}).Error; err != nil {
		log.Println("Cleanup: password reset tokens:", err)
	}

	cutoff := now.Add(-GuestCartRetention)
	if err := db.Unscoped().
		Where("user_id IS NULL AND session_id <> '' AND updated_at < ?", cutoff).
		Delete(&models.CartItem{}).Error; err != nil {
		log.Println("Cleanup: guest cart items:", err)
	}
}

// StartCleanupJob runs RunCleanup on a fixed interval in the background.
func StartCleanupJob(db *gorm.DB, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			RunCleanup(db)
		}
	}()
}
