package models

import "gorm.io/gorm"

// CartItem belongs either to a logged-in user (UserID set) or to an
// anonymous guest session (SessionID set), never both.
type CartItem struct {
	gorm.Model
	UserID    *uint   `json:"userId,omitempty" gorm:"index"`
	SessionID string  `json:"sessionId,omitempty" gorm:"index;size:64"`
	ProductID uint    `json:"productId"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity"`
}
