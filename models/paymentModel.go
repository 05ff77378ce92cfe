package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment records a payment-intent created with the payment provider.
// Response keeps the raw provider payload for later inspection.
type Payment struct {
	gorm.Model
	OrderID     *uint          `json:"orderId,omitempty"`
	UserID      uint           `json:"userId"`
	AmountCents int64          `json:"amountCents"`
	Currency    string         `json:"currency"`
	IntentID    string         `json:"intentId"`
	Status      string         `json:"status"`
	Response    datatypes.JSON `json:"-"`
}
