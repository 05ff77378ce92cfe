package models

import "gorm.io/gorm"

const (
	OrderStatusPlaced     = "placed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether status is one of the known order states.
// There is no enforced transition order, an admin may set any status.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPlaced, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	gorm.Model
	UserID     uint        `json:"userId" gorm:"index"`
	TotalCents int64       `json:"totalCents"`
	Status     string      `json:"status"`
	OrderItems []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a historical snapshot: Name and PriceCents are frozen at
// checkout time and never follow later product edits.
type OrderItem struct {
	gorm.Model
	OrderID    uint   `json:"orderId"`
	ProductID  uint   `json:"productId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}
