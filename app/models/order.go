package models

import "gorm.io/gorm"

// Order fulfilment statuses. The progression is strictly forward:
// Pending → Shipped → Delivered.
const (
	OrderPending   = "Pending"
	OrderShipped   = "Shipped"
	OrderDelivered = "Delivered"
)

// Order is a shop purchase with its line items.
type Order struct {
	gorm.Model
	UserID          uint        `gorm:"not null;index" json:"userId"`
	User            User        `json:"user,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	Total           float64     `gorm:"not null" json:"total"`
	Status          string      `gorm:"size:50;default:Pending;index" json:"status"`
	ShippingAddress string      `gorm:"size:512" json:"shippingAddress"`
}

// OrderItem is one product line on an order. UnitPrice is the product
// price at purchase time, so later catalogue edits do not rewrite
// history.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"orderId"`
	ProductID uint    `gorm:"not null;index" json:"productId"`
	Product   Product `json:"product,omitempty"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unitPrice"`
}

var orderRank = map[string]int{
	OrderPending:   0,
	OrderShipped:   1,
	OrderDelivered: 2,
}

// CanTransitionOrder reports whether an order status change moves
// strictly forward through the fulfilment pipeline.
func CanTransitionOrder(from, to string) bool {
	fromRank, okFrom := orderRank[from]
	toRank, okTo := orderRank[to]
	return okFrom && okTo && toRank == fromRank+1
}
