package models

import "gorm.io/gorm"

// Product is a recycled-goods catalogue item sold through the shop.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	SKU         string  `gorm:"size:100;uniqueIndex" json:"sku"`
	Type        string  `gorm:"size:100;index" json:"type"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	ImageURL    string  `gorm:"size:512" json:"imageUrl,omitempty"`
}
