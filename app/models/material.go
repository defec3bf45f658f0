package models

import "gorm.io/gorm"

// Material is a recyclable material the platform buys from sellers.
// PricePerUnit is quoted in PKR against Unit (kg, litre, piece).
type Material struct {
	gorm.Model
	Name         string  `gorm:"size:255;not null;index" json:"name"`
	Code         string  `gorm:"size:100;uniqueIndex" json:"code"`
	Description  string  `gorm:"type:text" json:"description"`
	Unit         string  `gorm:"size:50;default:kg" json:"unit"`
	PricePerUnit float64 `gorm:"not null;default:0" json:"pricePerUnit"`
	Hazardous    bool    `gorm:"default:false" json:"hazardous"`
}
