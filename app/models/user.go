package models

import "gorm.io/gorm"

// User is an account on the platform. Role is one of Customer, Admin,
// or Manager; only the latter two may enter the dashboard.
type User struct {
	gorm.Model
	FirstName string `gorm:"size:255;not null" json:"firstName"`
	LastName  string `gorm:"size:255;not null" json:"lastName"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role      string `gorm:"size:50;default:Customer" json:"role"`
}
