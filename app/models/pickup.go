package models

import "gorm.io/gorm"

// Pickup request lifecycle. Pending requests may be accepted or
// rejected; accepted requests may be completed. Rejected and Completed
// are terminal.
const (
	PickupPending   = "Pending"
	PickupAccepted  = "Accepted"
	PickupRejected  = "Rejected"
	PickupCompleted = "Completed"
)

// Payout methods a seller can choose on the sell wizard.
const (
	PayoutCash      = "Cash"
	PayoutJazzCash  = "JazzCash"
	PayoutEasyPaisa = "EasyPaisa"
)

// PickupRequest is a seller's offer of recyclable material, created by
// the sell wizard in a single submission.
type PickupRequest struct {
	gorm.Model
	UserID     uint     `gorm:"not null;index" json:"userId"`
	User       User     `json:"user,omitempty"`
	MaterialID uint     `gorm:"not null;index" json:"materialId"`
	Material   Material `json:"material,omitempty"`

	Quantity   float64 `gorm:"not null" json:"quantity"`
	Address    string  `gorm:"size:512;not null" json:"address"`
	PickupDate string  `gorm:"size:50" json:"pickupDate,omitempty"`
	Notes      string  `gorm:"type:text" json:"notes,omitempty"`

	// Payout details. The account fields are stored AES-GCM encrypted
	// and only decrypted for dashboard display.
	PayoutMethod  string `gorm:"size:50;not null" json:"payoutMethod"`
	AccountName   string `gorm:"size:512" json:"accountName,omitempty"`
	AccountNumber string `gorm:"size:512" json:"accountNumber,omitempty"`

	Status string `gorm:"size:50;default:Pending;index" json:"status"`

	// Set by the admin decision: collection schedule on accept, the
	// reason on reject.
	ScheduledTime   string `gorm:"size:50" json:"scheduledTime,omitempty"`
	DriverName      string `gorm:"size:255" json:"driverName,omitempty"`
	RejectionReason string `gorm:"type:text" json:"rejectionReason,omitempty"`
}

// CanTransitionPickup reports whether a pickup may move from one status
// to another.
func CanTransitionPickup(from, to string) bool {
	switch from {
	case PickupPending:
		return to == PickupAccepted || to == PickupRejected
	case PickupAccepted:
		return to == PickupCompleted
	default:
		return false
	}
}
