package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/pkg/collection"
	"github.com/ecotrackhq/ecotrack/pkg/crypt"
	"github.com/ecotrackhq/ecotrack/pkg/event"
	"github.com/ecotrackhq/ecotrack/pkg/metrics"
)

// PickupService manages pickup requests from submission through the
// admin decision lifecycle.
type PickupService struct {
	pickups   *repositories.PickupRepository
	materials *repositories.MaterialRepository
}

func NewPickupService(pickups *repositories.PickupRepository, materials *repositories.MaterialRepository) *PickupService {
	return &PickupService{pickups: pickups, materials: materials}
}

// PickupInput is the single terminal payload the sell wizard submits:
// material details and payout details together.
type PickupInput struct {
	MaterialID uint    `json:"materialId" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"required,gt=0"`
	Address    string  `json:"address" validate:"required,min=5,max=512"`
	PickupDate string  `json:"pickupDate" validate:"nullable,date"`
	Notes      string  `json:"notes" validate:"nullable,max=2000"`

	PayoutMethod  string `json:"payoutMethod" validate:"required,in=Cash,JazzCash,EasyPaisa"`
	AccountName   string `json:"accountName" validate:"nullable,max=255"`
	AccountNumber string `json:"accountNumber" validate:"nullable,max=50"`
}

// Create records a pending pickup request for userID. Mobile-wallet
// payouts require account details, which are encrypted before they
// touch the database.
func (s *PickupService) Create(userID uint, in PickupInput) (models.PickupRequest, error) {
	if _, err := s.materials.FindByID(in.MaterialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PickupRequest{}, ErrNotFound
		}
		return models.PickupRequest{}, err
	}

	pickup := models.PickupRequest{
		UserID:       userID,
		MaterialID:   in.MaterialID,
		Quantity:     in.Quantity,
		Address:      in.Address,
		PickupDate:   in.PickupDate,
		Notes:        in.Notes,
		PayoutMethod: in.PayoutMethod,
		Status:       models.PickupPending,
	}

	if in.PayoutMethod != models.PayoutCash {
		encName, err := crypt.Encrypt(in.AccountName)
		if err != nil {
			return models.PickupRequest{}, err
		}
		encNumber, err := crypt.Encrypt(in.AccountNumber)
		if err != nil {
			return models.PickupRequest{}, err
		}
		pickup.AccountName = encName
		pickup.AccountNumber = encNumber
	}

	if err := s.pickups.Create(&pickup); err != nil {
		return models.PickupRequest{}, err
	}

	event.FireAsync(event.PickupCreated, pickup)
	return s.redact(pickup), nil
}

// List returns pickups for the dashboard, payout details decrypted.
func (s *PickupService) List(status string) ([]models.PickupRequest, error) {
	pickups, err := s.pickups.All(status)
	if err != nil {
		return nil, err
	}
	return collection.Map(pickups, s.reveal), nil
}

// ForUser returns a seller's own pickups with payout details redacted.
func (s *PickupService) ForUser(userID uint) ([]models.PickupRequest, error) {
	pickups, err := s.pickups.ForUser(userID)
	if err != nil {
		return nil, err
	}
	return collection.Map(pickups, s.redact), nil
}

// Get returns one pickup with payout details decrypted for the dashboard.
func (s *PickupService) Get(id uint) (models.PickupRequest, error) {
	pickup, err := s.pickups.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PickupRequest{}, ErrNotFound
		}
		return models.PickupRequest{}, err
	}
	return s.reveal(pickup), nil
}

// AcceptInput carries the collection plan an admin attaches when
// accepting a pickup. Both fields are optional and may be filled in
// later by a second accept of the same request.
type AcceptInput struct {
	ScheduledTime string `json:"scheduledTime" validate:"nullable,max=50"`
	DriverName    string `json:"driverName" validate:"nullable,max=255"`
}

// Accept moves a pending pickup to Accepted, recording the schedule and
// assigned driver when given.
func (s *PickupService) Accept(id uint, in AcceptInput) (models.PickupRequest, error) {
	return s.transition(id, models.PickupAccepted, func(p *models.PickupRequest) {
		p.ScheduledTime = in.ScheduledTime
		p.DriverName = in.DriverName
	})
}

// Reject moves a pending pickup to Rejected. A reason is mandatory so
// the seller learns why.
func (s *PickupService) Reject(id uint, reason string) (models.PickupRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return models.PickupRequest{}, ErrReasonRequired
	}
	return s.transition(id, models.PickupRejected, func(p *models.PickupRequest) {
		p.RejectionReason = reason
	})
}

// Complete moves an accepted pickup to Completed after collection.
func (s *PickupService) Complete(id uint) (models.PickupRequest, error) {
	return s.transition(id, models.PickupCompleted, nil)
}

func (s *PickupService) transition(id uint, to string, apply func(*models.PickupRequest)) (models.PickupRequest, error) {
	pickup, err := s.pickups.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PickupRequest{}, ErrNotFound
		}
		return models.PickupRequest{}, err
	}

	if !models.CanTransitionPickup(pickup.Status, to) {
		return models.PickupRequest{}, ErrInvalidTransition
	}

	pickup.Status = to
	if apply != nil {
		apply(&pickup)
	}
	if err := s.pickups.Update(&pickup); err != nil {
		return models.PickupRequest{}, err
	}

	metrics.PickupDecisions.WithLabelValues(to).Inc()
	switch to {
	case models.PickupAccepted:
		event.FireAsync(event.PickupAccepted, pickup)
	case models.PickupRejected:
		event.FireAsync(event.PickupRejected, pickup)
	case models.PickupCompleted:
		event.FireAsync(event.PickupCompleted, pickup)
	}

	return s.reveal(pickup), nil
}

// reveal decrypts payout account fields for dashboard consumers.
// Fields that fail to decrypt are blanked rather than leaked raw.
func (s *PickupService) reveal(p models.PickupRequest) models.PickupRequest {
	if p.AccountName != "" {
		if plain, err := crypt.Decrypt(p.AccountName); err == nil {
			p.AccountName = plain
		} else {
			p.AccountName = ""
		}
	}
	if p.AccountNumber != "" {
		if plain, err := crypt.Decrypt(p.AccountNumber); err == nil {
			p.AccountNumber = plain
		} else {
			p.AccountNumber = ""
		}
	}
	return p
}

// redact strips payout account fields entirely for seller-facing views.
func (s *PickupService) redact(p models.PickupRequest) models.PickupRequest {
	p.AccountName = ""
	p.AccountNumber = ""
	return p
}
