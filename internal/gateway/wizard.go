package gateway

import (
	"errors"

	"github.com/ecotrackhq/ecotrack/app/models"
)

// ErrIncompleteDraft is returned by Submit when a required step has not
// been filled in yet.
var ErrIncompleteDraft = errors.New("gateway: sell draft is incomplete")

// Details is the first sell-wizard step: what is being sold and where
// to collect it.
type Details struct {
	MaterialID uint
	Quantity   float64
	Address    string
	PickupDate string
	Notes      string
}

// Payment is the second step: how the seller wants to be paid.
type Payment struct {
	Method        string
	AccountName   string
	AccountNumber string
}

// SellWizard accumulates the sell flow across its steps and submits
// everything as one request at the end. Each step overwrites only its
// own fields, so going back and re-entering a step never loses the
// other step's answers. Nothing touches the server until Submit.
type SellWizard struct {
	client *Client
	draft  PickupDraft

	hasDetails bool
	hasPayment bool
}

func NewSellWizard(client *Client) *SellWizard {
	return &SellWizard{client: client}
}

// SetDetails records the pickup details step.
func (w *SellWizard) SetDetails(d Details) {
	w.draft.MaterialID = d.MaterialID
	w.draft.Quantity = d.Quantity
	w.draft.Address = d.Address
	w.draft.PickupDate = d.PickupDate
	w.draft.Notes = d.Notes
	w.hasDetails = true
}

// SetPayment records the payout step.
func (w *SellWizard) SetPayment(p Payment) {
	w.draft.PayoutMethod = p.Method
	w.draft.AccountName = p.AccountName
	w.draft.AccountNumber = p.AccountNumber
	w.hasPayment = true
}

// Draft returns the payload accumulated so far, for review screens.
func (w *SellWizard) Draft() PickupDraft {
	return w.draft
}

// Complete reports whether every step has been filled in.
func (w *SellWizard) Complete() bool {
	return w.hasDetails && w.hasPayment
}

// Submit sends the merged draft as a single pickup request. On success
// the draft is discarded so the wizard can be reused; on any failure,
// including validation errors from the server, the draft is kept so the
// user can fix one field and resubmit instead of starting over.
func (w *SellWizard) Submit() (models.PickupRequest, error) {
	if !w.Complete() {
		return models.PickupRequest{}, ErrIncompleteDraft
	}

	pickup, err := w.client.CreatePickup(w.draft)
	if err != nil {
		return models.PickupRequest{}, err
	}

	w.Reset()
	return pickup, nil
}

// Reset clears the draft and step progress.
func (w *SellWizard) Reset() {
	w.draft = PickupDraft{}
	w.hasDetails = false
	w.hasPayment = false
}
