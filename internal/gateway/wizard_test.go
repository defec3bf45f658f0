package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellWizard_IncompleteDraftDoesNotSubmit(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	wizard := NewSellWizard(NewWithBase(srv.URL, newTestStore()))
	wizard.SetDetails(Details{MaterialID: 1, Quantity: 5, Address: "12 Canal Road"})

	_, err := wizard.Submit()

	assert.ErrorIs(t, err, ErrIncompleteDraft)
	assert.False(t, called, "nothing may reach the server before the terminal step")
}

func TestSellWizard_StepsMergeIntoOnePayload(t *testing.T) {
	var got PickupDraft
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeEnvelope(w, 201, map[string]any{
			"success": true,
			"data":    map[string]any{"ID": 10, "status": "Pending"},
		})
	}))
	defer srv.Close()

	wizard := NewSellWizard(NewWithBase(srv.URL, newTestStore()))
	wizard.SetDetails(Details{MaterialID: 3, Quantity: 12.5, Address: "12 Canal Road", PickupDate: "2026-09-10"})
	wizard.SetPayment(Payment{Method: "JazzCash", AccountName: "Sara", AccountNumber: "03001234567"})

	pickup, err := wizard.Submit()

	require.NoError(t, err)
	assert.Equal(t, uint(10), pickup.ID)
	assert.Equal(t, uint(3), got.MaterialID)
	assert.Equal(t, 12.5, got.Quantity)
	assert.Equal(t, "JazzCash", got.PayoutMethod)
	assert.Equal(t, "03001234567", got.AccountNumber)
}

func TestSellWizard_ReenteringAStepKeepsTheOther(t *testing.T) {
	wizard := NewSellWizard(NewWithBase("http://unused", newTestStore()))
	wizard.SetDetails(Details{MaterialID: 1, Quantity: 2, Address: "A"})
	wizard.SetPayment(Payment{Method: "Cash"})

	// Going back to details must not wipe the payment step.
	wizard.SetDetails(Details{MaterialID: 1, Quantity: 4, Address: "B"})

	draft := wizard.Draft()
	assert.Equal(t, 4.0, draft.Quantity)
	assert.Equal(t, "B", draft.Address)
	assert.Equal(t, "Cash", draft.PayoutMethod)
	assert.True(t, wizard.Complete())
}

func TestSellWizard_FailureKeepsDraftForRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 422, map[string]any{
			"success": false,
			"message": "Validation failed",
			"errors":  map[string]string{"accountNumber": "The accountNumber field must be 11 digits."},
		})
	}))
	defer srv.Close()

	wizard := NewSellWizard(NewWithBase(srv.URL, newTestStore()))
	wizard.SetDetails(Details{MaterialID: 1, Quantity: 2, Address: "A"})
	wizard.SetPayment(Payment{Method: "JazzCash", AccountName: "Sara", AccountNumber: "bad"})

	_, err := wizard.Submit()

	require.Error(t, err)
	assert.True(t, wizard.Complete(), "a rejected draft stays editable")
	assert.Equal(t, "bad", wizard.Draft().AccountNumber)
}

func TestSellWizard_SuccessDiscardsDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 201, map[string]any{
			"success": true,
			"data":    map[string]any{"ID": 1, "status": "Pending"},
		})
	}))
	defer srv.Close()

	wizard := NewSellWizard(NewWithBase(srv.URL, newTestStore()))
	wizard.SetDetails(Details{MaterialID: 1, Quantity: 2, Address: "A"})
	wizard.SetPayment(Payment{Method: "Cash"})

	_, err := wizard.Submit()

	require.NoError(t, err)
	assert.False(t, wizard.Complete())
	assert.Equal(t, PickupDraft{}, wizard.Draft())
}
