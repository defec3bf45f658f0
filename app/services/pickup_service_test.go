package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/crypt"
)

func newPickupService(t *testing.T) (*services.PickupService, *testDeps) {
	db := setupDB(t)
	deps := &testDeps{db: db, material: seedMaterial(t, db)}
	svc := services.NewPickupService(
		repositories.NewPickupRepository(db),
		repositories.NewMaterialRepository(db),
	)
	return svc, deps
}

func walletInput(materialID uint) services.PickupInput {
	return services.PickupInput{
		MaterialID:    materialID,
		Quantity:      12.5,
		Address:       "12 Canal Road, Lahore",
		PayoutMethod:  models.PayoutJazzCash,
		AccountName:   "Sara Khan",
		AccountNumber: "03001234567",
	}
}

func TestPickupService_CreateEncryptsWalletDetails(t *testing.T) {
	svc, deps := newPickupService(t)

	created, err := svc.Create(1, walletInput(deps.material.ID))
	require.NoError(t, err)

	// The caller-facing copy is redacted.
	assert.Empty(t, created.AccountName)
	assert.Empty(t, created.AccountNumber)
	assert.Equal(t, models.PickupPending, created.Status)

	// The stored row holds ciphertext, not the raw number.
	var stored models.PickupRequest
	require.NoError(t, deps.db.First(&stored, created.ID).Error)
	assert.NotEqual(t, "03001234567", stored.AccountNumber)
	assert.NotEmpty(t, stored.AccountNumber)

	plain, err := crypt.Decrypt(stored.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, "03001234567", plain)
}

func TestPickupService_CreateCashSkipsAccountFields(t *testing.T) {
	svc, deps := newPickupService(t)

	in := walletInput(deps.material.ID)
	in.PayoutMethod = models.PayoutCash

	created, err := svc.Create(1, in)
	require.NoError(t, err)

	var stored models.PickupRequest
	require.NoError(t, deps.db.First(&stored, created.ID).Error)
	assert.Empty(t, stored.AccountName)
	assert.Empty(t, stored.AccountNumber)
}

func TestPickupService_CreateUnknownMaterial(t *testing.T) {
	svc, _ := newPickupService(t)

	_, err := svc.Create(1, walletInput(9999))

	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestPickupService_AcceptThenComplete(t *testing.T) {
	svc, deps := newPickupService(t)

	created, err := svc.Create(1, walletInput(deps.material.ID))
	require.NoError(t, err)

	accepted, err := svc.Accept(created.ID, services.AcceptInput{
		ScheduledTime: "2026-09-05 10:00",
		DriverName:    "Bilal",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PickupAccepted, accepted.Status)
	assert.Equal(t, "2026-09-05 10:00", accepted.ScheduledTime)
	assert.Equal(t, "Bilal", accepted.DriverName)

	// The schedule survives the round trip to the database.
	var stored models.PickupRequest
	require.NoError(t, deps.db.First(&stored, created.ID).Error)
	assert.Equal(t, "Bilal", stored.DriverName)

	completed, err := svc.Complete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PickupCompleted, completed.Status)
}

func TestPickupService_RejectRequiresReason(t *testing.T) {
	svc, deps := newPickupService(t)

	created, err := svc.Create(1, walletInput(deps.material.ID))
	require.NoError(t, err)

	_, err = svc.Reject(created.ID, "   ")
	assert.ErrorIs(t, err, services.ErrReasonRequired)

	rejected, err := svc.Reject(created.ID, "Material is contaminated")
	require.NoError(t, err)
	assert.Equal(t, models.PickupRejected, rejected.Status)
	assert.Equal(t, "Material is contaminated", rejected.RejectionReason)
}

func TestPickupService_TerminalStatesRefuseFurtherMoves(t *testing.T) {
	svc, deps := newPickupService(t)

	created, err := svc.Create(1, walletInput(deps.material.ID))
	require.NoError(t, err)

	_, err = svc.Reject(created.ID, "No collection in this area")
	require.NoError(t, err)

	_, err = svc.Accept(created.ID, services.AcceptInput{})
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	_, err = svc.Complete(created.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestPickupService_CompleteRequiresAccepted(t *testing.T) {
	svc, deps := newPickupService(t)

	created, err := svc.Create(1, walletInput(deps.material.ID))
	require.NoError(t, err)

	_, err = svc.Complete(created.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestPickupService_DashboardSeesDecryptedDetails(t *testing.T) {
	svc, deps := newPickupService(t)

	created, err := svc.Create(1, walletInput(deps.material.ID))
	require.NoError(t, err)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sara Khan", got.AccountName)
	assert.Equal(t, "03001234567", got.AccountNumber)
}

func TestPickupService_SellerViewStaysRedacted(t *testing.T) {
	svc, deps := newPickupService(t)

	_, err := svc.Create(42, walletInput(deps.material.ID))
	require.NoError(t, err)

	mine, err := svc.ForUser(42)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Empty(t, mine[0].AccountName)
	assert.Empty(t, mine[0].AccountNumber)
}
