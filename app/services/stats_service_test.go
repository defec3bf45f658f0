package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/app/services"
)

func newStatsService(t *testing.T) (*services.StatsService, *testDeps) {
	db := setupDB(t)
	svc := services.NewStatsService(
		repositories.NewUserRepository(db),
		repositories.NewMaterialRepository(db),
		repositories.NewProductRepository(db),
		repositories.NewPickupRepository(db),
		repositories.NewOrderRepository(db),
	)
	return svc, &testDeps{db: db}
}

func TestStatsService_CountsEveryEntity(t *testing.T) {
	svc, deps := newStatsService(t)

	material := seedMaterial(t, deps.db)
	seedProduct(t, deps.db, 5)
	require.NoError(t, deps.db.Create(&models.User{FirstName: "Sara", LastName: "Khan", Email: "sara@example.com", Password: "x", Role: "Customer"}).Error)

	pickups := []models.PickupRequest{
		{UserID: 1, MaterialID: material.ID, Quantity: 1, Address: "A", PayoutMethod: models.PayoutCash, Status: models.PickupPending},
		{UserID: 1, MaterialID: material.ID, Quantity: 2, Address: "B", PayoutMethod: models.PayoutCash, Status: models.PickupPending},
		{UserID: 1, MaterialID: material.ID, Quantity: 3, Address: "C", PayoutMethod: models.PayoutCash, Status: models.PickupAccepted},
	}
	for i := range pickups {
		require.NoError(t, deps.db.Create(&pickups[i]).Error)
	}

	// Revenue only counts delivered orders.
	require.NoError(t, deps.db.Create(&models.Order{UserID: 1, Total: 1000, Status: models.OrderDelivered, ShippingAddress: "A"}).Error)
	require.NoError(t, deps.db.Create(&models.Order{UserID: 1, Total: 500, Status: models.OrderPending, ShippingAddress: "B"}).Error)

	stats, err := svc.Dashboard()
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.Users)
	assert.EqualValues(t, 1, stats.Materials)
	assert.EqualValues(t, 1, stats.Products)
	assert.EqualValues(t, 2, stats.Orders)
	assert.EqualValues(t, 3, stats.Pickups)
	assert.EqualValues(t, 2, stats.PickupsByStatus[models.PickupPending])
	assert.EqualValues(t, 1, stats.PickupsByStatus[models.PickupAccepted])
	assert.Equal(t, 1000.0, stats.Revenue)
}

func TestStatsService_EmptyDatabaseIsAllZeroes(t *testing.T) {
	svc, _ := newStatsService(t)

	stats, err := svc.Dashboard()
	require.NoError(t, err)

	assert.Zero(t, stats.Users)
	assert.Zero(t, stats.Pickups)
	assert.Zero(t, stats.Revenue)
}
