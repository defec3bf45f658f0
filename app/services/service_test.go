package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/pkg/database"
)

// testDeps carries the handles a service test needs next to the
// service under test.
type testDeps struct {
	db       *gorm.DB
	material models.Material
}

// setupDB opens the shared in-memory database with a clean slate and
// all tables migrated.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Material{},
		&models.Product{},
		&models.PickupRequest{},
		&models.Order{},
		&models.OrderItem{},
	))

	for _, table := range []string{"order_items", "orders", "pickup_requests", "products", "materials", "users"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	return db
}

func seedMaterial(t *testing.T, db *gorm.DB) models.Material {
	t.Helper()
	m := models.Material{Name: "PET Plastic", Code: "PET", Unit: "kg", PricePerUnit: 45}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: "rPET Tote Bag", SKU: "TB-001", Type: "bags", Price: 850, Stock: stock}
	require.NoError(t, db.Create(&p).Error)
	return p
}
