package migrations

import (
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_materials_table", &CreateMaterialsTable{})
	migration.Register("20260301000002_create_products_table", &CreateProductsTable{})
	migration.Register("20260301000003_create_pickup_requests_table", &CreatePickupRequestsTable{})
	migration.Register("20260301000004_create_orders_table", &CreateOrdersTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: materials --------

type CreateMaterialsTable struct{}

func (m *CreateMaterialsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Material{})
}

func (m *CreateMaterialsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("materials")
}

// -------- 0003: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0004: pickup requests --------

type CreatePickupRequestsTable struct{}

func (m *CreatePickupRequestsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.PickupRequest{})
}

func (m *CreatePickupRequestsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("pickup_requests")
}

// -------- 0005: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}
