package seeders

import (
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/pkg/auth"
	"github.com/ecotrackhq/ecotrack/pkg/rbac"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("materials", SeedMaterials)
	Register("products", SeedProducts)
}

// SeedAdminUser creates the bootstrap dashboard account. Idempotent:
// an existing row with the same email is left alone.
func SeedAdminUser(db *gorm.DB) error {
	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	admin := models.User{
		FirstName: "Admin",
		LastName:  "User",
		Email:     "admin@ecotrack.app",
		Password:  hash,
		Role:      rbac.RoleAdmin,
	}
	return db.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error
}

// SeedMaterials inserts the starter buy list.
func SeedMaterials(db *gorm.DB) error {
	materials := []models.Material{
		{Name: "PET Plastic", Code: "PET", Description: "Clear plastic bottles and containers", Unit: "kg", PricePerUnit: 45},
		{Name: "Aluminium Cans", Code: "ALU", Description: "Beverage cans, clean and crushed", Unit: "kg", PricePerUnit: 320},
		{Name: "Mixed Paper", Code: "PAP", Description: "Newspapers, magazines, office paper", Unit: "kg", PricePerUnit: 25},
		{Name: "Glass Bottles", Code: "GLS", Description: "Whole bottles, any colour", Unit: "kg", PricePerUnit: 12},
		{Name: "Used Cooking Oil", Code: "UCO", Description: "Filtered, in sealed containers", Unit: "litre", PricePerUnit: 90},
		{Name: "Lead-Acid Batteries", Code: "BAT", Description: "Car and UPS batteries", Unit: "piece", PricePerUnit: 1500, Hazardous: true},
	}

	for _, m := range materials {
		if err := db.Where(models.Material{Code: m.Code}).FirstOrCreate(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts a small recycled-goods catalogue for the shop.
func SeedProducts(db *gorm.DB) error {
	products := []models.Product{
		{Name: "Recycled Paper Notebook", SKU: "NB-200", Type: "stationery", Description: "200 pages, 100% post-consumer paper", Price: 450, Stock: 120},
		{Name: "rPET Tote Bag", SKU: "TB-001", Type: "bags", Description: "Woven from recycled PET bottles", Price: 850, Stock: 60},
		{Name: "Glass Tumbler Set", SKU: "GT-004", Type: "homeware", Description: "Set of 4, made from reclaimed glass", Price: 1600, Stock: 35},
		{Name: "Compost Bin 20L", SKU: "CB-020", Type: "garden", Description: "Recycled HDPE kitchen compost bin", Price: 2400, Stock: 20},
	}

	for _, p := range products {
		if err := db.Where(models.Product{SKU: p.SKU}).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
