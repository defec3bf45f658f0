package repositories

import (
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// All returns products, optionally filtered by type.
func (r *ProductRepository) All(productType string) ([]models.Product, error) {
	var products []models.Product
	q := r.db.Order("name ASC")
	if productType != "" {
		q = q.Where("type = ?", productType)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	return product, err
}

func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Product{}).Count(&n).Error
	return n, err
}

// DecrementStock reduces stock for a product inside tx, failing when
// the remaining stock is insufficient.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, productID uint, qty int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
