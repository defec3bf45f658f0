package repositories

import (
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// DB exposes the underlying handle for cross-repository transactions.
func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}

// All returns orders with user and items preloaded, newest first.
func (r *OrderRepository) All(status string) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.Preload("User").Preload("Items.Product").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&orders).Error
	return orders, err
}

// ForUser returns one user's orders, newest first.
func (r *OrderRepository) ForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("User").Preload("Items.Product").First(&order, id).Error
	return order, err
}

func (r *OrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).Count(&n).Error
	return n, err
}

// Revenue sums the total of all delivered orders.
func (r *OrderRepository) Revenue() (float64, error) {
	var total float64
	err := r.db.Model(&models.Order{}).
		Where("status = ?", models.OrderDelivered).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}
