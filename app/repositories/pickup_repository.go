package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/pkg/metrics"
)

// PickupRepository handles database operations for PickupRequest.
type PickupRepository struct {
	db *gorm.DB
}

func NewPickupRepository(db *gorm.DB) *PickupRepository {
	return &PickupRepository{db: db}
}

// All returns pickups with user and material preloaded, optionally
// filtered by status, newest first.
func (r *PickupRepository) All(status string) ([]models.PickupRequest, error) {
	defer metrics.ObserveDBQuery("pickups.all", time.Now())

	var pickups []models.PickupRequest
	q := r.db.Preload("User").Preload("Material").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&pickups).Error
	return pickups, err
}

// ForUser returns one user's pickups, newest first.
func (r *PickupRepository) ForUser(userID uint) ([]models.PickupRequest, error) {
	var pickups []models.PickupRequest
	err := r.db.Preload("Material").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&pickups).Error
	return pickups, err
}

func (r *PickupRepository) FindByID(id uint) (models.PickupRequest, error) {
	var pickup models.PickupRequest
	err := r.db.Preload("User").Preload("Material").First(&pickup, id).Error
	return pickup, err
}

func (r *PickupRepository) Create(pickup *models.PickupRequest) error {
	return r.db.Create(pickup).Error
}

func (r *PickupRepository) Update(pickup *models.PickupRequest) error {
	return r.db.Save(pickup).Error
}

func (r *PickupRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.PickupRequest{}).Count(&n).Error
	return n, err
}

// CountByStatus returns how many pickups sit in each status.
func (r *PickupRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.Model(&models.PickupRequest{}).
		Select("status, COUNT(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Status] = rw.N
	}
	return out, nil
}
