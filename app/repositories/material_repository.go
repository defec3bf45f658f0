package repositories

import (
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
)

// MaterialRepository handles database operations for Material.
type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) All() ([]models.Material, error) {
	var materials []models.Material
	err := r.db.Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) FindByID(id uint) (models.Material, error) {
	var material models.Material
	err := r.db.First(&material, id).Error
	return material, err
}

func (r *MaterialRepository) Create(material *models.Material) error {
	return r.db.Create(material).Error
}

func (r *MaterialRepository) Update(material *models.Material) error {
	return r.db.Save(material).Error
}

func (r *MaterialRepository) Delete(id uint) error {
	return r.db.Delete(&models.Material{}, id).Error
}

func (r *MaterialRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Material{}).Count(&n).Error
	return n, err
}
