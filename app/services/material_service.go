package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/pkg/cache"
)

const materialsCacheKey = "materials:all"

// MaterialService manages the recyclable materials catalogue.
type MaterialService struct {
	materials *repositories.MaterialRepository
}

func NewMaterialService(materials *repositories.MaterialRepository) *MaterialService {
	return &MaterialService{materials: materials}
}

// MaterialInput is the payload for creating or updating a material.
type MaterialInput struct {
	Name         string  `json:"name" validate:"required,min=2,max=255"`
	Code         string  `json:"code" validate:"required,alpha_dash,max=100"`
	Description  string  `json:"description" validate:"nullable,max=2000"`
	Unit         string  `json:"unit" validate:"required,in=kg,litre,piece"`
	PricePerUnit float64 `json:"pricePerUnit" validate:"required,gt=0"`
	Hazardous    bool    `json:"hazardous"`
}

// List returns all materials. The marketing site hits this on every
// page view, so results are cached briefly.
func (s *MaterialService) List() ([]models.Material, error) {
	var cached []models.Material
	if cache.Get(materialsCacheKey, &cached) {
		return cached, nil
	}

	materials, err := s.materials.All()
	if err != nil {
		return nil, err
	}

	_ = cache.Set(materialsCacheKey, materials, 5*time.Minute)
	return materials, nil
}

func (s *MaterialService) Get(id uint) (models.Material, error) {
	material, err := s.materials.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Material{}, ErrNotFound
		}
		return models.Material{}, err
	}
	return material, nil
}

func (s *MaterialService) Create(in MaterialInput) (models.Material, error) {
	material := models.Material{
		Name:         in.Name,
		Code:         in.Code,
		Description:  in.Description,
		Unit:         in.Unit,
		PricePerUnit: in.PricePerUnit,
		Hazardous:    in.Hazardous,
	}
	if err := s.materials.Create(&material); err != nil {
		return models.Material{}, err
	}

	_ = cache.Forget(materialsCacheKey)
	return material, nil
}

func (s *MaterialService) Update(id uint, in MaterialInput) (models.Material, error) {
	material, err := s.Get(id)
	if err != nil {
		return models.Material{}, err
	}

	material.Name = in.Name
	material.Code = in.Code
	material.Description = in.Description
	material.Unit = in.Unit
	material.PricePerUnit = in.PricePerUnit
	material.Hazardous = in.Hazardous

	if err := s.materials.Update(&material); err != nil {
		return models.Material{}, err
	}

	_ = cache.Forget(materialsCacheKey)
	return material, nil
}

func (s *MaterialService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.materials.Delete(id); err != nil {
		return err
	}
	_ = cache.Forget(materialsCacheKey)
	return nil
}
