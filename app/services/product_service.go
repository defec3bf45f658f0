package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/pkg/storage"
)

// ProductService manages the recycled-goods catalogue.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService(products *repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	SKU         string  `json:"sku" validate:"required,alpha_dash,max=100"`
	Type        string  `json:"type" validate:"required,max=100"`
	Description string  `json:"description" validate:"nullable,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// List returns products, optionally filtered by type.
func (s *ProductService) List(productType string) ([]models.Product, error) {
	return s.products.All(productType)
}

func (s *ProductService) Get(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

func (s *ProductService) Create(in ProductInput) (models.Product, error) {
	product := models.Product{
		Name:        in.Name,
		SKU:         in.SKU,
		Type:        in.Type,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *ProductService) Update(id uint, in ProductInput) (models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return models.Product{}, err
	}

	product.Name = in.Name
	product.SKU = in.SKU
	product.Type = in.Type
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *ProductService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.products.Delete(id)
}

// AttachImage stores an uploaded product image on the configured disk
// and records its public URL on the product.
func (s *ProductService) AttachImage(id uint, filename string, data []byte) (models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return models.Product{}, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path := fmt.Sprintf("products/%d/%d%s", id, time.Now().UnixNano(), ext)
	if err := storage.Put(path, data); err != nil {
		return models.Product{}, err
	}

	product.ImageURL = storage.URL(path)
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}
