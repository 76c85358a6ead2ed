// internal/services/taxonomy_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petbao/petbao-backend/internal/models"
)

// TaxonomyService serves the read-only classification data: categories,
// species and gene tags. Nothing here mutates; the data is seeded out of band.
type TaxonomyService struct {
	db *gorm.DB
}

func NewTaxonomyService(db *gorm.DB) *TaxonomyService {
	return &TaxonomyService{db: db}
}

func (s *TaxonomyService) ListCategories() ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	if err := s.db.Where("is_active = ?", true).
		Order("sort_order, name").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *TaxonomyService) ListSpecies(categoryID *uuid.UUID, search string) ([]models.Species, error) {
	query := s.db.Where("is_active = ?", true)

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var species []models.Species
	if err := query.Order("sort_order, name").Find(&species).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch species: %w", err)
	}
	return species, nil
}

func (s *TaxonomyService) ListGeneTags(speciesID *uuid.UUID, search string) ([]models.GeneTag, error) {
	query := s.db.Where("is_active = ?", true)

	if speciesID != nil {
		query = query.Where("species_id = ?", *speciesID)
	}
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var tags []models.GeneTag
	if err := query.Order("sort_order, name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch gene tags: %w", err)
	}
	return tags, nil
}
