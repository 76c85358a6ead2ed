// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petbao/petbao-backend/internal/models"
	"github.com/petbao/petbao-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Title       string            `json:"title" validate:"required,min=2,max=200"`
	Description string            `json:"description" validate:"required"`
	Species     string            `json:"species" validate:"required,max=100"`
	Morph       string            `json:"morph,omitempty" validate:"omitempty,max=200"`
	Age         string            `json:"age,omitempty" validate:"omitempty,max=50"`
	Sex         models.ProductSex `json:"sex,omitempty" validate:"omitempty,oneof=male female unknown"`
	Price       float64           `json:"price" validate:"required,min=0.01"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
	Images      []string          `json:"images,omitempty" validate:"dive,url"`
	Videos      []string          `json:"videos,omitempty" validate:"dive,url"`
}

type UpdateProductRequest struct {
	Title       string            `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description string            `json:"description,omitempty"`
	Species     string            `json:"species,omitempty" validate:"omitempty,max=100"`
	Morph       string            `json:"morph,omitempty" validate:"omitempty,max=200"`
	Age         string            `json:"age,omitempty" validate:"omitempty,max=50"`
	Sex         models.ProductSex `json:"sex,omitempty" validate:"omitempty,oneof=male female unknown"`
	Price       float64           `json:"price,omitempty" validate:"omitempty,min=0.01"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategoryID *uuid.UUID
	Species    string
	Morph      string
	Sex        *models.ProductSex
	MinPrice   *float64
	MaxPrice   *float64
	Status     *models.ProductStatus
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(sellerID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	sex := req.Sex
	if sex == "" {
		sex = models.ProductSexUnknown
	}

	product := &models.Product{
		SellerID:    sellerID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Species:     req.Species,
		Morph:       req.Morph,
		Age:         req.Age,
		Sex:         sex,
		Price:       req.Price,
		Status:      models.ProductStatusAvailable,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		for idx, url := range req.Images {
			image := models.ProductImage{
				ProductID: product.ID,
				ImageURL:  url,
				SortOrder: idx,
			}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("failed to create product image: %w", err)
			}
		}

		for idx, url := range req.Videos {
			video := models.ProductVideo{
				ProductID: product.ID,
				VideoURL:  url,
				SortOrder: idx,
			}
			if err := tx.Create(&video).Error; err != nil {
				return fmt.Errorf("failed to create product video: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadProduct(product.ID)
}

// GetProduct fetches one listing and bumps its view counter. The bump is a
// single relative UPDATE and deliberately not part of any transaction: a lost
// increment under concurrent fetches is acceptable.
func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	product, err := s.loadProduct(id)
	if err != nil {
		return nil, err
	}

	s.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	product.ViewCount++

	return product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, sellerID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if product.SellerID != sellerID {
		return nil, fmt.Errorf("%w: only the seller may update a listing", ErrForbidden)
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Species != "" {
		updates["species"] = req.Species
	}
	if req.Morph != "" {
		updates["morph"] = req.Morph
	}
	if req.Age != "" {
		updates["age"] = req.Age
	}
	if req.Sex != "" {
		updates["sex"] = req.Sex
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.loadProduct(id)
}

// DeleteProduct removes a listing with its image/video children. Orders keep
// their weak reference; the product_id column on them goes stale by design.
func (s *ProductService) DeleteProduct(id uuid.UUID, sellerID uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if product.SellerID != sellerID {
		return fmt.Errorf("%w: only the seller may delete a listing", ErrForbidden)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVideo{}).Error; err != nil {
			return fmt.Errorf("failed to delete product videos: %w", err)
		}
		if err := tx.Model(&models.Order{}).Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach orders: %w", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Preload("Seller").Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") })

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.Species != "" {
		query = query.Where("LOWER(species) LIKE ?", "%"+strings.ToLower(params.Species)+"%")
	}

	if params.Morph != "" {
		query = query.Where("LOWER(morph) LIKE ?", "%"+strings.ToLower(params.Morph)+"%")
	}

	if params.Sex != nil {
		query = query.Where("sex = ?", *params.Sex)
	}

	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}

	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}

	// Browsing defaults to listings that can actually be bought.
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else {
		query = query.Where("status = ?", models.ProductStatusAvailable)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(species) LIKE ? OR LOWER(morph) LIKE ?",
			searchTerm, searchTerm, searchTerm, searchTerm,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// GetSellerProducts lists a seller's own listings across every status.
func (s *ProductService) GetSellerProducts(sellerID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("seller_id = ?", sellerID).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") })

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count seller products: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch seller products: %w", err)
	}

	return products, total, nil
}

// ToggleStatus flips a listing between available and offline. Reserved and
// sold listings belong to the order machine and reject the toggle.
func (s *ProductService) ToggleStatus(id uuid.UUID, sellerID uuid.UUID) (*models.Product, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := forUpdate(tx).First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		if product.SellerID != sellerID {
			return fmt.Errorf("%w: only the seller may toggle a listing", ErrForbidden)
		}

		var next models.ProductStatus
		switch product.Status {
		case models.ProductStatusAvailable:
			next = models.ProductStatusOffline
		case models.ProductStatusOffline:
			next = models.ProductStatusAvailable
		default:
			return fmt.Errorf("%w: listing is %s", ErrInvalidState, product.Status)
		}

		// Guard on the status we read so a concurrent transition cannot
		// be overwritten.
		result := tx.Model(&models.Product{}).
			Where("id = ? AND status = ?", id, product.Status).
			Update("status", next)
		if result.Error != nil {
			return fmt.Errorf("failed to toggle status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: listing status changed concurrently", ErrInvalidState)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadProduct(id)
}

func (s *ProductService) loadProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Seller").Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}
