// internal/models/taxonomy.go
package models

import "github.com/google/uuid"

// Read-only classification data attached to listings. Maintained out of band
// (seeds or admin tooling); the API only ever serves it.

type ProductCategory struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Description string `json:"description" gorm:"type:text"`
	SortOrder   int    `json:"sort_order" gorm:"default:0"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}

type Species struct {
	BaseModel
	Name           string     `json:"name" gorm:"uniqueIndex;size:100;not null"`
	ScientificName string     `json:"scientific_name" gorm:"size:200"`
	CategoryID     *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`
	SortOrder      int        `json:"sort_order" gorm:"default:0"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`

	Category *ProductCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Species) TableName() string {
	return "species"
}

type GeneTag struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:100;not null;index"`
	SpeciesID   *uuid.UUID `json:"species_id" gorm:"type:uuid;index"`
	Description string     `json:"description" gorm:"type:text"`
	SortOrder   int        `json:"sort_order" gorm:"default:0"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`

	Species *Species `json:"species,omitempty" gorm:"foreignKey:SpeciesID"`
}

func (GeneTag) TableName() string {
	return "gene_tags"
}
