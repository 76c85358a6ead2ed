// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	SellerID   uuid.UUID  `json:"seller_id" gorm:"type:uuid;not null;index"`
	CategoryID *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`

	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Species     string     `json:"species" gorm:"size:100;not null;index"`
	Morph       string     `json:"morph" gorm:"size:200"`
	Age         string     `json:"age" gorm:"size:50"`
	Sex         ProductSex `json:"sex" gorm:"type:varchar(10);default:'unknown'"`
	Price       float64    `json:"price" gorm:"type:decimal(10,2);not null"`

	Status    ProductStatus `json:"status" gorm:"type:varchar(20);default:'available';index"`
	ViewCount int64         `json:"view_count" gorm:"default:0"`

	// Relationships
	Seller   User             `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Category *ProductCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []ProductImage   `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Videos   []ProductVideo   `json:"videos,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string {
	return "products"
}

type ProductImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ImageURL  string    `json:"image_url" gorm:"size:500;not null"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type ProductVideo struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	VideoURL     string    `json:"video_url" gorm:"size:500;not null"`
	ThumbnailURL string    `json:"thumbnail_url" gorm:"size:500"`
	SortOrder    int       `json:"sort_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ProductVideo) TableName() string {
	return "product_videos"
}

func (v *ProductVideo) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
