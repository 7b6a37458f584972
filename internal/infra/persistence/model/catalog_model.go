package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollectionModel is the GORM-specific struct for the 'collections' table.
// featured_product_id carries no database constraint because products reference
// collections too; the product repository clears it on delete.
type CollectionModel struct {
	ID                uint   `gorm:"primaryKey"`
	Title             string `gorm:"type:varchar(255);not null"`
	FeaturedProductID *uint  `gorm:"index"`
}

func (CollectionModel) TableName() string {
	return "collections"
}

// PromotionModel is the GORM-specific struct for the 'promotions' table.
type PromotionModel struct {
	ID          uint    `gorm:"primaryKey"`
	Description string  `gorm:"type:varchar(255);not null"`
	Discount    float64 `gorm:"not null"`
}

func (PromotionModel) TableName() string {
	return "promotions"
}

// ProductModel is the GORM-specific struct for the 'products' table.
type ProductModel struct {
	ID           uint             `gorm:"primaryKey"`
	Title        string           `gorm:"type:varchar(255);not null"`
	Slug         string           `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description  string           `gorm:"type:text;not null;default:''"`
	UnitPrice    decimal.Decimal  `gorm:"type:decimal(6,2);not null"`
	Inventory    int              `gorm:"not null;check:chk_products_inventory,inventory >= 0"`
	CollectionID uint             `gorm:"not null;index"`
	Collection   *CollectionModel `gorm:"foreignKey:CollectionID;constraint:OnDelete:RESTRICT"`
	Promotions   []PromotionModel `gorm:"many2many:product_promotions;joinForeignKey:ProductID;joinReferences:PromotionID"`
	LastUpdate   time.Time        `gorm:"autoUpdateTime"`
}

func (ProductModel) TableName() string {
	return "products"
}

// ReviewModel is the GORM-specific struct for the 'reviews' table.
type ReviewModel struct {
	ID          uint          `gorm:"primaryKey"`
	ProductID   uint          `gorm:"not null;index"`
	Product     *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Name        string        `gorm:"type:varchar(255);not null"`
	Description string        `gorm:"type:text;not null"`
	Date        time.Time     `gorm:"type:date;not null"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
