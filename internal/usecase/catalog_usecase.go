package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CollectionInput carries collection fields. Nil fields are left untouched on partial updates.
type CollectionInput struct {
	Title *string
}

// CollectionUsecase manages collections.
type CollectionUsecase interface {
	List(ctx context.Context) ([]*entity.Collection, error)
	Get(ctx context.Context, id uint) (*entity.Collection, error)
	Create(ctx context.Context, input *CollectionInput) (*entity.Collection, error)
	Update(ctx context.Context, id uint, input *CollectionInput, partial bool) (*entity.Collection, error)
	// Delete refuses while products still reference the collection.
	Delete(ctx context.Context, id uint) error
	// SetFeaturedProduct features one of the collection's own products; nil clears it.
	SetFeaturedProduct(ctx context.Context, id uint, productID *uint) (*entity.Collection, error)
}

// ProductInput carries product fields. Nil fields are left untouched on partial updates.
type ProductInput struct {
	Title        *string
	Slug         *string
	Description  *string
	UnitPrice    *decimal.Decimal
	Inventory    *int
	CollectionID *uint
	PromotionIDs *[]uint
}

// ProductQuery selects one page of products.
type ProductQuery struct {
	CollectionID uint
	Search       string
	Ordering     string
	Page         int
	PageSize     int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Count    int64
	Page     int
	PageSize int
	Results  []*entity.Product
}

func (p *ProductPage) HasNext() bool {
	return int64(p.Page*p.PageSize) < p.Count
}

func (p *ProductPage) HasPrevious() bool {
	return p.Page > 1
}

// ProductUsecase manages products.
type ProductUsecase interface {
	List(ctx context.Context, query *ProductQuery) (*ProductPage, error)
	Get(ctx context.Context, id uint) (*entity.Product, error)
	Create(ctx context.Context, input *ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id uint, input *ProductInput, partial bool) (*entity.Product, error)
	// Delete refuses while order items reference the product.
	Delete(ctx context.Context, id uint) error
	// TaxRate is the rate applied by Product.PriceWithTax.
	TaxRate() float64
}

// PromotionInput carries promotion fields.
type PromotionInput struct {
	Description string
	Discount    float64
}

// PromotionUsecase manages promotions.
type PromotionUsecase interface {
	List(ctx context.Context) ([]*entity.Promotion, error)
	Create(ctx context.Context, input *PromotionInput) (*entity.Promotion, error)
}

// ReviewInput carries review fields.
type ReviewInput struct {
	Name        string
	Description string
}

// ReviewUsecase manages reviews nested under a product.
type ReviewUsecase interface {
	List(ctx context.Context, productID uint) ([]*entity.Review, error)
	Get(ctx context.Context, productID, id uint) (*entity.Review, error)
	Create(ctx context.Context, productID uint, input *ReviewInput) (*entity.Review, error)
	Delete(ctx context.Context, productID, id uint) error
}
