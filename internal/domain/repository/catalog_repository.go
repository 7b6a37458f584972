package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// CollectionRepository persists collections. Reads fill ProductsCount.
type CollectionRepository interface {
	Create(ctx context.Context, collection *entity.Collection) error
	FindByID(ctx context.Context, id uint) (*entity.Collection, error)
	List(ctx context.Context) ([]*entity.Collection, error)
	Update(ctx context.Context, collection *entity.Collection) error
	Delete(ctx context.Context, id uint) error
	CountProducts(ctx context.Context, id uint) (int64, error)
}

// ProductOrdering names a sort key; a leading '-' sorts descending.
type ProductOrdering string

const (
	OrderByID             ProductOrdering = "id"
	OrderByUnitPrice      ProductOrdering = "unit_price"
	OrderByUnitPriceDesc  ProductOrdering = "-unit_price"
	OrderByLastUpdate     ProductOrdering = "last_update"
	OrderByLastUpdateDesc ProductOrdering = "-last_update"
	OrderByTitle          ProductOrdering = "title"
)

// ProductOrderings lists accepted ordering values.
var ProductOrderings = []ProductOrdering{
	OrderByID, OrderByUnitPrice, OrderByUnitPriceDesc, OrderByLastUpdate, OrderByLastUpdateDesc, OrderByTitle,
}

// ProductFilter narrows product listings. Zero values mean "no constraint".
type ProductFilter struct {
	CollectionID uint
	Search       string // matches title or description
	Ordering     ProductOrdering
	Offset       int
	Limit        int
}

// ProductRepository persists products and their promotion links.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uint) (*entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete removes the product with its cart items, reviews and promotion links
	// and clears any collection featuring it.
	Delete(ctx context.Context, id uint) error
	ReplacePromotions(ctx context.Context, productID uint, promotionIDs []uint) error
	CountOrderItems(ctx context.Context, productID uint) (int64, error)
	// DecrementInventory fails with ErrInsufficientInventory when stock is short.
	DecrementInventory(ctx context.Context, productID uint, quantity int) error
}

// PromotionRepository persists promotions.
type PromotionRepository interface {
	Create(ctx context.Context, promotion *entity.Promotion) error
	List(ctx context.Context) ([]*entity.Promotion, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*entity.Promotion, error)
}

// ReviewRepository persists product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, productID, id uint) (*entity.Review, error)
	ListByProduct(ctx context.Context, productID uint) ([]*entity.Review, error)
	Delete(ctx context.Context, productID, id uint) error
}
