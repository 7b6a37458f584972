package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartRepository persists carts and their items. Reads load item products.
type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AddItem inserts the item or, when the product is already in the cart, adds to its quantity.
	AddItem(ctx context.Context, item *entity.CartItem) error
	FindItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*entity.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, cartID uuid.UUID, itemID uint) error
}

// OrderFilter narrows order listings. CustomerID zero lists every order.
type OrderFilter struct {
	CustomerID uint
}

// OrderRepository persists orders together with their items.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uint) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status entity.PaymentStatus) error
}
