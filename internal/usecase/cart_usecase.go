package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase manages anonymous carts addressed by their token.
type CartUsecase interface {
	Create(ctx context.Context) (*entity.Cart, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AddItem adds quantity of a product, merging with an existing line.
	AddItem(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) (*entity.CartItem, error)
	UpdateItem(ctx context.Context, cartID uuid.UUID, itemID uint, quantity int) (*entity.CartItem, error)
	DeleteItem(ctx context.Context, cartID uuid.UUID, itemID uint) error
	// QRCode renders a PNG carrying the cart token.
	QRCode(ctx context.Context, cartID uuid.UUID) ([]byte, error)
	// Resolve returns the cart named by the payload of a scanned QR code.
	Resolve(ctx context.Context, qrData string) (*entity.Cart, error)
}
