package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/policy"

	"github.com/google/uuid"
)

// OrderUsecase places and reads orders. Non-staff callers only see their own.
type OrderUsecase interface {
	List(ctx context.Context, caller policy.Caller) ([]*entity.Order, error)
	Get(ctx context.Context, caller policy.Caller, id uint) (*entity.Order, error)
	// Place turns the cart into an order of the caller's customer, snapshots
	// prices, decrements inventory and deletes the cart, all in one transaction.
	Place(ctx context.Context, caller policy.Caller, cartID uuid.UUID) (*entity.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status entity.PaymentStatus) (*entity.Order, error)
}
