package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
)

// CustomerInput carries the fields a customer may change on their own profile.
type CustomerInput struct {
	Phone     *string
	BirthDate *time.Time
}

// AddressInput carries address fields.
type AddressInput struct {
	Street string
	City   string
}

// CustomerUsecase serves the signed-in user's own customer profile.
type CustomerUsecase interface {
	Me(ctx context.Context, userID uint) (*entity.Customer, error)
	UpdateMe(ctx context.Context, userID uint, input *CustomerInput) (*entity.Customer, error)
	ListAddresses(ctx context.Context, userID uint) ([]*entity.Address, error)
	AddAddress(ctx context.Context, userID uint, input *AddressInput) (*entity.Address, error)
}
