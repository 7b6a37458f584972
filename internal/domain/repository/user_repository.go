// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// UserRepository persists accounts. Lookups return domainerrors.ErrUserNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// FindByIDs returns the users that exist among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*entity.User, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
}

// CustomerRepository persists customer profiles. One customer exists per user.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uint) (*entity.Customer, error)
	FindByUserID(ctx context.Context, userID uint) (*entity.Customer, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
}

// AddressRepository persists customer addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	ListByCustomer(ctx context.Context, customerID uint) ([]*entity.Address, error)
}
