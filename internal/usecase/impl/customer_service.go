package impl

import (
	"context"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	CustomerRepo repository.CustomerRepository
	AddressRepo  repository.AddressRepository
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{customerRepo: params.CustomerRepo, addressRepo: params.AddressRepo}
}

func (srv *customerService) Me(ctx context.Context, userID uint) (*entity.Customer, error) {
	return srv.customerRepo.FindByUserID(ctx, userID)
}

func (srv *customerService) UpdateMe(ctx context.Context, userID uint, input *usecase.CustomerInput) (*entity.Customer, error) {
	customer, err := srv.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		customer.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.BirthDate != nil {
		customer.BirthDate = input.BirthDate
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := srv.customerRepo.Update(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to update customer")
	}

	return customer, nil
}

func (srv *customerService) ListAddresses(ctx context.Context, userID uint) ([]*entity.Address, error) {
	customer, err := srv.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return srv.addressRepo.ListByCustomer(ctx, customer.ID)
}

func (srv *customerService) AddAddress(ctx context.Context, userID uint, input *usecase.AddressInput) (*entity.Address, error) {
	customer, err := srv.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	address := &entity.Address{
		CustomerID: customer.ID,
		Street:     strings.TrimSpace(input.Street),
		City:       strings.TrimSpace(input.City),
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}

	if err := srv.addressRepo.Create(ctx, address); err != nil {
		return nil, errors.Wrap(err, "failed to create address")
	}

	return address, nil
}
