package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return translateWriteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt

	return nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, id).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrUserNotFound, "failed to find user by ID")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&userM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrUserNotFound, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Update("password_hash", hash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password hash")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound.WrapMessage("failed to update password hash")
	}

	return nil
}

func (repo *userRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*entity.User, error) {
	users := make(map[uint]*entity.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var userModels []model.UserModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find users by IDs")
	}
	for i := range userModels {
		users[userModels[i].ID] = toUserDomain(&userModels[i])
	}

	return users, nil
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (repo *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)
	if err := repo.db.WithContext(ctx).Omit("User").Create(customerM).Error; err != nil {
		return translateWriteError(err, "failed to create customer")
	}

	customer.ID = customerM.ID

	return nil
}

func (repo *customerRepository) FindByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var customerM model.CustomerModel
	if err := repo.db.WithContext(ctx).Preload("User").First(&customerM, id).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrCustomerNotFound, "failed to find customer by ID")
	}

	return toCustomerDomain(&customerM), nil
}

func (repo *customerRepository) FindByUserID(ctx context.Context, userID uint) (*entity.Customer, error) {
	var customerM model.CustomerModel
	err := repo.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&customerM).Error
	if err != nil {
		return nil, translateReadError(err, domainerrors.ErrCustomerNotFound, "failed to find customer by user ID")
	}

	return toCustomerDomain(&customerM), nil
}

func (repo *customerRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.CustomerModel{}).Where("user_id = ?", userID).Count(&count).Error

	return count, errors.Wrap(err, "failed to count customers")
}

func (repo *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	result := repo.db.WithContext(ctx).Model(&model.CustomerModel{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"phone":      customer.Phone,
			"birth_date": customer.BirthDate,
			"membership": string(customer.Membership),
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update customer")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCustomerNotFound.WrapMessage("failed to update customer")
	}

	return nil
}

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

func (repo *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	addressM := &model.AddressModel{
		CustomerID: address.CustomerID,
		Street:     address.Street,
		City:       address.City,
	}
	if err := repo.db.WithContext(ctx).Omit("Customer").Create(addressM).Error; err != nil {
		return translateWriteError(err, "failed to create address")
	}

	address.ID = addressM.ID

	return nil
}

func (repo *addressRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*entity.Address, error) {
	var addressModels []model.AddressModel
	err := repo.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&addressModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	addresses := make([]*entity.Address, 0, len(addressModels))
	for _, addressM := range addressModels {
		addresses = append(addresses, &entity.Address{
			ID:         addressM.ID,
			CustomerID: addressM.CustomerID,
			Street:     addressM.Street,
			City:       addressM.City,
		})
	}

	return addresses, nil
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		PasswordHash: data.PasswordHash,
		IsStaff:      data.IsStaff,
		CreatedAt:    data.CreatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		PasswordHash: data.PasswordHash,
		IsStaff:      data.IsStaff,
		CreatedAt:    data.CreatedAt,
	}
}

func toCustomerDomain(data *model.CustomerModel) *entity.Customer {
	return &entity.Customer{
		ID:         data.ID,
		UserID:     data.UserID,
		Phone:      data.Phone,
		BirthDate:  data.BirthDate,
		Membership: entity.Membership(data.Membership),
		User:       toUserDomain(data.User),
	}
}

func fromCustomerDomain(data *entity.Customer) *model.CustomerModel {
	membership := data.Membership
	if membership == "" {
		membership = entity.MembershipBronze
	}

	return &model.CustomerModel{
		ID:         data.ID,
		UserID:     data.UserID,
		Phone:      data.Phone,
		BirthDate:  data.BirthDate,
		Membership: string(membership),
	}
}
