// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/metrics"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	notifier     service.Notifier
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Notifier     service.Notifier
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		notifier:     params.Notifier,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser creates the user and its customer atomically and sends a welcome email after commit.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	user, err := srv.prepareUser(input)
	if err != nil {
		return nil, err
	}

	var output *usecase.RegisterOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		_, err := repoFactory.NewUserRepository().FindByUsername(ctx, user.Username)
		if err == nil {
			return domainerrors.FieldError("username", "A user with that username already exists.")
		}
		if !errors.Is(err, domainerrors.ErrUserNotFound) {
			return err
		}

		customer, err := createUserWithCustomer(ctx, repoFactory, user)
		if err != nil {
			return err
		}
		output = &usecase.RegisterOutput{User: user, Customer: customer, Created: true}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register user")
	}

	metrics.UsersRegisteredTotal.Inc()
	srv.log(ctx).Info("User registered", slog.Uint64("userID", uint64(user.ID)), slog.String("username", user.Username))
	srv.sendWelcome(ctx, user)

	return output, nil
}

// EnsureUser is lookup-or-create keyed by username.
func (srv *userService) EnsureUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	user, err := srv.prepareUser(input)
	if err != nil {
		return nil, err
	}

	var output *usecase.RegisterOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		output, err = ensureUser(ctx, repoFactory, user)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to ensure user")
	}

	if output.Created {
		metrics.UsersRegisteredTotal.Inc()
		srv.sendWelcome(ctx, output.User)
	}

	return output, nil
}

func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user")
	}
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.String("username", user.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if srv.hasher.NeedsRehash(user.PasswordHash) {
		srv.upgradePassword(ctx, user, input.Password)
	}

	return srv.issueTokens(user)
}

// upgradePassword stores a fresh hash for a verified password. Failures only
// get logged; the login itself already succeeded.
func (srv *userService) upgradePassword(ctx context.Context, user *entity.User, password string) {
	hash, err := srv.hasher.Hash(password)
	if err == nil {
		err = srv.userRepo.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		srv.log(ctx).Warn("Failed to upgrade password hash", slog.Uint64("userID", uint64(user.ID)), slog.Any("error", err))

		return
	}
	user.PasswordHash = hash
}

func (srv *userService) Refresh(ctx context.Context, refreshToken string) (*usecase.LoginOutput, error) {
	claims, err := srv.tokenService.ValidateToken(refreshToken, service.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidToken
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return srv.issueTokens(user)
}

func (srv *userService) issueTokens(user *entity.User) (*usecase.LoginOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.IsStaff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.LoginOutput{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

// prepareUser validates input and hashes the password outside of any transaction.
func (srv *userService) prepareUser(input *usecase.RegisterUserInput) (*entity.User, error) {
	user := &entity.User{
		Username:  strings.TrimSpace(input.Username),
		Email:     strings.TrimSpace(input.Email),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		IsStaff:   input.IsStaff,
	}

	ve := domainerrors.NewValidationError()
	if err := user.Validate(); err != nil {
		var fieldErrs *domainerrors.ValidationError
		if errors.As(err, &fieldErrs) {
			ve.Merge(fieldErrs)
		}
	}
	if strings.TrimSpace(input.Password) == "" {
		ve.Add("password", domainerrors.MsgBlank)
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}
	user.PasswordHash = hash

	return user, nil
}

func (srv *userService) sendWelcome(ctx context.Context, user *entity.User) {
	if user.Email == "" {
		return
	}

	srv.notifier.Send(ctx, &service.EmailMessage{
		To:       user.Email,
		Subject:  "Welcome",
		Template: constants.TemplateWelcome,
		Data: map[string]any{
			"Name":     displayName(user),
			"Username": user.Username,
		},
	})
}

// createUserWithCustomer inserts user and then its single customer through
// the same transaction-bound repositories. Either both rows exist or neither.
func createUserWithCustomer(ctx context.Context, repoFactory repository.RepositoryFactory, user *entity.User) (*entity.Customer, error) {
	if err := repoFactory.NewUserRepository().Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	customer := &entity.Customer{
		UserID:     user.ID,
		Membership: entity.MembershipBronze,
		User:       user,
	}
	if err := repoFactory.NewCustomerRepository().Create(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to create customer")
	}

	return customer, nil
}

// ensureUser returns the user with user.Username and its customer, creating
// both when the username is unknown.
func ensureUser(ctx context.Context, repoFactory repository.RepositoryFactory, user *entity.User) (*usecase.RegisterOutput, error) {
	existing, err := repoFactory.NewUserRepository().FindByUsername(ctx, user.Username)
	switch {
	case err == nil:
		customer, err := repoFactory.NewCustomerRepository().FindByUserID(ctx, existing.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "user %s has no customer", existing.Username)
		}

		return &usecase.RegisterOutput{User: existing, Customer: customer}, nil
	case !errors.Is(err, domainerrors.ErrUserNotFound):
		return nil, err
	}

	customer, err := createUserWithCustomer(ctx, repoFactory, user)
	if err != nil {
		return nil, err
	}

	return &usecase.RegisterOutput{User: user, Customer: customer, Created: true}, nil
}

func displayName(user *entity.User) string {
	if name := strings.TrimSpace(user.FirstName + " " + user.LastName); name != "" {
		return name
	}

	return user.Username
}
