package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/metrics"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	maxItemsPerOrder   = 4
	maxItemsPerCart    = 4
	maxItemQuantity    = 5
	maxReviews         = 3
	maxUsernameRetries = 5
)

type seedService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// SeedServiceParams holds dependencies for SeedService, injected by Fx.
type SeedServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewSeedService is the constructor for seedService.
func NewSeedService(params SeedServiceParams) usecase.SeedUsecase {
	return &seedService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

func (srv *seedService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Seed runs every step in one transaction; any failure leaves the store untouched.
func (srv *seedService) Seed(ctx context.Context, opts *usecase.SeedOptions) (*usecase.SeedReport, error) {
	start := time.Now()

	if err := validateSeedOptions(opts); err != nil {
		return nil, err
	}

	adminHash, err := srv.hasher.Hash(opts.AdminPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash admin password")
	}
	// Generated users share one hash.
	defaultHash, err := srv.hasher.Hash(opts.DefaultPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash default password")
	}

	run := &seedRun{
		opts:        opts,
		fake:        gofakeit.New(opts.RandomSeed),
		adminHash:   adminHash,
		defaultHash: defaultHash,
		report:      &usecase.SeedReport{},
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return run.execute(ctx, repoFactory)
	})
	if err != nil {
		metrics.SeedRunsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		srv.log(ctx).Error("Seed run rolled back", slog.Any("error", err))

		return nil, errors.Wrap(err, "seed run failed")
	}

	metrics.SeedRunsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	srv.log(ctx).Info("Seed run committed",
		slog.String("took", util.FormatDuration(time.Since(start))),
		slog.Bool("adminCreated", run.report.AdminCreated),
		slog.Int("users", run.report.Users),
		slog.Int("products", run.report.Products),
		slog.Int("orders", run.report.Orders),
		slog.Int("carts", run.report.Carts),
	)

	return run.report, nil
}

func validateSeedOptions(opts *usecase.SeedOptions) error {
	ve := domainerrors.NewValidationError()
	if strings.TrimSpace(opts.AdminUsername) == "" {
		ve.Add("admin_username", domainerrors.MsgBlank)
	}
	if opts.AdminPassword == "" {
		ve.Add("admin_password", domainerrors.MsgBlank)
	}
	if opts.DefaultPassword == "" {
		ve.Add("default_password", domainerrors.MsgBlank)
	}
	for field, n := range map[string]int{
		"users":       opts.Users,
		"promotions":  opts.Promotions,
		"collections": opts.Collections,
		"products":    opts.Products,
		"orders":      opts.Orders,
		"carts":       opts.Carts,
	} {
		if n < 0 {
			ve.Add(field, "Ensure this value is greater than or equal to 0.")
		}
	}
	if opts.Products > 0 && opts.Collections == 0 {
		ve.Add("collections", "Products need at least one collection.")
	}

	return ve.OrNil()
}

// seedRun carries the state of one seed transaction.
type seedRun struct {
	opts        *usecase.SeedOptions
	fake        *gofakeit.Faker
	adminHash   string
	defaultHash string
	report      *usecase.SeedReport

	users       []*entity.User
	customers   []*entity.Customer
	promotions  []*entity.Promotion
	collections []*entity.Collection
	products    []*entity.Product
}

func (run *seedRun) execute(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	steps := []struct {
		name string
		fn   func(context.Context, repository.RepositoryFactory) error
	}{
		{"users", run.seedUsers},
		{"promotions", run.seedPromotions},
		{"collections", run.seedCollections},
		{"products", run.seedProducts},
		{"featured products", run.seedFeaturedProducts},
		{"customers", run.resolveCustomers},
		{"addresses", run.seedAddresses},
		{"orders", run.seedOrders},
		{"carts", run.seedCarts},
		{"reviews", run.seedReviews},
	}

	for _, step := range steps {
		if err := step.fn(ctx, repoFactory); err != nil {
			return errors.Wrapf(err, "seed %s", step.name)
		}
	}

	return nil
}

func (run *seedRun) seedUsers(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	admin := &entity.User{
		Username:     strings.TrimSpace(run.opts.AdminUsername),
		Email:        run.opts.AdminEmail,
		PasswordHash: run.adminHash,
		IsStaff:      true,
	}
	output, err := ensureUser(ctx, repoFactory, admin)
	if err != nil {
		return err
	}
	run.users = append(run.users, output.User)
	if output.Created {
		run.report.AdminCreated = true
		run.report.Customers++
	}

	for range run.opts.Users {
		output, err := run.newUser(ctx, repoFactory)
		if err != nil {
			return err
		}
		run.users = append(run.users, output.User)
		run.report.Users++
		run.report.Customers++
	}

	return nil
}

// newUser retries on username clashes with rows from earlier runs.
func (run *seedRun) newUser(ctx context.Context, repoFactory repository.RepositoryFactory) (*usecase.RegisterOutput, error) {
	for range maxUsernameRetries {
		firstName, lastName := run.fake.FirstName(), run.fake.LastName()
		user := &entity.User{
			Username:     strings.ToLower(fmt.Sprintf("%s.%s%d", firstName, lastName, run.fake.Number(1, 99999))),
			Email:        run.fake.Email(),
			FirstName:    firstName,
			LastName:     lastName,
			PasswordHash: run.defaultHash,
		}
		if err := user.Validate(); err != nil {
			return nil, err
		}

		output, err := ensureUser(ctx, repoFactory, user)
		if err != nil {
			return nil, err
		}
		if output.Created {
			return output, nil
		}
	}

	return nil, errors.Errorf("no free username after %d attempts", maxUsernameRetries)
}

func (run *seedRun) seedPromotions(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	promotionRepo := repoFactory.NewPromotionRepository()
	for range run.opts.Promotions {
		promotion := &entity.Promotion{
			Description: util.Capitalize(run.fake.Adjective() + " " + run.fake.Noun() + " sale"),
			Discount:    decimal.NewFromFloat(run.fake.Float64Range(5, 50)).Round(2).InexactFloat64(),
		}
		if err := promotion.Validate(); err != nil {
			return err
		}
		if err := promotionRepo.Create(ctx, promotion); err != nil {
			return err
		}
		run.promotions = append(run.promotions, promotion)
	}
	run.report.Promotions = len(run.promotions)

	return nil
}

func (run *seedRun) seedCollections(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	collectionRepo := repoFactory.NewCollectionRepository()
	for range run.opts.Collections {
		collection := &entity.Collection{Title: util.Capitalize(run.fake.Noun())}
		if err := collection.Validate(); err != nil {
			return err
		}
		if err := collectionRepo.Create(ctx, collection); err != nil {
			return err
		}
		run.collections = append(run.collections, collection)
	}
	run.report.Collections = len(run.collections)

	return nil
}

func (run *seedRun) seedProducts(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	productRepo := repoFactory.NewProductRepository()
	for range run.opts.Products {
		title := run.fake.ProductName()
		slug, err := run.uniqueSlug(ctx, productRepo, title)
		if err != nil {
			return err
		}

		product := &entity.Product{
			Title:        title,
			Slug:         slug,
			Description:  run.fake.ProductDescription(),
			UnitPrice:    decimal.NewFromFloat(run.fake.Price(10, 100)).Round(2),
			Inventory:    run.fake.Number(1, 100),
			CollectionID: run.collections[run.fake.Number(0, len(run.collections)-1)].ID,
		}
		if run.fake.Bool() {
			for _, promotion := range run.promotionSubset() {
				product.Promotions = append(product.Promotions, *promotion)
			}
		}
		if err := product.Validate(); err != nil {
			return err
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		run.products = append(run.products, product)
	}
	run.report.Products = len(run.products)

	return nil
}

// uniqueSlug suffixes the slug of title until no product uses it.
func (run *seedRun) uniqueSlug(ctx context.Context, productRepo repository.ProductRepository, title string) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		base = "product"
	}

	slug := base
	for n := 2; ; n++ {
		_, err := productRepo.FindBySlug(ctx, slug)
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// promotionSubset returns a random non-empty subset, or nil when there are no promotions.
func (run *seedRun) promotionSubset() []*entity.Promotion {
	if len(run.promotions) == 0 {
		return nil
	}

	var subset []*entity.Promotion
	for _, promotion := range run.promotions {
		if run.fake.Bool() {
			subset = append(subset, promotion)
		}
	}
	if len(subset) == 0 {
		subset = append(subset, run.promotions[run.fake.Number(0, len(run.promotions)-1)])
	}

	return subset
}

// seedFeaturedProducts picks each collection's featured product from its own products.
func (run *seedRun) seedFeaturedProducts(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	byCollection := make(map[uint][]*entity.Product, len(run.collections))
	for _, product := range run.products {
		byCollection[product.CollectionID] = append(byCollection[product.CollectionID], product)
	}

	collectionRepo := repoFactory.NewCollectionRepository()
	for _, collection := range run.collections {
		own := byCollection[collection.ID]
		if len(own) == 0 {
			continue
		}

		featuredID := own[run.fake.Number(0, len(own)-1)].ID
		collection.FeaturedProductID = &featuredID
		if err := collectionRepo.Update(ctx, collection); err != nil {
			return err
		}
	}

	return nil
}

func (run *seedRun) resolveCustomers(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	customerRepo := repoFactory.NewCustomerRepository()
	for _, user := range run.users {
		customer, err := customerRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			return errors.Wrapf(err, "user %s", user.Username)
		}
		run.customers = append(run.customers, customer)
	}

	return nil
}

func (run *seedRun) seedAddresses(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	addressRepo := repoFactory.NewAddressRepository()
	for _, customer := range run.customers {
		address := &entity.Address{
			CustomerID: customer.ID,
			Street:     run.fake.Street(),
			City:       run.fake.City(),
		}
		if err := addressRepo.Create(ctx, address); err != nil {
			return err
		}
		run.report.Addresses++
	}

	return nil
}

func (run *seedRun) seedOrders(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	if len(run.products) == 0 || len(run.customers) == 0 {
		return nil
	}

	orderRepo := repoFactory.NewOrderRepository()
	for range run.opts.Orders {
		order := &entity.Order{
			CustomerID:    run.customers[run.fake.Number(0, len(run.customers)-1)].ID,
			PlacedAt:      run.fake.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
			PaymentStatus: entity.PaymentStatuses[run.fake.Number(0, len(entity.PaymentStatuses)-1)],
		}
		for range run.fake.Number(1, maxItemsPerOrder) {
			product := run.products[run.fake.Number(0, len(run.products)-1)]
			order.Items = append(order.Items, entity.OrderItem{
				ProductID: product.ID,
				Quantity:  run.fake.Number(1, maxItemQuantity),
				UnitPrice: product.UnitPrice,
			})
		}
		if err := order.Validate(); err != nil {
			return err
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		run.report.Orders++
		run.report.OrderItems += len(order.Items)
	}

	return nil
}

// seedCarts draws cart products from a pool and removes each one once used,
// so no product lands in two carts. Seeding stops early when the pool runs dry.
func (run *seedRun) seedCarts(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	pool := make([]*entity.Product, len(run.products))
	copy(pool, run.products)

	cartRepo := repoFactory.NewCartRepository()
	for range run.opts.Carts {
		if len(pool) == 0 {
			break
		}

		cart := &entity.Cart{ID: uuid.New()}
		if err := cartRepo.Create(ctx, cart); err != nil {
			return err
		}
		run.report.Carts++

		for range min(run.fake.Number(1, maxItemsPerCart), len(pool)) {
			i := run.fake.Number(0, len(pool)-1)
			product := pool[i]
			pool = append(pool[:i], pool[i+1:]...)

			item := &entity.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  run.fake.Number(1, maxItemQuantity),
			}
			if err := cartRepo.AddItem(ctx, item); err != nil {
				return err
			}
			run.report.CartItems++
		}
	}

	return nil
}

func (run *seedRun) seedReviews(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	reviewRepo := repoFactory.NewReviewRepository()
	for _, product := range run.products {
		for range run.fake.Number(1, maxReviews) {
			review := &entity.Review{
				ProductID:   product.ID,
				Name:        run.fake.FirstName() + " " + run.fake.LastName(),
				Description: run.fake.ProductDescription(),
				Date:        run.fake.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).Truncate(24 * time.Hour),
			}
			if err := reviewRepo.Create(ctx, review); err != nil {
				return err
			}
			run.report.Reviews++
		}
	}

	return nil
}
