package impl

import (
	"context"
	"sync"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/policy"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/qrcode"
	"storefront/internal/testutil"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mockNotifier records every email it is asked to send.
type mockNotifier struct {
	mock.Mock

	mu   sync.Mutex
	sent []*service.EmailMessage
}

func newMockNotifier() *mockNotifier {
	n := &mockNotifier{}
	n.On("Send", mock.Anything, mock.AnythingOfType("*service.EmailMessage")).Maybe()

	return n
}

func (n *mockNotifier) Send(ctx context.Context, msg *service.EmailMessage) {
	n.Called(ctx, msg)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *mockNotifier) templates() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	names := make([]string, 0, len(n.sent))
	for _, msg := range n.sent {
		names = append(names, msg.Template)
	}

	return names
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "access-secret", Refresh: "refresh-secret"},
		Auth:      &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Store:     &config.StoreConfig{DefaultPageSize: 2, MaxPageSize: 5, TaxRate: 0.1},
		QRCode:    &config.QRCodeConfig{Size: 128},
	}
}

// serviceFixtures wires every service against one SQLite database.
type serviceFixtures struct {
	db       *gorm.DB
	notifier *mockNotifier
	hasher   service.PasswordHasher

	users       usecase.UserUsecase
	customers   usecase.CustomerUsecase
	collections usecase.CollectionUsecase
	products    usecase.ProductUsecase
	promotions  usecase.PromotionUsecase
	reviews     usecase.ReviewUsecase
	carts       usecase.CartUsecase
	orders      usecase.OrderUsecase
	seed        usecase.SeedUsecase
}

func createTestServices(t *testing.T) *serviceFixtures {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := newTestConfig()
	logger := testutil.DiscardLogger()
	txManager := postgres.NewTransactionManager(db)
	notifier := newMockNotifier()
	hasher := auth.NewBcryptHasher(cfg)

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	productRepo := postgres.NewProductRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)

	return &serviceFixtures{
		db:       db,
		notifier: notifier,
		hasher:   hasher,
		users: NewUserService(UserServiceParams{
			TxManager:    txManager,
			UserRepo:     postgres.NewUserRepository(db),
			Hasher:       hasher,
			TokenService: tokenService,
			Notifier:     notifier,
			Logger:       logger,
		}),
		customers: NewCustomerService(CustomerServiceParams{
			CustomerRepo: customerRepo,
			AddressRepo:  postgres.NewAddressRepository(db),
		}),
		collections: NewCollectionService(CollectionServiceParams{
			TxManager:      txManager,
			CollectionRepo: postgres.NewCollectionRepository(db),
			Logger:         logger,
		}),
		products: NewProductService(ProductServiceParams{
			TxManager:   txManager,
			ProductRepo: productRepo,
			Config:      cfg,
			Logger:      logger,
		}),
		promotions: NewPromotionService(postgres.NewPromotionRepository(db), logger),
		reviews: NewReviewService(ReviewServiceParams{
			ProductRepo: productRepo,
			ReviewRepo:  postgres.NewReviewRepository(db),
		}),
		carts: NewCartService(CartServiceParams{
			TxManager:     txManager,
			CartRepo:      postgres.NewCartRepository(db),
			QRCodeService: qrcode.NewQRCodeService(cfg),
			Logger:        logger,
		}),
		orders: NewOrderService(OrderServiceParams{
			TxManager:    txManager,
			OrderRepo:    postgres.NewOrderRepository(db),
			CustomerRepo: customerRepo,
			Notifier:     notifier,
			Logger:       logger,
		}),
		seed: NewSeedService(SeedServiceParams{
			TxManager: txManager,
			Hasher:    hasher,
			Logger:    logger,
		}),
	}
}

func (f *serviceFixtures) register(t *testing.T, username string, isStaff bool) policy.Caller {
	t.Helper()

	output, err := f.users.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret-pass",
		IsStaff:  isStaff,
	})
	require.NoError(t, err)

	return policy.Caller{UserID: output.User.ID, IsStaff: isStaff}
}

func (f *serviceFixtures) createCollection(t *testing.T, title string) *entity.Collection {
	t.Helper()

	collection, err := f.collections.Create(context.Background(), &usecase.CollectionInput{Title: &title})
	require.NoError(t, err)

	return collection
}

func (f *serviceFixtures) createProduct(t *testing.T, collectionID uint, slug, price string, inventory int) *entity.Product {
	t.Helper()

	unitPrice := decimal.RequireFromString(price)
	product, err := f.products.Create(context.Background(), &usecase.ProductInput{
		Title:        &slug,
		Slug:         &slug,
		UnitPrice:    &unitPrice,
		Inventory:    &inventory,
		CollectionID: &collectionID,
	})
	require.NoError(t, err)

	return product
}

func ptr[T any](v T) *T {
	return &v
}
