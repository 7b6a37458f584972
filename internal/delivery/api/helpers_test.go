package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"
	"storefront/internal/delivery/api"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/mail"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/pubsub"
	"storefront/internal/infra/qrcode"
	"storefront/internal/testutil"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "secret-pass"

type testAPI struct {
	t     *testing.T
	echo  *echo.Echo
	users usecase.UserUsecase
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "access-secret", Refresh: "refresh-secret"},
		Auth:      &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Store:     &config.StoreConfig{DefaultPageSize: 2, MaxPageSize: 5, TaxRate: 0.1},
		QRCode:    &config.QRCodeConfig{Size: 128},
		Metrics:   &config.MetricsConfig{Enabled: true},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	return cfg
}

// newTestAPI wires the whole application on a private SQLite database.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := newTestConfig()

	var (
		routerParams router.RouterParams
		users        usecase.UserUsecase
	)

	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(
			func() *gorm.DB { return db },
			testutil.DiscardLogger,

			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewCustomerRepository,
			postgres.NewAddressRepository,
			postgres.NewCollectionRepository,
			postgres.NewProductRepository,
			postgres.NewPromotionRepository,
			postgres.NewReviewRepository,
			postgres.NewCartRepository,
			postgres.NewOrderRepository,

			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.NewQRCodeService,
			pubsub.NewEventPublisher,
			mail.New,

			impl.NewUserService,
			impl.NewCustomerService,
			impl.NewCollectionService,
			impl.NewProductService,
			impl.NewPromotionService,
			impl.NewReviewService,
			impl.NewCartService,
			impl.NewOrderService,

			middleware.NewAuthMiddleware,

			handler.NewUserHandler,
			handler.NewCollectionHandler,
			handler.NewProductHandler,
			handler.NewPromotionHandler,
			handler.NewReviewHandler,
			handler.NewCartHandler,
			handler.NewCustomerHandler,
			handler.NewOrderHandler,
		),
		fx.Invoke(func(params router.RouterParams, uc usecase.UserUsecase) {
			routerParams = params
			users = uc
		}),
	)
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	return &testAPI{
		t:     t,
		echo:  api.NewEcho(cfg, testutil.DiscardLogger(), routerParams),
		users: users,
	}
}

// do sends a JSON request. An empty token sends no Authorization header.
func (a *testAPI) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "JWT "+token)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	return rec
}

// login registers username and returns its access token.
func (a *testAPI) login(username string, isStaff bool) string {
	a.t.Helper()

	ctx := context.Background()
	_, err := a.users.RegisterUser(ctx, &usecase.RegisterUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
		IsStaff:  isStaff,
	})
	require.NoError(a.t, err)

	output, err := a.users.Login(ctx, &usecase.LoginInput{Username: username, Password: testPassword})
	require.NoError(a.t, err)

	return output.AccessToken
}

// decode unmarshals the response body into T.
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

type errorBody struct {
	Error struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) errorBody {
	t.Helper()

	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[errorBody](t, rec)
	require.Equal(t, code, body.Error.Code)

	return body
}

type idBody struct {
	ID uint `json:"id"`
}

// createCatalog makes a collection holding one product and returns both ids.
func (a *testAPI) createCatalog(adminToken, slug, price string, inventory int) (collectionID, productID uint) {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/store/collections", map[string]any{"title": "Collection " + slug}, adminToken)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	collectionID = decode[idBody](a.t, rec).ID

	productID = a.createProduct(adminToken, collectionID, slug, price, inventory)

	return collectionID, productID
}

func (a *testAPI) createProduct(adminToken string, collectionID uint, slug, price string, inventory int) uint {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/store/products", map[string]any{
		"title":       "Product " + slug,
		"slug":        slug,
		"description": "A product",
		"unit_price":  price,
		"inventory":   inventory,
		"collection":  collectionID,
	}, adminToken)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[idBody](a.t, rec).ID
}

func pathf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
