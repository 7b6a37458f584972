package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectionBody struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	ProductsCount int    `json:"products_count"`
}

type featuredBody struct {
	ID              uint  `json:"id"`
	FeaturedProduct *uint `json:"featured_product"`
}

type productBody struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	UnitPrice    string `json:"unit_price"`
	PriceWithTax string `json:"price_with_tax"`
	Inventory    int    `json:"inventory"`
	Collection   uint   `json:"collection"`
	Promotions   []uint `json:"promotions"`
}

type productPage struct {
	Count    int64         `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []productBody `json:"results"`
}

func TestHealthCheck(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCollections_Permissions(t *testing.T) {
	a := newTestAPI(t)
	customer := a.login("shopper", false)
	body := map[string]any{"title": "Beverages"}

	t.Run("anonymous write is unauthenticated", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/store/collections", body, "")

		errBody := requireError(t, rec, http.StatusUnauthorized, "NOT_AUTHENTICATED")
		assert.Nil(t, errBody.Error.Details)
		assert.NotEmpty(t, errBody.Meta.RequestID)
		assert.Equal(t, errBody.Meta.RequestID, rec.Header().Get(deliverycontext.HeaderXRequestID))
	})

	t.Run("non staff write is forbidden", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/store/collections", body, customer)

		requireError(t, rec, http.StatusForbidden, "PERMISSION_DENIED")
	})

	t.Run("anonymous read is allowed", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/store/collections", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/store/collections", nil, "not-a-token")

		requireError(t, rec, http.StatusUnauthorized, "INVALID_TOKEN")
	})

	t.Run("unknown scheme is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/store/collections", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic "+customer)
		rec := httptest.NewRecorder()
		a.echo.ServeHTTP(rec, req)

		requireError(t, rec, http.StatusUnauthorized, "INVALID_TOKEN")
	})

	t.Run("bearer scheme is accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/store/collections", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+customer)
		rec := httptest.NewRecorder()
		a.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCollections_CRUD(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)

	rec := a.do(http.MethodPost, "/store/collections", map[string]any{}, admin)
	errBody := requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "title")

	rec = a.do(http.MethodPost, "/store/collections", map[string]any{"title": strings.Repeat("x", 256)}, admin)
	errBody = requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Equal(t, []string{"Ensure this field has no more than 255 characters."}, errBody.Error.Details["title"])

	rec = a.do(http.MethodPost, "/store/collections", `{"title":`, admin)
	requireError(t, rec, http.StatusBadRequest, "INVALID_INPUT")

	rec = a.do(http.MethodPost, "/store/collections", map[string]any{"title": "Beverages"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[collectionBody](t, rec)
	assert.Equal(t, "Beverages", created.Title)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"title":"Beverages","products_count":0}`, created.ID), rec.Body.String())

	rec = a.do(http.MethodPut, pathf("/store/collections/%d", created.ID), map[string]any{"title": "Soft drinks"}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"title":"Soft drinks","products_count":0}`, created.ID), rec.Body.String())

	rec = a.do(http.MethodPatch, pathf("/store/collections/%d", created.ID), map[string]any{"title": "Drinks"}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"title":"Drinks","products_count":0}`, created.ID), rec.Body.String())

	rec = a.do(http.MethodGet, pathf("/store/collections/%d", created.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"title":"Drinks","products_count":0}`, created.ID), rec.Body.String())

	// Trailing slashes resolve to the same route.
	rec = a.do(http.MethodGet, pathf("/store/collections/%d/", created.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Drinks", decode[collectionBody](t, rec).Title)

	rec = a.do(http.MethodGet, "/store/collections/9999", nil, "")
	requireError(t, rec, http.StatusNotFound, "COLLECTION_NOT_FOUND")

	rec = a.do(http.MethodGet, "/store/collections/abc", nil, "")
	requireError(t, rec, http.StatusNotFound, "NOT_FOUND")

	rec = a.do(http.MethodDelete, pathf("/store/collections/%d", created.ID), nil, admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodGet, pathf("/store/collections/%d", created.ID), nil, "")
	requireError(t, rec, http.StatusNotFound, "COLLECTION_NOT_FOUND")
}

func TestCollections_DeleteWithProductsRefused(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)
	collectionID, _ := a.createCatalog(admin, "espresso", "10.00", 5)

	rec := a.do(http.MethodGet, pathf("/store/collections/%d", collectionID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[collectionBody](t, rec).ProductsCount)

	rec = a.do(http.MethodDelete, pathf("/store/collections/%d", collectionID), nil, admin)
	requireError(t, rec, http.StatusBadRequest, "COLLECTION_HAS_PRODUCTS")
}

func TestCollections_FeaturedProduct(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)
	collectionID, productID := a.createCatalog(admin, "espresso", "10.00", 5)
	_, foreignID := a.createCatalog(admin, "teapot", "20.00", 5)

	rec := a.do(http.MethodPut, pathf("/store/collections/%d/featured-product", collectionID),
		map[string]any{"product_id": foreignID}, admin)
	errBody := requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "product_id")

	rec = a.do(http.MethodPut, pathf("/store/collections/%d/featured-product", collectionID),
		map[string]any{"product_id": productID}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"featured_product":%d}`, collectionID, productID), rec.Body.String())

	rec = a.do(http.MethodPut, pathf("/store/collections/%d/featured-product", collectionID),
		map[string]any{"product_id": nil}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decode[featuredBody](t, rec).FeaturedProduct)

	// The regular representation never carries the featured product.
	rec = a.do(http.MethodGet, pathf("/store/collections/%d", collectionID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"title":"Collection espresso","products_count":1}`, collectionID), rec.Body.String())
}

func TestProducts_CreateAndGet(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)
	collectionID, productID := a.createCatalog(admin, "espresso", "10.00", 5)

	rec := a.do(http.MethodGet, pathf("/store/products/%d", productID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	product := decode[productBody](t, rec)
	assert.Equal(t, "espresso", product.Slug)
	assert.Equal(t, "10.00", product.UnitPrice)
	assert.Equal(t, "11.00", product.PriceWithTax)
	assert.Equal(t, collectionID, product.Collection)
	assert.Empty(t, product.Promotions)

	rec = a.do(http.MethodPost, "/store/products", map[string]any{
		"title":      "Broken",
		"slug":       "broken",
		"unit_price": "0",
		"inventory":  -1,
		"collection": collectionID,
	}, admin)
	errBody := requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "unit_price")
	assert.Contains(t, errBody.Error.Details, "inventory")

	rec = a.do(http.MethodPost, "/store/products", map[string]any{"title": "", "unit_price": -5, "inventory": -1}, admin)
	errBody = requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	for _, field := range []string{"title", "unit_price", "inventory"} {
		assert.Contains(t, errBody.Error.Details, field)
	}
	assert.Equal(t, []string{"This field may not be blank."}, errBody.Error.Details["title"])

	rec = a.do(http.MethodPost, "/store/products", map[string]any{"inventory": "many"}, admin)
	errBody = requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "inventory")

	rec = a.do(http.MethodPatch, pathf("/store/products/%d", productID), map[string]any{"inventory": 42}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 42, decode[productBody](t, rec).Inventory)

	rec = a.do(http.MethodDelete, pathf("/store/products/%d", productID), nil, a.login("shopper", false))
	requireError(t, rec, http.StatusForbidden, "PERMISSION_DENIED")

	rec = a.do(http.MethodDelete, pathf("/store/products/%d", productID), nil, admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodGet, pathf("/store/products/%d", productID), nil, "")
	requireError(t, rec, http.StatusNotFound, "PRODUCT_NOT_FOUND")
}

func TestProducts_ListPaging(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)
	collectionID, _ := a.createCatalog(admin, "a-espresso", "30.00", 5)
	a.createProduct(admin, collectionID, "b-latte", "10.00", 5)
	a.createProduct(admin, collectionID, "c-mocha", "20.00", 5)
	otherID, _ := a.createCatalog(admin, "d-teapot", "5.00", 5)

	rec := a.do(http.MethodGet, "/store/products?ordering=unit_price", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[productPage](t, rec)
	assert.EqualValues(t, 4, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "d-teapot", page.Results[0].Slug)
	assert.Equal(t, "b-latte", page.Results[1].Slug)
	assert.Nil(t, page.Previous)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/store/products?ordering=unit_price&page=2", *page.Next)

	rec = a.do(http.MethodGet, "/store/products?ordering=unit_price&page=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[productPage](t, rec)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "a-espresso", page.Results[1].Slug)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://example.com/store/products?ordering=unit_price", *page.Previous)

	rec = a.do(http.MethodGet, pathf("/store/products?collection_id=%d", otherID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[productPage](t, rec)
	assert.EqualValues(t, 1, page.Count)

	rec = a.do(http.MethodGet, "/store/products?search=mocha", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[productPage](t, rec)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "c-mocha", page.Results[0].Slug)

	rec = a.do(http.MethodGet, "/store/products?ordering=popularity", nil, "")
	errBody := requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "ordering")

	rec = a.do(http.MethodGet, "/store/products?page=9", nil, "")
	requireError(t, rec, http.StatusNotFound, "NOT_FOUND")

	rec = a.do(http.MethodGet, "/store/products?page=x", nil, "")
	requireError(t, rec, http.StatusNotFound, "NOT_FOUND")
}

func TestPromotions(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)

	rec := a.do(http.MethodPost, "/store/promotions", map[string]any{"description": "Summer", "discount": 0.2}, "")
	requireError(t, rec, http.StatusUnauthorized, "NOT_AUTHENTICATED")

	rec = a.do(http.MethodPost, "/store/promotions", map[string]any{"description": "Summer"}, admin)
	errBody := requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "discount")

	rec = a.do(http.MethodPost, "/store/promotions", map[string]any{"description": "Summer", "discount": 0.2}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	promotionID := decode[idBody](t, rec).ID

	collectionID, _ := a.createCatalog(admin, "espresso", "10.00", 5)
	rec = a.do(http.MethodPost, "/store/products", map[string]any{
		"title":      "Latte",
		"slug":       "latte",
		"unit_price": "4.50",
		"inventory":  3,
		"collection": collectionID,
		"promotions": []uint{promotionID},
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, []uint{promotionID}, decode[productBody](t, rec).Promotions)

	rec = a.do(http.MethodGet, "/store/promotions", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idBody](t, rec), 1)
}

func TestReviews(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)
	_, productID := a.createCatalog(admin, "espresso", "10.00", 5)
	reviews := pathf("/store/products/%d/reviews", productID)

	rec := a.do(http.MethodPost, reviews, map[string]any{"name": "Ann", "description": "Great"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reviewID := decode[idBody](t, rec).ID

	rec = a.do(http.MethodPost, reviews, map[string]any{"name": "Ann"}, "")
	errBody := requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Equal(t, []string{"This field is required."}, errBody.Error.Details["description"])

	rec = a.do(http.MethodPost, "/store/products/9999/reviews", map[string]any{"name": "Ann", "description": "Great"}, "")
	requireError(t, rec, http.StatusNotFound, "PRODUCT_NOT_FOUND")

	rec = a.do(http.MethodGet, reviews, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idBody](t, rec), 1)

	review := pathf("/store/products/%d/reviews/%d", productID, reviewID)
	rec = a.do(http.MethodDelete, review, nil, "")
	requireError(t, rec, http.StatusUnauthorized, "NOT_AUTHENTICATED")

	rec = a.do(http.MethodDelete, review, nil, admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodGet, review, nil, "")
	requireError(t, rec, http.StatusNotFound, "REVIEW_NOT_FOUND")
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestAPI(t)
	a.do(http.MethodGet, "/health", nil, "")

	rec := a.do(http.MethodGet, "/metrics", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")
}

func TestCatalog_AccessTable(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)
	customer := a.login("shopper", false)
	collectionID, productID := a.createCatalog(admin, "espresso", "10.00", 5)

	collectionBodyJSON := map[string]any{"title": "Beverages"}
	productBodyJSON := map[string]any{
		"title":      "Latte",
		"slug":       "latte",
		"unit_price": "4.00",
		"inventory":  3,
		"collection": collectionID,
	}
	collection := pathf("/store/collections/%d", collectionID)
	product := pathf("/store/products/%d", productID)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		token    string
		wantCode int
		wantErr  string
	}{
		{"anonymous put collection", http.MethodPut, collection, collectionBodyJSON, "", http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"anonymous patch collection", http.MethodPatch, collection, collectionBodyJSON, "", http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"anonymous delete collection", http.MethodDelete, collection, nil, "", http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"anonymous delete missing collection", http.MethodDelete, "/store/collections/999", nil, "", http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"anonymous post product", http.MethodPost, "/store/products", productBodyJSON, "", http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"anonymous put product", http.MethodPut, product, productBodyJSON, "", http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"anonymous patch product", http.MethodPatch, product, productBodyJSON, "", http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"anonymous delete product", http.MethodDelete, product, nil, "", http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"customer put collection", http.MethodPut, collection, collectionBodyJSON, customer, http.StatusForbidden, "PERMISSION_DENIED"},
		{"customer patch collection", http.MethodPatch, collection, collectionBodyJSON, customer, http.StatusForbidden, "PERMISSION_DENIED"},
		{"customer delete collection", http.MethodDelete, collection, nil, customer, http.StatusForbidden, "PERMISSION_DENIED"},
		{"customer post product", http.MethodPost, "/store/products", productBodyJSON, customer, http.StatusForbidden, "PERMISSION_DENIED"},
		{"customer put product", http.MethodPut, product, productBodyJSON, customer, http.StatusForbidden, "PERMISSION_DENIED"},
		{"customer patch product", http.MethodPatch, product, productBodyJSON, customer, http.StatusForbidden, "PERMISSION_DENIED"},
		{"admin put missing collection", http.MethodPut, "/store/collections/999", collectionBodyJSON, admin, http.StatusNotFound, "COLLECTION_NOT_FOUND"},
		{"admin patch missing collection", http.MethodPatch, "/store/collections/999", collectionBodyJSON, admin, http.StatusNotFound, "COLLECTION_NOT_FOUND"},
		{"admin delete missing collection", http.MethodDelete, "/store/collections/999", nil, admin, http.StatusNotFound, "COLLECTION_NOT_FOUND"},
		{"admin put missing product", http.MethodPut, "/store/products/999", productBodyJSON, admin, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"admin delete missing product", http.MethodDelete, "/store/products/999", nil, admin, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"read collection zero id", http.MethodGet, "/store/collections/0", nil, "", http.StatusNotFound, "NOT_FOUND"},
		{"read missing product", http.MethodGet, "/store/products/999", nil, customer, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt.method, tt.path, tt.body, tt.token)

			requireError(t, rec, tt.wantCode, tt.wantErr)
		})
	}

	// Nothing above may have changed the catalog.
	rec := a.do(http.MethodGet, collection, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Collection espresso", decode[collectionBody](t, rec).Title)

	rec = a.do(http.MethodGet, product, nil, customer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "espresso", decode[productBody](t, rec).Slug)
}

func TestCollections_ListReturnsEveryCollection(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)

	titles := []string{"Bakery", "Beverages", "Dairy"}
	for _, title := range titles {
		rec := a.do(http.MethodPost, "/store/collections", map[string]any{"title": title}, admin)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	for _, token := range []string{"", a.login("shopper", false), admin} {
		rec := a.do(http.MethodGet, "/store/collections", nil, token)
		require.Equal(t, http.StatusOK, rec.Code)

		collections := decode[[]collectionBody](t, rec)
		require.Len(t, collections, len(titles))
		got := make([]string, 0, len(collections))
		for _, c := range collections {
			got = append(got, c.Title)
		}
		assert.ElementsMatch(t, titles, got)
	}
}
