package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartBody struct {
	ID    uuid.UUID `json:"id"`
	Items []struct {
		ID      uint `json:"id"`
		Product struct {
			ID        uint   `json:"id"`
			Title     string `json:"title"`
			UnitPrice string `json:"unit_price"`
		} `json:"product"`
		Quantity   int    `json:"quantity"`
		TotalPrice string `json:"total_price"`
	} `json:"items"`
	TotalPrice string `json:"total_price"`
}

type orderBody struct {
	ID            uint   `json:"id"`
	Customer      uint   `json:"customer"`
	PaymentStatus string `json:"payment_status"`
	Items         []struct {
		Product   uint   `json:"product"`
		Quantity  int    `json:"quantity"`
		UnitPrice string `json:"unit_price"`
	} `json:"items"`
	TotalPrice string `json:"total_price"`
}

// newCart creates a cart holding quantity units of productID.
func (a *testAPI) newCart(productID uint, quantity int) uuid.UUID {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/store/carts", nil, "")
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	cartID := decode[cartBody](a.t, rec).ID

	rec = a.do(http.MethodPost, pathf("/store/carts/%s/items", cartID),
		map[string]any{"product_id": productID, "quantity": quantity}, "")
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	return cartID
}

func TestCarts(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)
	_, productID := a.createCatalog(admin, "espresso", "2.50", 10)

	rec := a.do(http.MethodPost, "/store/carts", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	cart := decode[cartBody](t, rec)
	assert.NotEqual(t, uuid.Nil, cart.ID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0.00", cart.TotalPrice)

	items := pathf("/store/carts/%s/items", cart.ID)

	rec = a.do(http.MethodPost, items, map[string]any{"product_id": productID, "quantity": 2}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Adding the same product again merges into the existing line.
	rec = a.do(http.MethodPost, items, map[string]any{"product_id": productID, "quantity": 1}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, pathf("/store/carts/%s", cart.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartBody](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "7.50", cart.Items[0].TotalPrice)
	assert.Equal(t, "2.50", cart.Items[0].Product.UnitPrice)
	assert.Equal(t, "7.50", cart.TotalPrice)

	item := pathf("/store/carts/%s/items/%d", cart.ID, cart.Items[0].ID)

	rec = a.do(http.MethodPatch, item, map[string]any{"quantity": 0}, "")
	errBody := requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "quantity")

	rec = a.do(http.MethodPatch, item, map[string]any{"quantity": 5}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, item, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_price":"12.50"`)

	rec = a.do(http.MethodPost, items, map[string]any{"product_id": 9999, "quantity": 1}, "")
	errBody = requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "product_id")

	rec = a.do(http.MethodGet, pathf("/store/carts/%s/qr", cart.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte("\x89PNG"), rec.Body.Bytes()[:4])

	rec = a.do(http.MethodPost, "/store/carts/resolve", map[string]any{"data": `{"type":"cart","cart_id":"` + cart.ID.String() + `"}`}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, cart.ID, decode[cartBody](t, rec).ID)

	rec = a.do(http.MethodPost, "/store/carts/resolve", map[string]any{"data": "hello"}, "")
	errBody = requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "data")

	rec = a.do(http.MethodDelete, item, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodGet, item, nil, "")
	requireError(t, rec, http.StatusNotFound, "CART_ITEM_NOT_FOUND")

	rec = a.do(http.MethodDelete, pathf("/store/carts/%s", cart.ID), nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodGet, pathf("/store/carts/%s", cart.ID), nil, "")
	requireError(t, rec, http.StatusNotFound, "CART_NOT_FOUND")

	rec = a.do(http.MethodGet, "/store/carts/not-a-uuid", nil, "")
	requireError(t, rec, http.StatusNotFound, "NOT_FOUND")
}

func TestOrders_PlaceAndVisibility(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)
	alice := a.login("alice", false)
	bob := a.login("bob", false)
	_, productID := a.createCatalog(admin, "espresso", "4.00", 10)
	cartID := a.newCart(productID, 3)

	rec := a.do(http.MethodPost, "/store/orders", map[string]any{"cart_id": cartID}, "")
	requireError(t, rec, http.StatusUnauthorized, "NOT_AUTHENTICATED")

	rec = a.do(http.MethodPost, "/store/orders", map[string]any{"cart_id": "nope"}, alice)
	errBody := requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Equal(t, []string{"Must be a valid UUID."}, errBody.Error.Details["cart_id"])

	rec = a.do(http.MethodPost, "/store/orders", map[string]any{"cart_id": uuid.New()}, alice)
	errBody = requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "cart_id")

	rec = a.do(http.MethodPost, "/store/orders", map[string]any{"cart_id": cartID}, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[orderBody](t, rec)
	assert.Equal(t, "P", order.PaymentStatus)
	assert.Equal(t, "12.00", order.TotalPrice)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "4.00", order.Items[0].UnitPrice)

	rec = a.do(http.MethodGet, pathf("/store/carts/%s", cartID), nil, "")
	requireError(t, rec, http.StatusNotFound, "CART_NOT_FOUND")

	rec = a.do(http.MethodGet, pathf("/store/products/%d", productID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, decode[productBody](t, rec).Inventory)

	orderPath := pathf("/store/orders/%d", order.ID)

	rec = a.do(http.MethodGet, orderPath, nil, alice)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, orderPath, nil, bob)
	requireError(t, rec, http.StatusNotFound, "ORDER_NOT_FOUND")

	rec = a.do(http.MethodGet, "/store/orders", nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]orderBody](t, rec))

	rec = a.do(http.MethodGet, "/store/orders", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]orderBody](t, rec), 1)

	rec = a.do(http.MethodDelete, pathf("/store/products/%d", productID), nil, admin)
	requireError(t, rec, http.StatusBadRequest, "PRODUCT_HAS_ORDER_ITEMS")
}

func TestOrders_PaymentStatus(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)
	alice := a.login("alice", false)
	_, productID := a.createCatalog(admin, "espresso", "4.00", 10)

	rec := a.do(http.MethodPost, "/store/orders", map[string]any{"cart_id": a.newCart(productID, 1)}, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	orderPath := pathf("/store/orders/%d", decode[orderBody](t, rec).ID)

	rec = a.do(http.MethodPatch, orderPath, map[string]any{"payment_status": "C"}, alice)
	requireError(t, rec, http.StatusForbidden, "PERMISSION_DENIED")

	rec = a.do(http.MethodPatch, orderPath, map[string]any{"payment_status": "X"}, admin)
	errBody := requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Equal(t, []string{`"X" is not a valid choice.`}, errBody.Error.Details["payment_status"])

	rec = a.do(http.MethodPatch, orderPath, map[string]any{"payment_status": "C"}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "C", decode[orderBody](t, rec).PaymentStatus)

	rec = a.do(http.MethodPatch, "/store/orders/9999", map[string]any{"payment_status": "C"}, admin)
	requireError(t, rec, http.StatusNotFound, "ORDER_NOT_FOUND")
}

func TestOrders_InsufficientInventory(t *testing.T) {
	a := newTestAPI(t)
	admin := a.login("admin", true)
	alice := a.login("alice", false)
	_, productID := a.createCatalog(admin, "espresso", "4.00", 2)
	cartID := a.newCart(productID, 3)

	rec := a.do(http.MethodPost, "/store/orders", map[string]any{"cart_id": cartID}, alice)
	requireError(t, rec, http.StatusBadRequest, "INSUFFICIENT_INVENTORY")

	rec = a.do(http.MethodGet, pathf("/store/carts/%s", cartID), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/store/orders", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]orderBody](t, rec))
}

func TestCustomerMe(t *testing.T) {
	a := newTestAPI(t)
	alice := a.login("alice", false)

	rec := a.do(http.MethodGet, "/store/customers/me", nil, "")
	requireError(t, rec, http.StatusUnauthorized, "NOT_AUTHENTICATED")

	rec = a.do(http.MethodGet, "/store/customers/me", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"membership":"B"`)
	assert.Contains(t, rec.Body.String(), `"birth_date":null`)

	rec = a.do(http.MethodPut, "/store/customers/me", map[string]any{"birth_date": "31/12/1990"}, alice)
	errBody := requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "birth_date")

	rec = a.do(http.MethodPut, "/store/customers/me", map[string]any{"phone": "555-0100", "birth_date": "1990-12-31"}, alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"birth_date":"1990-12-31"`)
	assert.Contains(t, rec.Body.String(), `"phone":"555-0100"`)

	rec = a.do(http.MethodPost, "/store/customers/me/addresses", map[string]any{"street": "1 Main St"}, alice)
	errBody = requireError(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	assert.Contains(t, errBody.Error.Details, "city")

	rec = a.do(http.MethodPost, "/store/customers/me/addresses", map[string]any{"street": "1 Main St", "city": "Springfield"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, "/store/customers/me/addresses", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idBody](t, rec), 1)
}
