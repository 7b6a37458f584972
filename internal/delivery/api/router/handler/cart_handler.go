package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
}

// CartHandler serves anonymous carts under /store/carts.
type CartHandler struct {
	cartUC usecase.CartUsecase
}

func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{cartUC: params.CartUC}
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"min=1"`
}

// ResolveCartRequest carries the text decoded from a cart QR code.
type ResolveCartRequest struct {
	Data string `json:"data" validate:"required"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

func (h *CartHandler) Create(c echo.Context) error {
	cart, err := h.cartUC.Create(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Created(c, toCartResponse(cart))
}

func (h *CartHandler) Get(c echo.Context) error {
	cartID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cart, err := h.cartUC.Get(c.Request().Context(), cartID)
	if err != nil {
		return err
	}

	return response.OK(c, toCartResponse(cart))
}

func (h *CartHandler) Delete(c echo.Context) error {
	cartID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.cartUC.Delete(c.Request().Context(), cartID); err != nil {
		return err
	}

	return response.NoContent(c)
}

// QRCode returns a PNG encoding the cart id.
func (h *CartHandler) QRCode(c echo.Context) error {
	cartID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.cartUC.QRCode(c.Request().Context(), cartID)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Resolve opens the cart named by a scanned QR code on another device.
func (h *CartHandler) Resolve(c echo.Context) error {
	var req ResolveCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cart, err := h.cartUC.Resolve(c.Request().Context(), req.Data)
	if err != nil {
		return err
	}

	return response.OK(c, toCartResponse(cart))
}

func (h *CartHandler) ListItems(c echo.Context) error {
	cartID, err := pathUUID(c, "cart_id")
	if err != nil {
		return err
	}

	cart, err := h.cartUC.Get(c.Request().Context(), cartID)
	if err != nil {
		return err
	}

	return response.OK(c, toCartResponse(cart).Items)
}

func (h *CartHandler) GetItem(c echo.Context) error {
	cartID, itemID, err := cartItemPath(c)
	if err != nil {
		return err
	}

	cart, err := h.cartUC.Get(c.Request().Context(), cartID)
	if err != nil {
		return err
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return response.OK(c, toCartItemResponse(&cart.Items[i]))
		}
	}

	return domainerrors.ErrCartItemNotFound.WrapMessage("item not in cart")
}

func (h *CartHandler) AddItem(c echo.Context) error {
	cartID, err := pathUUID(c, "cart_id")
	if err != nil {
		return err
	}

	var req AddCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.cartUC.AddItem(c.Request().Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return response.Created(c, toCartItemResponse(item))
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	cartID, itemID, err := cartItemPath(c)
	if err != nil {
		return err
	}

	var req UpdateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.cartUC.UpdateItem(c.Request().Context(), cartID, itemID, req.Quantity)
	if err != nil {
		return err
	}

	return response.OK(c, toCartItemResponse(item))
}

func (h *CartHandler) DeleteItem(c echo.Context) error {
	cartID, itemID, err := cartItemPath(c)
	if err != nil {
		return err
	}

	if err := h.cartUC.DeleteItem(c.Request().Context(), cartID, itemID); err != nil {
		return err
	}

	return response.NoContent(c)
}

func cartItemPath(c echo.Context) (cartID uuid.UUID, itemID uint, err error) {
	if cartID, err = pathUUID(c, "cart_id"); err != nil {
		return uuid.Nil, 0, err
	}
	if itemID, err = pathID(c, "id"); err != nil {
		return uuid.Nil, 0, err
	}

	return cartID, itemID, nil
}
