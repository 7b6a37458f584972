package handler

import (
	"log/slog"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves /store/orders.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

type PlaceOrderRequest struct {
	CartID string `json:"cart_id" validate:"required,uuid"`
}

type UpdateOrderRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=P C F"`
}

func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orderUC.List(c.Request().Context(), deliverycontext.GetCaller(c))
	if err != nil {
		return err
	}

	return response.OK(c, mapSlice(orders, toOrderResponse))
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderUC.Get(c.Request().Context(), deliverycontext.GetCaller(c), id)
	if err != nil {
		return err
	}

	return response.OK(c, toOrderResponse(order))
}

// Place turns a cart into an order of the caller.
func (h *OrderHandler) Place(c echo.Context) error {
	var req PlaceOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.Place(c.Request().Context(), deliverycontext.GetCaller(c), uuid.MustParse(req.CartID))
	if err != nil {
		return err
	}

	return response.Created(c, toOrderResponse(order))
}

func (h *OrderHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.UpdatePaymentStatus(c.Request().Context(), id, entity.PaymentStatus(req.PaymentStatus))
	if err != nil {
		return err
	}

	h.logger.Info("Order payment status updated",
		slog.Uint64("order_id", uint64(order.ID)),
		slog.String("payment_status", string(order.PaymentStatus)),
	)

	return response.OK(c, toOrderResponse(order))
}
