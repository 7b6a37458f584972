package handler

import (
	"time"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type CustomerHandlerParams struct {
	fx.In

	CustomerUC usecase.CustomerUsecase
}

// CustomerHandler serves the caller's own customer profile.
type CustomerHandler struct {
	customerUC usecase.CustomerUsecase
}

func NewCustomerHandler(params CustomerHandlerParams) *CustomerHandler {
	return &CustomerHandler{customerUC: params.CustomerUC}
}

type UpdateCustomerRequest struct {
	Phone     *string `json:"phone" validate:"omitempty,max=255"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

type AddressRequest struct {
	Street string `json:"street" validate:"required,max=255"`
	City   string `json:"city" validate:"required,max=255"`
}

func (h *CustomerHandler) Me(c echo.Context) error {
	caller := deliverycontext.GetCaller(c)

	customer, err := h.customerUC.Me(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}

	return response.OK(c, toCustomerResponse(customer))
}

func (h *CustomerHandler) UpdateMe(c echo.Context) error {
	caller := deliverycontext.GetCaller(c)

	var req UpdateCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := &usecase.CustomerInput{Phone: req.Phone}
	if req.BirthDate != nil {
		// Already checked by the datetime tag.
		birthDate, _ := time.Parse(dateLayout, *req.BirthDate)
		input.BirthDate = &birthDate
	}

	customer, err := h.customerUC.UpdateMe(c.Request().Context(), caller.UserID, input)
	if err != nil {
		return err
	}

	return response.OK(c, toCustomerResponse(customer))
}

func (h *CustomerHandler) ListAddresses(c echo.Context) error {
	caller := deliverycontext.GetCaller(c)

	addresses, err := h.customerUC.ListAddresses(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}

	return response.OK(c, mapSlice(addresses, toAddressResponse))
}

func (h *CustomerHandler) AddAddress(c echo.Context) error {
	caller := deliverycontext.GetCaller(c)

	var req AddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.customerUC.AddAddress(c.Request().Context(), caller.UserID, &usecase.AddressInput{
		Street: req.Street,
		City:   req.City,
	})
	if err != nil {
		return err
	}

	return response.Created(c, toAddressResponse(address))
}
