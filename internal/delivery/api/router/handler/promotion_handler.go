package handler

import (
	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type PromotionHandlerParams struct {
	fx.In

	PromotionUC usecase.PromotionUsecase
}

// PromotionHandler serves /store/promotions.
type PromotionHandler struct {
	promotionUC usecase.PromotionUsecase
}

func NewPromotionHandler(params PromotionHandlerParams) *PromotionHandler {
	return &PromotionHandler{promotionUC: params.PromotionUC}
}

type PromotionRequest struct {
	Description string   `json:"description" validate:"required,max=255"`
	Discount    *float64 `json:"discount" validate:"required,gte=0"`
}

func (h *PromotionHandler) List(c echo.Context) error {
	promotions, err := h.promotionUC.List(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, mapSlice(promotions, toPromotionResponse))
}

func (h *PromotionHandler) Create(c echo.Context) error {
	var req PromotionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	promotion, err := h.promotionUC.Create(c.Request().Context(), &usecase.PromotionInput{
		Description: req.Description,
		Discount:    *req.Discount,
	})
	if err != nil {
		return err
	}

	return response.Created(c, toPromotionResponse(promotion))
}
