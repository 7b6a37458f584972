package handler

import (
	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
}

// ReviewHandler serves reviews nested under /store/products/:product_id.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
}

func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{reviewUC: params.ReviewUC}
}

type ReviewRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

func (h *ReviewHandler) List(c echo.Context) error {
	productID, err := pathID(c, "product_id")
	if err != nil {
		return err
	}

	reviews, err := h.reviewUC.List(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	return response.OK(c, mapSlice(reviews, toReviewResponse))
}

func (h *ReviewHandler) Get(c echo.Context) error {
	productID, id, err := reviewPath(c)
	if err != nil {
		return err
	}

	review, err := h.reviewUC.Get(c.Request().Context(), productID, id)
	if err != nil {
		return err
	}

	return response.OK(c, toReviewResponse(review))
}

func (h *ReviewHandler) Create(c echo.Context) error {
	productID, err := pathID(c, "product_id")
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviewUC.Create(c.Request().Context(), productID, &usecase.ReviewInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return response.Created(c, toReviewResponse(review))
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	productID, id, err := reviewPath(c)
	if err != nil {
		return err
	}

	if err := h.reviewUC.Delete(c.Request().Context(), productID, id); err != nil {
		return err
	}

	return response.NoContent(c)
}

func reviewPath(c echo.Context) (productID, id uint, err error) {
	if productID, err = pathID(c, "product_id"); err != nil {
		return 0, 0, err
	}
	if id, err = pathID(c, "id"); err != nil {
		return 0, 0, err
	}

	return productID, id, nil
}
