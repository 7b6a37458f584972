package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CollectionHandlerParams holds dependencies for CollectionHandler, injected by Fx.
type CollectionHandlerParams struct {
	fx.In

	CollectionUC usecase.CollectionUsecase
}

// CollectionHandler serves /store/collections.
type CollectionHandler struct {
	collectionUC usecase.CollectionUsecase
}

func NewCollectionHandler(params CollectionHandlerParams) *CollectionHandler {
	return &CollectionHandler{collectionUC: params.CollectionUC}
}

// CollectionRequest is the body of collection writes.
type CollectionRequest struct {
	Title *string `json:"title" validate:"omitempty,max=255"`
}

// FeaturedProductRequest sets or clears the featured product.
type FeaturedProductRequest struct {
	ProductID *uint `json:"product_id"`
}

func (h *CollectionHandler) List(c echo.Context) error {
	collections, err := h.collectionUC.List(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, mapSlice(collections, toCollectionResponse))
}

func (h *CollectionHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	collection, err := h.collectionUC.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.OK(c, toCollectionResponse(collection))
}

func (h *CollectionHandler) Create(c echo.Context) error {
	var req CollectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	collection, err := h.collectionUC.Create(c.Request().Context(), &usecase.CollectionInput{Title: req.Title})
	if err != nil {
		return err
	}

	return response.Created(c, toCollectionResponse(collection))
}

// Update handles PUT and PATCH; PATCH leaves omitted fields untouched.
func (h *CollectionHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req CollectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	partial := c.Request().Method == http.MethodPatch
	collection, err := h.collectionUC.Update(c.Request().Context(), id, &usecase.CollectionInput{Title: req.Title}, partial)
	if err != nil {
		return err
	}

	return response.OK(c, toCollectionResponse(collection))
}

func (h *CollectionHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.collectionUC.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return response.NoContent(c)
}

func (h *CollectionHandler) SetFeaturedProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req FeaturedProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	collection, err := h.collectionUC.SetFeaturedProduct(c.Request().Context(), id, req.ProductID)
	if err != nil {
		return err
	}

	return response.OK(c, featuredProductResponse{ID: collection.ID, FeaturedProduct: collection.FeaturedProductID})
}
