package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
}

// ProductHandler serves /store/products.
type ProductHandler struct {
	productUC usecase.ProductUsecase
}

func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{productUC: params.ProductUC}
}

// ProductRequest is the body of product writes. Omitted fields stay nil.
// Field rules live in entity.Product so one response names every bad field.
type ProductRequest struct {
	Title       *string          `json:"title"`
	Slug        *string          `json:"slug"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Inventory   *int             `json:"inventory"`
	Collection  *uint            `json:"collection"`
	Promotions  *[]uint          `json:"promotions"`
}

func (r *ProductRequest) input() *usecase.ProductInput {
	return &usecase.ProductInput{
		Title:        r.Title,
		Slug:         r.Slug,
		Description:  r.Description,
		UnitPrice:    r.UnitPrice,
		Inventory:    r.Inventory,
		CollectionID: r.Collection,
		PromotionIDs: r.Promotions,
	}
}

// List supports collection_id, search, ordering, page and page_size.
func (h *ProductHandler) List(c echo.Context) error {
	collectionID, err := queryInt(c, "collection_id")
	if err != nil {
		return err
	}
	if collectionID < 0 {
		return domainerrors.FieldError("collection_id", "Select a valid choice.")
	}

	page, err := queryInt(c, "page")
	if err != nil {
		return domainerrors.ErrNotFound.WrapMessage("invalid page")
	}

	// An unusable page_size falls back to the default.
	pageSize, _ := queryInt(c, "page_size")

	result, err := h.productUC.List(c.Request().Context(), &usecase.ProductQuery{
		CollectionID: uint(collectionID),
		Search:       c.QueryParam("search"),
		Ordering:     c.QueryParam("ordering"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		return err
	}

	taxRate := h.productUC.TaxRate()
	results := make([]productResponse, 0, len(result.Results))
	for _, product := range result.Results {
		results = append(results, toProductResponse(product, taxRate))
	}

	resp := productPageResponse{Count: result.Count, Results: results}
	if result.HasNext() {
		next := pageURL(c, result.Page+1)
		resp.Next = &next
	}
	if result.HasPrevious() {
		previous := pageURL(c, result.Page-1)
		resp.Previous = &previous
	}

	return response.OK(c, resp)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productUC.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.OK(c, toProductResponse(product, h.productUC.TaxRate()))
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productUC.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	return response.Created(c, toProductResponse(product, h.productUC.TaxRate()))
}

// Update handles PUT and PATCH; PATCH leaves omitted fields untouched.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	partial := c.Request().Method == http.MethodPatch
	product, err := h.productUC.Update(c.Request().Context(), id, req.input(), partial)
	if err != nil {
		return err
	}

	return response.OK(c, toProductResponse(product, h.productUC.TaxRate()))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.productUC.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return response.NoContent(c)
}

// pageURL rebuilds the request URL pointing at page. The first page carries no page parameter.
func pageURL(c echo.Context, page int) string {
	req := c.Request()
	query := req.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}

	u := url.URL{
		Scheme:   c.Scheme(),
		Host:     req.Host,
		Path:     req.URL.Path,
		RawQuery: query.Encode(),
	}

	return u.String()
}
