package impl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

type productService struct {
	txManager       repository.TransactionManager
	productRepo     repository.ProductRepository
	taxRate         float64
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	srv := &productService{
		txManager:       params.TxManager,
		productRepo:     params.ProductRepo,
		taxRate:         0.1,
		defaultPageSize: 10,
		maxPageSize:     100,
		logger:          params.Logger,
	}
	if store := params.Config.Store; store != nil {
		srv.taxRate = store.TaxRate
		srv.defaultPageSize = store.DefaultPageSize
		srv.maxPageSize = store.MaxPageSize
	}

	return srv
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) TaxRate() float64 {
	return srv.taxRate
}

func (srv *productService) List(ctx context.Context, query *usecase.ProductQuery) (*usecase.ProductPage, error) {
	ordering := repository.ProductOrdering(query.Ordering)
	if ordering != "" && !slices.Contains(repository.ProductOrderings, ordering) {
		return nil, domainerrors.FieldError("ordering",
			fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", query.Ordering))
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	if page < 0 {
		return nil, domainerrors.ErrNotFound.WrapMessage("invalid page")
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = srv.defaultPageSize
	}
	pageSize = min(pageSize, srv.maxPageSize)

	filter := repository.ProductFilter{
		CollectionID: query.CollectionID,
		Search:       strings.TrimSpace(query.Search),
		Ordering:     ordering,
		Offset:       (page - 1) * pageSize,
		Limit:        pageSize,
	}

	count, err := srv.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	if page > 1 && int64(filter.Offset) >= count {
		return nil, domainerrors.ErrNotFound.WrapMessage("invalid page")
	}

	products, err := srv.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &usecase.ProductPage{Count: count, Page: page, PageSize: pageSize, Results: products}, nil
}

func (srv *productService) Get(ctx context.Context, id uint) (*entity.Product, error) {
	return srv.productRepo.FindByID(ctx, id)
}

func (srv *productService) Create(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	product := &entity.Product{}
	if err := applyProductInput(product, input, false); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := checkProductReferences(ctx, repoFactory, product, input); err != nil {
			return err
		}

		return repoFactory.NewProductRepository().Create(ctx, product)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}
	srv.log(ctx).Info("Product created", slog.Uint64("productID", uint64(product.ID)), slog.String("slug", product.Slug))

	return srv.productRepo.FindByID(ctx, product.ID)
}

func (srv *productService) Update(ctx context.Context, id uint, input *usecase.ProductInput, partial bool) (*entity.Product, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		previousCollectionID := product.CollectionID

		if err := applyProductInput(product, input, partial); err != nil {
			return err
		}
		if err := checkProductReferences(ctx, repoFactory, product, input); err != nil {
			return err
		}

		if product.CollectionID != previousCollectionID {
			if err := unfeature(ctx, repoFactory.NewCollectionRepository(), previousCollectionID, product.ID); err != nil {
				return err
			}
		}

		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		if input.PromotionIDs != nil {
			return productRepo.ReplacePromotions(ctx, product.ID, *input.PromotionIDs)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return srv.productRepo.FindByID(ctx, id)
}

func (srv *productService) Delete(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		if _, err := productRepo.FindByID(ctx, id); err != nil {
			return err
		}

		count, err := productRepo.CountOrderItems(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrProductHasOrderItems
		}

		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}
	srv.log(ctx).Info("Product deleted", slog.Uint64("productID", uint64(id)))

	return nil
}

// applyProductInput copies input onto product and validates the result.
// Full updates require every writable field.
func applyProductInput(product *entity.Product, input *usecase.ProductInput, partial bool) error {
	ve := domainerrors.NewValidationError()
	required := func(field string, present bool) bool {
		if !present && !partial {
			ve.Add(field, domainerrors.MsgRequired)
		}

		return present
	}

	if required("title", input.Title != nil) {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if required("slug", input.Slug != nil) {
		product.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if required("unit_price", input.UnitPrice != nil) {
		product.UnitPrice = *input.UnitPrice
	}
	if required("inventory", input.Inventory != nil) {
		product.Inventory = *input.Inventory
	}
	if required("collection", input.CollectionID != nil) {
		product.CollectionID = *input.CollectionID
	}

	if err := mergeValidation(ve, product.Validate()); err != nil {
		return err
	}

	return ve.OrNil()
}

// checkProductReferences verifies the collection, the promotions and slug uniqueness.
func checkProductReferences(ctx context.Context, repoFactory repository.RepositoryFactory, product *entity.Product, input *usecase.ProductInput) error {
	ve := domainerrors.NewValidationError()

	if _, err := repoFactory.NewCollectionRepository().FindByID(ctx, product.CollectionID); err != nil {
		if !errors.Is(err, domainerrors.ErrCollectionNotFound) {
			return err
		}
		ve.Add("collection", invalidPK(product.CollectionID))
	}

	existing, err := repoFactory.NewProductRepository().FindBySlug(ctx, product.Slug)
	switch {
	case err == nil && existing.ID != product.ID:
		ve.Add("slug", "product with this slug already exists.")
	case err != nil && !errors.Is(err, domainerrors.ErrProductNotFound):
		return err
	}

	if input.PromotionIDs != nil {
		ids := *input.PromotionIDs
		promotions, err := repoFactory.NewPromotionRepository().FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		found := make(map[uint]struct{}, len(promotions))
		product.Promotions = product.Promotions[:0]
		for _, promotion := range promotions {
			found[promotion.ID] = struct{}{}
			product.Promotions = append(product.Promotions, *promotion)
		}
		for _, promotionID := range ids {
			if _, ok := found[promotionID]; !ok {
				ve.Add("promotions", invalidPK(promotionID))

				break
			}
		}
	}

	return ve.OrNil()
}

// unfeature clears the featured product of collectionID when it is productID.
func unfeature(ctx context.Context, collectionRepo repository.CollectionRepository, collectionID, productID uint) error {
	collection, err := collectionRepo.FindByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if collection.FeaturedProductID == nil || *collection.FeaturedProductID != productID {
		return nil
	}
	collection.FeaturedProductID = nil

	return collectionRepo.Update(ctx, collection)
}
