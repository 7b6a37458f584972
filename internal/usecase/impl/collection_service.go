package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

type collectionService struct {
	txManager      repository.TransactionManager
	collectionRepo repository.CollectionRepository
	logger         *slog.Logger
}

// CollectionServiceParams holds dependencies for CollectionService, injected by Fx.
type CollectionServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	CollectionRepo repository.CollectionRepository
	Logger         *slog.Logger
}

// NewCollectionService is the constructor for collectionService.
func NewCollectionService(params CollectionServiceParams) usecase.CollectionUsecase {
	return &collectionService{
		txManager:      params.TxManager,
		collectionRepo: params.CollectionRepo,
		logger:         params.Logger,
	}
}

func (srv *collectionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *collectionService) List(ctx context.Context) ([]*entity.Collection, error) {
	return srv.collectionRepo.List(ctx)
}

func (srv *collectionService) Get(ctx context.Context, id uint) (*entity.Collection, error) {
	return srv.collectionRepo.FindByID(ctx, id)
}

func (srv *collectionService) Create(ctx context.Context, input *usecase.CollectionInput) (*entity.Collection, error) {
	collection := &entity.Collection{}
	if err := applyCollectionInput(collection, input, false); err != nil {
		return nil, err
	}

	if err := srv.collectionRepo.Create(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "failed to create collection")
	}
	srv.log(ctx).Info("Collection created", slog.Uint64("collectionID", uint64(collection.ID)))

	return collection, nil
}

func (srv *collectionService) Update(ctx context.Context, id uint, input *usecase.CollectionInput, partial bool) (*entity.Collection, error) {
	collection, err := srv.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCollectionInput(collection, input, partial); err != nil {
		return nil, err
	}

	if err := srv.collectionRepo.Update(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "failed to update collection")
	}

	return collection, nil
}

func (srv *collectionService) Delete(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		collectionRepo := repoFactory.NewCollectionRepository()

		if _, err := collectionRepo.FindByID(ctx, id); err != nil {
			return err
		}

		count, err := collectionRepo.CountProducts(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrCollectionHasProducts
		}

		return collectionRepo.Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete collection")
	}
	srv.log(ctx).Info("Collection deleted", slog.Uint64("collectionID", uint64(id)))

	return nil
}

func (srv *collectionService) SetFeaturedProduct(ctx context.Context, id uint, productID *uint) (*entity.Collection, error) {
	var collection *entity.Collection
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		collectionRepo := repoFactory.NewCollectionRepository()

		var err error
		collection, err = collectionRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if productID != nil {
			product, err := repoFactory.NewProductRepository().FindByID(ctx, *productID)
			if errors.Is(err, domainerrors.ErrProductNotFound) {
				return domainerrors.FieldError("product_id", invalidPK(*productID))
			}
			if err != nil {
				return err
			}
			if product.CollectionID != collection.ID {
				return domainerrors.FieldError("product_id", "Product does not belong to this collection.")
			}
		}

		collection.FeaturedProductID = productID

		return collectionRepo.Update(ctx, collection)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to set featured product")
	}

	return collection, nil
}

// applyCollectionInput copies input onto collection. Full updates require every field.
func applyCollectionInput(collection *entity.Collection, input *usecase.CollectionInput, partial bool) error {
	ve := domainerrors.NewValidationError()
	switch {
	case input.Title != nil:
		collection.Title = strings.TrimSpace(*input.Title)
	case !partial:
		ve.Add("title", domainerrors.MsgRequired)
	}

	if err := mergeValidation(ve, collection.Validate()); err != nil {
		return err
	}

	return ve.OrNil()
}
