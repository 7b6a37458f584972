package impl

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

type reviewService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	ReviewRepo  repository.ReviewRepository
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{productRepo: params.ProductRepo, reviewRepo: params.ReviewRepo}
}

// List answers 404 for an unknown product rather than an empty list.
func (srv *reviewService) List(ctx context.Context, productID uint) ([]*entity.Review, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	return srv.reviewRepo.ListByProduct(ctx, productID)
}

func (srv *reviewService) Get(ctx context.Context, productID, id uint) (*entity.Review, error) {
	return srv.reviewRepo.FindByID(ctx, productID, id)
}

func (srv *reviewService) Create(ctx context.Context, productID uint, input *usecase.ReviewInput) (*entity.Review, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ProductID:   productID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Date:        time.Now().UTC().Truncate(24 * time.Hour),
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	return review, nil
}

func (srv *reviewService) Delete(ctx context.Context, productID, id uint) error {
	return srv.reviewRepo.Delete(ctx, productID, id)
}
