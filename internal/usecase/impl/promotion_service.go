package impl

import (
	"context"
	"log/slog"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

type promotionService struct {
	promotionRepo repository.PromotionRepository
	logger        *slog.Logger
}

// NewPromotionService is the constructor for promotionService.
func NewPromotionService(promotionRepo repository.PromotionRepository, logger *slog.Logger) usecase.PromotionUsecase {
	return &promotionService{promotionRepo: promotionRepo, logger: logger}
}

func (srv *promotionService) List(ctx context.Context) ([]*entity.Promotion, error) {
	return srv.promotionRepo.List(ctx)
}

func (srv *promotionService) Create(ctx context.Context, input *usecase.PromotionInput) (*entity.Promotion, error) {
	promotion := &entity.Promotion{
		Description: strings.TrimSpace(input.Description),
		Discount:    input.Discount,
	}
	if err := promotion.Validate(); err != nil {
		return nil, err
	}

	if err := srv.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, errors.Wrap(err, "failed to create promotion")
	}

	return promotion, nil
}
