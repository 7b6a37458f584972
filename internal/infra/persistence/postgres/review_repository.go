package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := &model.ReviewModel{
		ProductID:   review.ProductID,
		Name:        review.Name,
		Description: review.Description,
		Date:        review.Date,
	}
	if err := repo.db.WithContext(ctx).Omit("Product").Create(reviewM).Error; err != nil {
		return translateWriteError(err, "failed to create review")
	}

	review.ID = reviewM.ID

	return nil
}

func (repo *reviewRepository) FindByID(ctx context.Context, productID, id uint) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).Where("product_id = ? AND id = ?", productID, id).First(&reviewM).Error
	if err != nil {
		return nil, translateReadError(err, domainerrors.ErrReviewNotFound, "failed to find review")
	}

	return toReviewDomain(&reviewM), nil
}

func (repo *reviewRepository) ListByProduct(ctx context.Context, productID uint) ([]*entity.Review, error) {
	var reviewModels []model.ReviewModel
	if err := repo.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&reviewModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(reviewModels))
	for i := range reviewModels {
		reviews = append(reviews, toReviewDomain(&reviewModels[i]))
	}

	return reviews, nil
}

func (repo *reviewRepository) Delete(ctx context.Context, productID, id uint) error {
	result := repo.db.WithContext(ctx).Where("product_id = ? AND id = ?", productID, id).Delete(&model.ReviewModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrReviewNotFound.WrapMessage("failed to delete review")
	}

	return nil
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:          data.ID,
		ProductID:   data.ProductID,
		Name:        data.Name,
		Description: data.Description,
		Date:        data.Date,
	}
}
