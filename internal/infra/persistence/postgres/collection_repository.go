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

// collectionRow is a collection joined with its product count.
type collectionRow struct {
	ID                uint
	Title             string
	FeaturedProductID *uint
	ProductsCount     int
}

type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository is the constructor for collectionRepository.
func NewCollectionRepository(db *gorm.DB) repository.CollectionRepository {
	return &collectionRepository{db: db}
}

func (repo *collectionRepository) withProductCount(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Table("collections").
		Select("collections.id, collections.title, collections.featured_product_id, COUNT(products.id) AS products_count").
		Joins("LEFT JOIN products ON products.collection_id = collections.id").
		Group("collections.id, collections.title, collections.featured_product_id")
}

func (repo *collectionRepository) Create(ctx context.Context, collection *entity.Collection) error {
	collectionM := &model.CollectionModel{
		Title:             collection.Title,
		FeaturedProductID: collection.FeaturedProductID,
	}
	if err := repo.db.WithContext(ctx).Create(collectionM).Error; err != nil {
		return translateWriteError(err, "failed to create collection")
	}

	collection.ID = collectionM.ID
	collection.ProductsCount = 0

	return nil
}

func (repo *collectionRepository) FindByID(ctx context.Context, id uint) (*entity.Collection, error) {
	var rows []collectionRow
	if err := repo.withProductCount(ctx).Where("collections.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find collection by ID")
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrCollectionNotFound.WrapMessage("failed to find collection by ID")
	}

	return toCollectionDomain(&rows[0]), nil
}

func (repo *collectionRepository) List(ctx context.Context) ([]*entity.Collection, error) {
	var rows []collectionRow
	if err := repo.withProductCount(ctx).Order("collections.id").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list collections")
	}

	collections := make([]*entity.Collection, 0, len(rows))
	for i := range rows {
		collections = append(collections, toCollectionDomain(&rows[i]))
	}

	return collections, nil
}

func (repo *collectionRepository) Update(ctx context.Context, collection *entity.Collection) error {
	result := repo.db.WithContext(ctx).Model(&model.CollectionModel{}).
		Where("id = ?", collection.ID).
		Updates(map[string]any{
			"title":               collection.Title,
			"featured_product_id": collection.FeaturedProductID,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update collection")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCollectionNotFound.WrapMessage("failed to update collection")
	}

	return nil
}

func (repo *collectionRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.CollectionModel{}, id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrCollectionHasProducts.WrapMessage("failed to delete collection")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete collection")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCollectionNotFound.WrapMessage("failed to delete collection")
	}

	return nil
}

func (repo *collectionRepository) CountProducts(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Where("collection_id = ?", id).Count(&count).Error

	return count, errors.Wrap(err, "failed to count collection products")
}

func toCollectionDomain(row *collectionRow) *entity.Collection {
	return &entity.Collection{
		ID:                row.ID,
		Title:             row.Title,
		FeaturedProductID: row.FeaturedProductID,
		ProductsCount:     row.ProductsCount,
	}
}
