package postgres

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// productPromotionRow is a row of the many-to-many join table.
type productPromotionRow struct {
	ProductID   uint
	PromotionID uint
}

func (productPromotionRow) TableName() string {
	return "product_promotions"
}

var productOrderClauses = map[repository.ProductOrdering]string{
	repository.OrderByID:             "products.id",
	repository.OrderByUnitPrice:      "products.unit_price, products.id",
	repository.OrderByUnitPriceDesc:  "products.unit_price DESC, products.id",
	repository.OrderByLastUpdate:     "products.last_update, products.id",
	repository.OrderByLastUpdateDesc: "products.last_update DESC, products.id",
	repository.OrderByTitle:          "products.title, products.id",
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)
	if err := repo.db.WithContext(ctx).Omit("Collection", "Promotions").Create(productM).Error; err != nil {
		return translateWriteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.LastUpdate = productM.LastUpdate

	if len(product.Promotions) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(product.Promotions))
	for _, promotion := range product.Promotions {
		ids = append(ids, promotion.ID)
	}

	return repo.ReplacePromotions(ctx, product.ID, ids)
}

func (repo *productRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Promotions", func(db *gorm.DB) *gorm.DB { return db.Order("promotions.id") }).
		First(&productM, id).Error
	if err != nil {
		return nil, translateReadError(err, domainerrors.ErrProductNotFound, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&productM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrProductNotFound, "failed to find product by slug")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) filtered(ctx context.Context, filter repository.ProductFilter) *gorm.DB {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})
	if filter.CollectionID != 0 {
		query = query.Where("products.collection_id = ?", filter.CollectionID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(products.title) LIKE ? OR LOWER(products.description) LIKE ?", pattern, pattern)
	}

	return query
}

func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	orderClause, ok := productOrderClauses[filter.Ordering]
	if !ok {
		orderClause = productOrderClauses[repository.OrderByID]
	}

	query := repo.filtered(ctx, filter).
		Preload("Promotions", func(db *gorm.DB) *gorm.DB { return db.Order("promotions.id") }).
		Order(orderClause)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var productModels []model.ProductModel
	if err := query.Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for i := range productModels {
		products = append(products, toProductDomain(&productModels[i]))
	}

	return products, nil
}

func (repo *productRepository) Count(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	var count int64
	err := repo.filtered(ctx, filter).Count(&count).Error

	return count, errors.Wrap(err, "failed to count products")
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	now := time.Now()
	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"title":         product.Title,
			"slug":          product.Slug,
			"description":   product.Description,
			"unit_price":    product.UnitPrice,
			"inventory":     product.Inventory,
			"collection_id": product.CollectionID,
			"last_update":   now,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound.WrapMessage("failed to update product")
	}

	product.LastUpdate = now

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id uint) error {
	db := repo.db.WithContext(ctx)

	if err := db.Model(&model.CollectionModel{}).
		Where("featured_product_id = ?", id).
		Update("featured_product_id", nil).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear featured product")
	}
	if err := db.Where("product_id = ?", id).Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product cart items")
	}
	if err := db.Where("product_id = ?", id).Delete(&model.ReviewModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product reviews")
	}
	if err := db.Where("product_id = ?", id).Delete(&productPromotionRow{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to unlink product promotions")
	}

	result := db.Delete(&model.ProductModel{}, id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrProductHasOrderItems.WrapMessage("failed to delete product")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound.WrapMessage("failed to delete product")
	}

	return nil
}

func (repo *productRepository) ReplacePromotions(ctx context.Context, productID uint, promotionIDs []uint) error {
	db := repo.db.WithContext(ctx)
	if err := db.Where("product_id = ?", productID).Delete(&productPromotionRow{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear product promotions")
	}
	if len(promotionIDs) == 0 {
		return nil
	}

	rows := make([]productPromotionRow, 0, len(promotionIDs))
	seen := make(map[uint]struct{}, len(promotionIDs))
	for _, promotionID := range promotionIDs {
		if _, dup := seen[promotionID]; dup {
			continue
		}
		seen[promotionID] = struct{}{}
		rows = append(rows, productPromotionRow{ProductID: productID, PromotionID: promotionID})
	}
	if err := db.Create(&rows).Error; err != nil {
		return translateWriteError(err, "failed to link product promotions")
	}

	return nil
}

func (repo *productRepository) CountOrderItems(ctx context.Context, productID uint) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.OrderItemModel{}).Where("product_id = ?", productID).Count(&count).Error

	return count, errors.Wrap(err, "failed to count product order items")
}

func (repo *productRepository) DecrementInventory(ctx context.Context, productID uint, quantity int) error {
	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ? AND inventory >= ?", productID, quantity).
		Update("inventory", gorm.Expr("inventory - ?", quantity))
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to decrement inventory")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInsufficientInventory.WrapMessage("failed to decrement inventory")
	}

	return nil
}

type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository is the constructor for promotionRepository.
func NewPromotionRepository(db *gorm.DB) repository.PromotionRepository {
	return &promotionRepository{db: db}
}

func (repo *promotionRepository) Create(ctx context.Context, promotion *entity.Promotion) error {
	promotionM := &model.PromotionModel{Description: promotion.Description, Discount: promotion.Discount}
	if err := repo.db.WithContext(ctx).Create(promotionM).Error; err != nil {
		return translateWriteError(err, "failed to create promotion")
	}

	promotion.ID = promotionM.ID

	return nil
}

func (repo *promotionRepository) List(ctx context.Context) ([]*entity.Promotion, error) {
	var promotionModels []model.PromotionModel
	if err := repo.db.WithContext(ctx).Order("id").Find(&promotionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list promotions")
	}

	return toPromotionsDomain(promotionModels), nil
}

func (repo *promotionRepository) FindByIDs(ctx context.Context, ids []uint) ([]*entity.Promotion, error) {
	if len(ids) == 0 {
		return []*entity.Promotion{}, nil
	}

	var promotionModels []model.PromotionModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&promotionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find promotions by IDs")
	}

	return toPromotionsDomain(promotionModels), nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	product := &entity.Product{
		ID:           data.ID,
		Title:        data.Title,
		Slug:         data.Slug,
		Description:  data.Description,
		UnitPrice:    data.UnitPrice,
		Inventory:    data.Inventory,
		CollectionID: data.CollectionID,
		LastUpdate:   data.LastUpdate,
		Promotions:   make([]entity.Promotion, 0, len(data.Promotions)),
	}
	for _, promotionM := range data.Promotions {
		product.Promotions = append(product.Promotions, entity.Promotion{
			ID:          promotionM.ID,
			Description: promotionM.Description,
			Discount:    promotionM.Discount,
		})
	}

	return product
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:           data.ID,
		Title:        data.Title,
		Slug:         data.Slug,
		Description:  data.Description,
		UnitPrice:    data.UnitPrice,
		Inventory:    data.Inventory,
		CollectionID: data.CollectionID,
	}
}

func toPromotionsDomain(promotionModels []model.PromotionModel) []*entity.Promotion {
	promotions := make([]*entity.Promotion, 0, len(promotionModels))
	for _, promotionM := range promotionModels {
		promotions = append(promotions, &entity.Promotion{
			ID:          promotionM.ID,
			Description: promotionM.Description,
			Discount:    promotionM.Discount,
		})
	}

	return promotions
}
