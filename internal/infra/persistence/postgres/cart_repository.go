package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (repo *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = time.Now()
	}

	cartM := &model.CartModel{ID: cart.ID, CreatedAt: cart.CreatedAt}
	if err := repo.db.WithContext(ctx).Omit("Items").Create(cartM).Error; err != nil {
		return translateWriteError(err, "failed to create cart")
	}

	return nil
}

func (repo *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel
	err := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Product").
		Where("id = ?", id).
		First(&cartM).Error
	if err != nil {
		return nil, translateReadError(err, domainerrors.ErrCartNotFound, "failed to find cart")
	}

	cart := &entity.Cart{
		ID:        cartM.ID,
		CreatedAt: cartM.CreatedAt,
		Items:     make([]entity.CartItem, 0, len(cartM.Items)),
	}
	for i := range cartM.Items {
		cart.Items = append(cart.Items, *toCartItemDomain(&cartM.Items[i]))
	}

	return cart, nil
}

func (repo *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)
	if err := db.Where("cart_id = ?", id).Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cart items")
	}

	result := db.Where("id = ?", id).Delete(&model.CartModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete cart")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCartNotFound.WrapMessage("failed to delete cart")
	}

	return nil
}

func (repo *cartRepository) AddItem(ctx context.Context, item *entity.CartItem) error {
	db := repo.db.WithContext(ctx)

	var existing model.CartItemModel
	err := db.Where("cart_id = ? AND product_id = ?", item.CartID, item.ProductID).First(&existing).Error
	switch {
	case err == nil:
		existing.Quantity += item.Quantity
		if err := db.Model(&existing).Update("quantity", existing.Quantity).Error; err != nil {
			return translateWriteError(err, "failed to update cart item")
		}
		item.ID = existing.ID
		item.Quantity = existing.Quantity

		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(err, "failed to look up cart item")
	}

	itemM := &model.CartItemModel{CartID: item.CartID, ProductID: item.ProductID, Quantity: item.Quantity}
	if err := db.Omit("Product").Create(itemM).Error; err != nil {
		return translateWriteError(err, "failed to create cart item")
	}
	item.ID = itemM.ID

	return nil
}

func (repo *cartRepository) FindItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*entity.CartItem, error) {
	var itemM model.CartItemModel
	err := repo.db.WithContext(ctx).Preload("Product").
		Where("cart_id = ? AND id = ?", cartID, itemID).
		First(&itemM).Error
	if err != nil {
		return nil, translateReadError(err, domainerrors.ErrCartItemNotFound, "failed to find cart item")
	}

	return toCartItemDomain(&itemM), nil
}

func (repo *cartRepository) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID uint, quantity int) error {
	result := repo.db.WithContext(ctx).Model(&model.CartItemModel{}).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update cart item")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCartItemNotFound.WrapMessage("failed to update cart item")
	}

	return nil
}

func (repo *cartRepository) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	result := repo.db.WithContext(ctx).Where("cart_id = ? AND id = ?", cartID, itemID).Delete(&model.CartItemModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete cart item")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCartItemNotFound.WrapMessage("failed to delete cart item")
	}

	return nil
}

func toCartItemDomain(data *model.CartItemModel) *entity.CartItem {
	item := &entity.CartItem{
		ID:        data.ID,
		CartID:    data.CartID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
	}
	if data.Product != nil {
		item.Product = toProductDomain(data.Product)
	}

	return item
}
