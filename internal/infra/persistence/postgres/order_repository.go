package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id")
}

// Create inserts the order and its items in one statement batch.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.PlacedAt.IsZero() {
		order.PlacedAt = time.Now()
	}

	orderM := &model.OrderModel{
		CustomerID:    order.CustomerID,
		PlacedAt:      order.PlacedAt,
		PaymentStatus: string(order.PaymentStatus),
		Items:         make([]model.OrderItemModel, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		orderM.Items = append(orderM.Items, model.OrderItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := repo.db.WithContext(ctx).Omit("Customer").Create(orderM).Error; err != nil {
		return translateWriteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	for i := range orderM.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Preload("Items", orderItemsByID).First(&orderM, id).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrOrderNotFound, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).Preload("Items", orderItemsByID).Order("orders.id")
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}

	var orderModels []model.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, toOrderDomain(&orderModels[i]))
	}

	return orders, nil
}

func (repo *orderRepository) UpdatePaymentStatus(ctx context.Context, id uint, status entity.PaymentStatus) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Where("id = ?", id).Update("payment_status", string(status))
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update order payment status")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrderNotFound.WrapMessage("failed to update order payment status")
	}

	return nil
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	order := &entity.Order{
		ID:            data.ID,
		CustomerID:    data.CustomerID,
		PlacedAt:      data.PlacedAt,
		PaymentStatus: entity.PaymentStatus(data.PaymentStatus),
		Items:         make([]entity.OrderItem, 0, len(data.Items)),
	}
	for _, itemM := range data.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ID:        itemM.ID,
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			Quantity:  itemM.Quantity,
			UnitPrice: itemM.UnitPrice,
		})
	}

	return order
}
