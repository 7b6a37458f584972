package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartModel is the GORM-specific struct for the 'carts' table.
type CartModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time       `gorm:"not null"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel is the GORM-specific struct for the 'cart_items' table.
type CartItemModel struct {
	ID        uint          `gorm:"primaryKey"`
	CartID    uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uint          `gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	Product   *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int           `gorm:"not null;check:chk_cart_items_quantity,quantity >= 1"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel is the GORM-specific struct for the 'orders' table.
type OrderModel struct {
	ID            uint             `gorm:"primaryKey"`
	CustomerID    uint             `gorm:"not null;index"`
	Customer      *CustomerModel   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	PlacedAt      time.Time        `gorm:"not null"`
	PaymentStatus string           `gorm:"type:varchar(1);not null;default:'P'"`
	Items         []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM-specific struct for the 'order_items' table.
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null;index"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int             `gorm:"not null;check:chk_order_items_quantity,quantity >= 1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(6,2);not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&CustomerModel{},
		&AddressModel{},
		&CollectionModel{},
		&PromotionModel{},
		&ProductModel{},
		&ReviewModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
	}
}
