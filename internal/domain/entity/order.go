package entity

import (
	"time"

	domainerrors "storefront/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is an anonymous basket addressed by an unguessable id.
type Cart struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Items     []CartItem
}

// TotalPrice sums item totals.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice())
	}

	return total
}

// CartItem holds one product line; a product appears at most once per cart.
type CartItem struct {
	ID        uint
	CartID    uuid.UUID
	ProductID uint
	Product   *Product // loaded on reads
	Quantity  int
}

func (i *CartItem) TotalPrice() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}

	return i.Product.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i *CartItem) Validate() error {
	return validateQuantity(i.Quantity)
}

// PaymentStatus tracks payment of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "P"
	PaymentStatusComplete PaymentStatus = "C"
	PaymentStatusFailed   PaymentStatus = "F"
)

// PaymentStatuses lists every status in display order.
var PaymentStatuses = []PaymentStatus{PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed:
		return true
	}

	return false
}

// Order is a placed purchase of a customer.
type Order struct {
	ID            uint
	CustomerID    uint
	PlacedAt      time.Time
	PaymentStatus PaymentStatus
	Items         []OrderItem
}

// TotalPrice sums snapshotted item prices.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(o.Items[i].Quantity))))
	}

	return total
}

func (o *Order) Validate() error {
	ve := domainerrors.NewValidationError()
	if o.CustomerID == 0 {
		ve.Add("customer", domainerrors.MsgRequired)
	}
	if !o.PaymentStatus.Valid() {
		ve.Addf("payment_status", "\"%s\" is not a valid choice.", o.PaymentStatus)
	}
	for i := range o.Items {
		if err := o.Items[i].Validate(); err != nil {
			ve.Add("items", "Every item needs a product, a quantity of at least 1 and a positive price.")

			break
		}
	}

	return ve.OrNil()
}

// OrderItem snapshots the product price at the time the order was placed.
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal
}

func (i *OrderItem) Validate() error {
	ve := domainerrors.NewValidationError()
	if i.ProductID == 0 {
		ve.Add("product", domainerrors.MsgRequired)
	}
	if !i.UnitPrice.IsPositive() {
		ve.Add("unit_price", "Ensure this value is greater than 0.")
	}
	if err := validateQuantity(i.Quantity); err != nil {
		ve.Add("quantity", "Ensure this value is greater than or equal to 1.")
	}

	return ve.OrNil()
}

func validateQuantity(q int) error {
	if q < 1 {
		return domainerrors.FieldError("quantity", "Ensure this value is greater than or equal to 1.")
	}

	return nil
}
