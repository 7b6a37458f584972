package entity

import (
	"strings"
	"time"

	domainerrors "storefront/internal/domain/errors"

	"github.com/shopspring/decimal"
)

const maxTitleLength = 255

// Collection groups products. FeaturedProductID, when set, points at one of its own products.
type Collection struct {
	ID                uint
	Title             string
	FeaturedProductID *uint
	ProductsCount     int // derived on reads
}

func (c *Collection) Validate() error {
	ve := domainerrors.NewValidationError()
	validateTitle(ve, "title", c.Title)

	return ve.OrNil()
}

// Promotion is a discount that can apply to many products.
type Promotion struct {
	ID          uint
	Description string
	Discount    float64
}

func (p *Promotion) Validate() error {
	ve := domainerrors.NewValidationError()
	if strings.TrimSpace(p.Description) == "" {
		ve.Add("description", domainerrors.MsgBlank)
	}
	if p.Discount < 0 {
		ve.Add("discount", "Ensure this value is greater than or equal to 0.")
	}

	return ve.OrNil()
}

// Product is a sellable item. UnitPrice has two decimal places.
type Product struct {
	ID           uint
	Title        string
	Slug         string
	Description  string
	UnitPrice    decimal.Decimal
	Inventory    int
	CollectionID uint
	Promotions   []Promotion
	LastUpdate   time.Time
}

// MaxUnitPrice is the largest price a decimal(6,2) column holds.
var MaxUnitPrice = decimal.RequireFromString("9999.99")

func (p *Product) Validate() error {
	ve := domainerrors.NewValidationError()
	validateTitle(ve, "title", p.Title)
	validateTitle(ve, "slug", p.Slug)
	switch {
	case !p.UnitPrice.IsPositive():
		ve.Add("unit_price", "Ensure this value is greater than 0.")
	case p.UnitPrice.GreaterThan(MaxUnitPrice):
		ve.Addf("unit_price", "Ensure this value is less than or equal to %s.", MaxUnitPrice.StringFixed(2))
	case p.UnitPrice.Exponent() < -2 && !p.UnitPrice.Equal(p.UnitPrice.Round(2)):
		ve.Add("unit_price", "Ensure that there are no more than 2 decimal places.")
	}
	if p.Inventory < 0 {
		ve.Add("inventory", "Ensure this value is greater than or equal to 0.")
	}
	if p.CollectionID == 0 {
		ve.Add("collection", domainerrors.MsgRequired)
	}

	return ve.OrNil()
}

// PriceWithTax applies rate to the unit price, rounded to cents.
func (p *Product) PriceWithTax(rate float64) decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromFloat(1 + rate)).Round(2)
}

// Review is a public product review.
type Review struct {
	ID          uint
	ProductID   uint
	Name        string
	Description string
	Date        time.Time
}

func (r *Review) Validate() error {
	ve := domainerrors.NewValidationError()
	validateTitle(ve, "name", r.Name)
	if strings.TrimSpace(r.Description) == "" {
		ve.Add("description", domainerrors.MsgBlank)
	}

	return ve.OrNil()
}

func validateTitle(ve *domainerrors.ValidationError, field, value string) {
	switch {
	case strings.TrimSpace(value) == "":
		ve.Add(field, domainerrors.MsgBlank)
	case len(value) > maxTitleLength:
		ve.Addf(field, "Ensure this field has no more than %d characters.", maxTitleLength)
	}
}
