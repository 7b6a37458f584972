package handler

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type collectionResponse struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	ProductsCount int    `json:"products_count"`
}

func toCollectionResponse(collection *entity.Collection) collectionResponse {
	return collectionResponse{
		ID:            collection.ID,
		Title:         collection.Title,
		ProductsCount: collection.ProductsCount,
	}
}

// featuredProductResponse is returned by the featured-product endpoint only.
type featuredProductResponse struct {
	ID              uint  `json:"id"`
	FeaturedProduct *uint `json:"featured_product"`
}

type productResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	UnitPrice    string `json:"unit_price"`
	PriceWithTax string `json:"price_with_tax"`
	Inventory    int    `json:"inventory"`
	Collection   uint   `json:"collection"`
	Promotions   []uint `json:"promotions"`
}

func toProductResponse(product *entity.Product, taxRate float64) productResponse {
	promotions := make([]uint, 0, len(product.Promotions))
	for _, promotion := range product.Promotions {
		promotions = append(promotions, promotion.ID)
	}

	return productResponse{
		ID:           product.ID,
		Title:        product.Title,
		Slug:         product.Slug,
		Description:  product.Description,
		UnitPrice:    product.UnitPrice.StringFixed(2),
		PriceWithTax: product.PriceWithTax(taxRate).StringFixed(2),
		Inventory:    product.Inventory,
		Collection:   product.CollectionID,
		Promotions:   promotions,
	}
}

type productPageResponse struct {
	Count    int64             `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []productResponse `json:"results"`
}

type promotionResponse struct {
	ID          uint    `json:"id"`
	Description string  `json:"description"`
	Discount    float64 `json:"discount"`
}

func toPromotionResponse(promotion *entity.Promotion) promotionResponse {
	return promotionResponse{ID: promotion.ID, Description: promotion.Description, Discount: promotion.Discount}
}

type reviewResponse struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toReviewResponse(review *entity.Review) reviewResponse {
	return reviewResponse{
		ID:          review.ID,
		Date:        review.Date.Format(dateLayout),
		Name:        review.Name,
		Description: review.Description,
	}
}

type simpleProductResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	UnitPrice string `json:"unit_price"`
}

type cartItemResponse struct {
	ID         uint                  `json:"id"`
	Product    simpleProductResponse `json:"product"`
	Quantity   int                   `json:"quantity"`
	TotalPrice string                `json:"total_price"`
}

func toCartItemResponse(item *entity.CartItem) cartItemResponse {
	resp := cartItemResponse{
		ID:         item.ID,
		Product:    simpleProductResponse{ID: item.ProductID},
		Quantity:   item.Quantity,
		TotalPrice: item.TotalPrice().StringFixed(2),
	}
	if item.Product != nil {
		resp.Product.Title = item.Product.Title
		resp.Product.UnitPrice = item.Product.UnitPrice.StringFixed(2)
	}

	return resp
}

type cartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []cartItemResponse `json:"items"`
	TotalPrice string             `json:"total_price"`
}

func toCartResponse(cart *entity.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for i := range cart.Items {
		items = append(items, toCartItemResponse(&cart.Items[i]))
	}

	return cartResponse{ID: cart.ID, Items: items, TotalPrice: cart.TotalPrice().StringFixed(2)}
}

type customerResponse struct {
	ID         uint    `json:"id"`
	UserID     uint    `json:"user_id"`
	Phone      string  `json:"phone"`
	BirthDate  *string `json:"birth_date"`
	Membership string  `json:"membership"`
}

func toCustomerResponse(customer *entity.Customer) customerResponse {
	resp := customerResponse{
		ID:         customer.ID,
		UserID:     customer.UserID,
		Phone:      customer.Phone,
		Membership: string(customer.Membership),
	}
	if customer.BirthDate != nil {
		birthDate := customer.BirthDate.Format(dateLayout)
		resp.BirthDate = &birthDate
	}

	return resp
}

type addressResponse struct {
	ID     uint   `json:"id"`
	Street string `json:"street"`
	City   string `json:"city"`
}

func toAddressResponse(address *entity.Address) addressResponse {
	return addressResponse{ID: address.ID, Street: address.Street, City: address.City}
}

type orderItemResponse struct {
	ID        uint   `json:"id"`
	Product   uint   `json:"product"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type orderResponse struct {
	ID            uint                `json:"id"`
	Customer      uint                `json:"customer"`
	PlacedAt      time.Time           `json:"placed_at"`
	PaymentStatus string              `json:"payment_status"`
	Items         []orderItemResponse `json:"items"`
	TotalPrice    string              `json:"total_price"`
}

func toOrderResponse(order *entity.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:        item.ID,
			Product:   item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}

	return orderResponse{
		ID:            order.ID,
		Customer:      order.CustomerID,
		PlacedAt:      order.PlacedAt,
		PaymentStatus: string(order.PaymentStatus),
		Items:         items,
		TotalPrice:    order.TotalPrice().StringFixed(2),
	}
}

type userResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// mapSlice converts a slice of entities into responses.
func mapSlice[E any, R any](items []*E, fn func(*E) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return out
}
