// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/policy"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler       *handler.UserHandler
	CollectionHandler *handler.CollectionHandler
	ProductHandler    *handler.ProductHandler
	PromotionHandler  *handler.PromotionHandler
	ReviewHandler     *handler.ReviewHandler
	CartHandler       *handler.CartHandler
	CustomerHandler   *handler.CustomerHandler
	OrderHandler      *handler.OrderHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler       *handler.UserHandler
	collectionHandler *handler.CollectionHandler
	productHandler    *handler.ProductHandler
	promotionHandler  *handler.PromotionHandler
	reviewHandler     *handler.ReviewHandler
	cartHandler       *handler.CartHandler
	customerHandler   *handler.CustomerHandler
	orderHandler      *handler.OrderHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:       params.UserHandler,
		collectionHandler: params.CollectionHandler,
		productHandler:    params.ProductHandler,
		promotionHandler:  params.PromotionHandler,
		reviewHandler:     params.ReviewHandler,
		cartHandler:       params.CartHandler,
		customerHandler:   params.CustomerHandler,
		orderHandler:      params.OrderHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.Refresh)
	}

	// Every store route resolves the caller; anonymous requests pass through.
	store := e.Group("/store", r.authMiddleware.Authenticate)

	adminOrReadOnly := r.authMiddleware.Require(policy.IsAdminOrReadOnly)
	admin := r.authMiddleware.Require(policy.IsAdmin)
	authenticated := r.authMiddleware.Require(policy.IsAuthenticated)

	collections := store.Group("/collections")
	{
		collections.GET("", r.collectionHandler.List)
		collections.POST("", r.collectionHandler.Create, adminOrReadOnly)
		collections.GET("/:id", r.collectionHandler.Get)
		collections.PUT("/:id", r.collectionHandler.Update, adminOrReadOnly)
		collections.PATCH("/:id", r.collectionHandler.Update, adminOrReadOnly)
		collections.DELETE("/:id", r.collectionHandler.Delete, adminOrReadOnly)
		collections.PUT("/:id/featured-product", r.collectionHandler.SetFeaturedProduct, adminOrReadOnly)
	}

	products := store.Group("/products")
	{
		products.GET("", r.productHandler.List)
		products.POST("", r.productHandler.Create, adminOrReadOnly)
		products.GET("/:id", r.productHandler.Get)
		products.PUT("/:id", r.productHandler.Update, adminOrReadOnly)
		products.PATCH("/:id", r.productHandler.Update, adminOrReadOnly)
		products.DELETE("/:id", r.productHandler.Delete, adminOrReadOnly)

		// Anyone may read and write reviews; only staff remove them.
		reviews := products.Group("/:product_id/reviews")
		reviews.GET("", r.reviewHandler.List)
		reviews.POST("", r.reviewHandler.Create)
		reviews.GET("/:id", r.reviewHandler.Get)
		reviews.DELETE("/:id", r.reviewHandler.Delete, admin)
	}

	promotions := store.Group("/promotions")
	{
		promotions.GET("", r.promotionHandler.List)
		promotions.POST("", r.promotionHandler.Create, adminOrReadOnly)
	}

	carts := store.Group("/carts")
	{
		carts.POST("", r.cartHandler.Create)
		carts.POST("/resolve", r.cartHandler.Resolve)
		carts.GET("/:id", r.cartHandler.Get)
		carts.DELETE("/:id", r.cartHandler.Delete)
		carts.GET("/:id/qr", r.cartHandler.QRCode)

		items := carts.Group("/:cart_id/items")
		items.GET("", r.cartHandler.ListItems)
		items.POST("", r.cartHandler.AddItem)
		items.GET("/:id", r.cartHandler.GetItem)
		items.PATCH("/:id", r.cartHandler.UpdateItem)
		items.DELETE("/:id", r.cartHandler.DeleteItem)
	}

	customers := store.Group("/customers", authenticated)
	{
		customers.GET("/me", r.customerHandler.Me)
		customers.PUT("/me", r.customerHandler.UpdateMe)
		customers.GET("/me/addresses", r.customerHandler.ListAddresses)
		customers.POST("/me/addresses", r.customerHandler.AddAddress)
	}

	orders := store.Group("/orders", authenticated)
	{
		orders.GET("", r.orderHandler.List)
		orders.POST("", r.orderHandler.Place)
		orders.GET("/:id", r.orderHandler.Get)
		orders.PATCH("/:id", r.orderHandler.Update, admin)
	}
}
