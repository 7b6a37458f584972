package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/policy"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/metrics"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type orderService struct {
	txManager    repository.TransactionManager
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	notifier     service.Notifier
	logger       *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	CustomerRepo repository.CustomerRepository
	Notifier     service.Notifier
	Logger       *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:    params.TxManager,
		orderRepo:    params.OrderRepo,
		customerRepo: params.CustomerRepo,
		notifier:     params.Notifier,
		logger:       params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *orderService) List(ctx context.Context, caller policy.Caller) ([]*entity.Order, error) {
	if !caller.Authenticated() {
		return nil, domainerrors.ErrAuthenticationRequired
	}
	if caller.IsStaff {
		return srv.orderRepo.List(ctx, repository.OrderFilter{})
	}

	customer, err := srv.customerRepo.FindByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	return srv.orderRepo.List(ctx, repository.OrderFilter{CustomerID: customer.ID})
}

// Get hides orders of other customers behind a not-found.
func (srv *orderService) Get(ctx context.Context, caller policy.Caller, id uint) (*entity.Order, error) {
	if !caller.Authenticated() {
		return nil, domainerrors.ErrAuthenticationRequired
	}

	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.IsStaff {
		return order, nil
	}

	owner, err := srv.customerRepo.FindByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewOrder(caller, owner.UserID) {
		return nil, domainerrors.ErrOrderNotFound.WrapMessage("order belongs to another customer")
	}

	return order, nil
}

func (srv *orderService) Place(ctx context.Context, caller policy.Caller, cartID uuid.UUID) (*entity.Order, error) {
	if !caller.Authenticated() {
		return nil, domainerrors.ErrAuthenticationRequired
	}

	var (
		order    *entity.Order
		customer *entity.Customer
		cart     *entity.Cart
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		customer, err = repoFactory.NewCustomerRepository().FindByUserID(ctx, caller.UserID)
		if err != nil {
			return err
		}

		cartRepo := repoFactory.NewCartRepository()
		cart, err = cartRepo.FindByID(ctx, cartID)
		if errors.Is(err, domainerrors.ErrCartNotFound) {
			return domainerrors.FieldError("cart_id", "No cart with the given ID was found.")
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return domainerrors.FieldError("cart_id", "The cart is empty.")
		}

		order = &entity.Order{
			CustomerID:    customer.ID,
			PlacedAt:      time.Now(),
			PaymentStatus: entity.PaymentStatusPending,
			Items:         make([]entity.OrderItem, 0, len(cart.Items)),
		}
		for _, item := range cart.Items {
			order.Items = append(order.Items, entity.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Product.UnitPrice,
			})
		}
		if err := order.Validate(); err != nil {
			return err
		}

		if err := repoFactory.NewOrderRepository().Create(ctx, order); err != nil {
			return err
		}

		productRepo := repoFactory.NewProductRepository()
		for _, item := range order.Items {
			if err := productRepo.DecrementInventory(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return cartRepo.Delete(ctx, cart.ID)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to place order")
	}

	metrics.OrdersPlacedTotal.Inc()
	srv.log(ctx).Info("Order placed",
		slog.Uint64("orderID", uint64(order.ID)),
		slog.Uint64("customerID", uint64(customer.ID)),
		slog.String("total", order.TotalPrice().StringFixed(2)),
	)
	srv.sendConfirmation(ctx, customer, cart, order)

	return order, nil
}

func (srv *orderService) UpdatePaymentStatus(ctx context.Context, id uint, status entity.PaymentStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, domainerrors.FieldError("payment_status", "\""+string(status)+"\" is not a valid choice.")
	}

	if err := srv.orderRepo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return srv.orderRepo.FindByID(ctx, id)
}

type confirmationLine struct {
	Title     string
	Quantity  int
	UnitPrice string
}

func (srv *orderService) sendConfirmation(ctx context.Context, customer *entity.Customer, cart *entity.Cart, order *entity.Order) {
	if customer.User == nil || customer.User.Email == "" {
		return
	}

	lines := make([]confirmationLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, confirmationLine{
			Title:     item.Product.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.UnitPrice.StringFixed(2),
		})
	}

	srv.notifier.Send(ctx, &service.EmailMessage{
		To:       customer.User.Email,
		Subject:  "Order confirmation",
		Template: constants.TemplateOrderConfirmation,
		Data: map[string]any{
			"Name":    displayName(customer.User),
			"OrderID": order.ID,
			"Items":   lines,
			"Total":   order.TotalPrice().StringFixed(2),
		},
	})
}
