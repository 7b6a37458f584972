package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type cartService struct {
	txManager     repository.TransactionManager
	cartRepo      repository.CartRepository
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	CartRepo      repository.CartRepository
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager:     params.TxManager,
		cartRepo:      params.CartRepo,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

func (srv *cartService) Create(ctx context.Context) (*entity.Cart, error) {
	cart := &entity.Cart{Items: []entity.CartItem{}}
	if err := srv.cartRepo.Create(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to create cart")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Cart created", slog.String("cartID", cart.ID.String()))

	return cart, nil
}

func (srv *cartService) Get(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	return srv.cartRepo.FindByID(ctx, id)
}

func (srv *cartService) Delete(ctx context.Context, id uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewCartRepository().Delete(ctx, id)
	})
}

func (srv *cartService) AddItem(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) (*entity.CartItem, error) {
	item := &entity.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		if _, err := cartRepo.FindByID(ctx, cartID); err != nil {
			return err
		}

		product, err := repoFactory.NewProductRepository().FindByID(ctx, productID)
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			return domainerrors.FieldError("product_id", "No product with the given ID was found.")
		}
		if err != nil {
			return err
		}

		if err := cartRepo.AddItem(ctx, item); err != nil {
			return err
		}
		item.Product = product

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add cart item")
	}

	return item, nil
}

func (srv *cartService) UpdateItem(ctx context.Context, cartID uuid.UUID, itemID uint, quantity int) (*entity.CartItem, error) {
	if err := (&entity.CartItem{Quantity: quantity}).Validate(); err != nil {
		return nil, err
	}

	var item *entity.CartItem
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		if err := cartRepo.UpdateItemQuantity(ctx, cartID, itemID, quantity); err != nil {
			return err
		}

		var err error
		item, err = cartRepo.FindItem(ctx, cartID, itemID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update cart item")
	}

	return item, nil
}

func (srv *cartService) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	return srv.cartRepo.DeleteItem(ctx, cartID, itemID)
}

func (srv *cartService) QRCode(ctx context.Context, cartID uuid.UUID) ([]byte, error) {
	if _, err := srv.cartRepo.FindByID(ctx, cartID); err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateCartQR(cartID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render cart QR code")
	}

	return png, nil
}

func (srv *cartService) Resolve(ctx context.Context, qrData string) (*entity.Cart, error) {
	cartID, err := srv.qrcodeService.ParseCartQR(qrData)
	if err != nil {
		return nil, domainerrors.FieldError("data", "Not a cart QR code.")
	}

	return srv.cartRepo.FindByID(ctx, cartID)
}
