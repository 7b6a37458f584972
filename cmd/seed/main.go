// Command seed fills the store with consistent fake data and exits.
package main

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
)

type runSeedParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Config *config.Config
	Seed   usecase.SeedUsecase
	Logger *slog.Logger
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			postgres.NewTransactionManager,
			auth.NewBcryptHasher,
			impl.NewSeedService,
		),
		fx.StartTimeout(lifecycle.SeedTimeout),
		fx.Invoke(runSeed),
	).Run()
}

// runSeed seeds once the database is reachable and then stops the app.
// A failed run exits with code 1.
func runSeed(params runSeedParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			report, err := params.Seed.Seed(ctx, seedOptions(params.Config))
			if err != nil {
				params.Logger.Error("Seeding failed", slog.Any("error", err))

				return params.Shutdown(fx.ExitCode(1))
			}

			params.Logger.Info("Seeding finished",
				slog.Bool("admin_created", report.AdminCreated),
				slog.Int("users", report.Users),
				slog.Int("products", report.Products),
				slog.Int("orders", report.Orders),
				slog.Int("carts", report.Carts),
				slog.Int("reviews", report.Reviews),
			)

			return params.Shutdown()
		},
	})
}

func seedOptions(cfg *config.Config) *usecase.SeedOptions {
	if cfg.Seed == nil {
		return &usecase.SeedOptions{}
	}

	return &usecase.SeedOptions{
		AdminUsername:   cfg.Seed.AdminUsername,
		AdminEmail:      cfg.Seed.AdminEmail,
		AdminPassword:   cfg.Seed.AdminPassword,
		DefaultPassword: cfg.Seed.DefaultPassword,
		Users:           cfg.Seed.Users,
		Promotions:      cfg.Seed.Promotions,
		Collections:     cfg.Seed.Collections,
		Products:        cfg.Seed.Products,
		Orders:          cfg.Seed.Orders,
		Carts:           cfg.Seed.Carts,
		RandomSeed:      cfg.Seed.RandomSeed,
	}
}
