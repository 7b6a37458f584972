package usecase

import "context"

// SeedOptions sizes a seed run.
type SeedOptions struct {
	AdminUsername   string
	AdminEmail      string
	AdminPassword   string
	DefaultPassword string
	Users           int
	Promotions      int
	Collections     int
	Products        int
	Orders          int
	Carts           int
	// RandomSeed makes the generated data reproducible when non-zero.
	RandomSeed uint64
}

// SeedReport counts what a seed run created.
type SeedReport struct {
	AdminCreated bool
	Users        int
	Customers    int
	Promotions   int
	Collections  int
	Products     int
	Addresses    int
	Orders       int
	OrderItems   int
	Carts        int
	CartItems    int
	Reviews      int
}

// SeedUsecase fills the store with consistent fake data in a single transaction.
type SeedUsecase interface {
	Seed(ctx context.Context, opts *SeedOptions) (*SeedReport, error)
}
