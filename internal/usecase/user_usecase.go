// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to create a user and its customer.
type RegisterUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	IsStaff   bool
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the user together with the customer created for it.
type RegisterOutput struct {
	User     *entity.User
	Customer *entity.Customer
	// Created is false when EnsureUser found an existing user.
	Created bool
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the interface for user-related business operations.
type UserUsecase interface {
	// RegisterUser creates a user and its customer in one transaction.
	// A taken username is a validation error.
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	// EnsureUser returns the user named input.Username, creating it with its
	// customer when absent. Repeated calls never create a second customer.
	EnsureUser(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginOutput, error)
}
