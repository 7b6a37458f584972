// Package entity contains the core business objects of the store.
package entity

import (
	"strings"
	"time"

	domainerrors "storefront/internal/domain/errors"
)

const maxUsernameLength = 150

// User is an account that can sign in. Every user owns exactly one Customer.
type User struct {
	ID           uint
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsStaff      bool // staff users are administrators
	CreatedAt    time.Time
}

func (u *User) Validate() error {
	ve := domainerrors.NewValidationError()
	switch {
	case strings.TrimSpace(u.Username) == "":
		ve.Add("username", domainerrors.MsgBlank)
	case len(u.Username) > maxUsernameLength:
		ve.Addf("username", "Ensure this field has no more than %d characters.", maxUsernameLength)
	}

	return ve.OrNil()
}

// Membership is a customer loyalty tier.
type Membership string

const (
	MembershipBronze Membership = "B"
	MembershipSilver Membership = "S"
	MembershipGold   Membership = "G"
)

func (m Membership) Valid() bool {
	switch m {
	case MembershipBronze, MembershipSilver, MembershipGold:
		return true
	}

	return false
}

// Customer is the shopping profile attached to a User.
type Customer struct {
	ID         uint
	UserID     uint
	Phone      string
	BirthDate  *time.Time
	Membership Membership
	User       *User // loaded on reads only
}

func (c *Customer) Validate() error {
	ve := domainerrors.NewValidationError()
	if c.UserID == 0 {
		ve.Add("user", domainerrors.MsgRequired)
	}
	if !c.Membership.Valid() {
		ve.Addf("membership", "\"%s\" is not a valid choice.", c.Membership)
	}

	return ve.OrNil()
}

// Address is a shipping address of a customer.
type Address struct {
	ID         uint
	CustomerID uint
	Street     string
	City       string
}

func (a *Address) Validate() error {
	ve := domainerrors.NewValidationError()
	if strings.TrimSpace(a.Street) == "" {
		ve.Add("street", domainerrors.MsgBlank)
	}
	if strings.TrimSpace(a.City) == "" {
		ve.Add("city", domainerrors.MsgBlank)
	}

	return ve.OrNil()
}
