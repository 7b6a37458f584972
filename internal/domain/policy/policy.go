// Package policy decides whether a caller may perform an action on a resource.
package policy

import (
	"net/http"

	domainerrors "storefront/internal/domain/errors"
)

// Caller identifies who issued a request. The zero value is anonymous.
type Caller struct {
	UserID  uint
	IsStaff bool
}

// Authenticated reports whether the request carried a valid token.
func (c Caller) Authenticated() bool {
	return c.UserID != 0
}

// Anonymous is the caller of requests without credentials.
var Anonymous = Caller{}

// Rule is a permission class attached to a route group.
type Rule int

const (
	// AllowAny lets every caller through.
	AllowAny Rule = iota
	// IsAuthenticated requires a signed-in caller.
	IsAuthenticated
	// IsAdmin requires a staff caller.
	IsAdmin
	// IsAdminOrReadOnly allows safe methods to anyone and everything else to staff.
	IsAdminOrReadOnly
)

// Check returns nil when caller may issue method under the rule, otherwise
// ErrAuthenticationRequired for anonymous callers and ErrForbidden for the rest.
func (r Rule) Check(caller Caller, method string) error {
	switch r {
	case AllowAny:
		return nil
	case IsAuthenticated:
		return requireAuthenticated(caller)
	case IsAdmin:
		return requireStaff(caller)
	case IsAdminOrReadOnly:
		if IsSafeMethod(method) {
			return nil
		}

		return requireStaff(caller)
	}

	return domainerrors.ErrForbidden
}

func (r Rule) String() string {
	switch r {
	case AllowAny:
		return "AllowAny"
	case IsAuthenticated:
		return "IsAuthenticated"
	case IsAdmin:
		return "IsAdmin"
	case IsAdminOrReadOnly:
		return "IsAdminOrReadOnly"
	}

	return "Unknown"
}

// IsSafeMethod reports whether method only reads.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}

	return false
}

// CanViewOrder reports whether caller may see an order owned by ownerUserID.
func CanViewOrder(caller Caller, ownerUserID uint) bool {
	return caller.IsStaff || (caller.Authenticated() && caller.UserID == ownerUserID)
}

func requireAuthenticated(caller Caller) error {
	if !caller.Authenticated() {
		return domainerrors.ErrAuthenticationRequired
	}

	return nil
}

func requireStaff(caller Caller) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}
	if !caller.IsStaff {
		return domainerrors.ErrForbidden
	}

	return nil
}
