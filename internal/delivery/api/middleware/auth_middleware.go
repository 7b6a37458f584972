package middleware

import (
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/policy"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Accepted Authorization schemes.
var authSchemes = []string{"Bearer ", "JWT "}

// AuthMiddleware resolves the caller from the access token and enforces permission rules.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate leaves requests without an Authorization header anonymous and
// rejects malformed or invalid tokens with 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			deliverycontext.SetCaller(c, policy.Anonymous)

			return next(c)
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return domainerrors.ErrInvalidToken.WrapMessage("unsupported authorization scheme")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString, service.TokenTypeAccess)
		if err != nil {
			return err
		}

		deliverycontext.SetCaller(c, policy.Caller{UserID: claims.UserID, IsStaff: claims.IsStaff})

		return next(c)
	}
}

// Require rejects callers the rule does not admit. It must run after Authenticate.
func (m *AuthMiddleware) Require(rule policy.Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := rule.Check(deliverycontext.GetCaller(c), c.Request().Method); err != nil {
				return err
			}

			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	for _, scheme := range authSchemes {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):]), true
		}
	}

	return "", false
}
