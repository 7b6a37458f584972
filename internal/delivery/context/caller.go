package context

import (
	"storefront/internal/domain/constants"
	"storefront/internal/domain/policy"

	"github.com/labstack/echo/v4"
)

// GetCaller returns the caller set by the auth middleware, or policy.Anonymous.
func GetCaller(c echo.Context) policy.Caller {
	if caller, ok := c.Get(constants.ContextKeyCaller).(policy.Caller); ok {
		return caller
	}

	return policy.Anonymous
}

// SetCaller stores the authenticated caller in echo.Context.
func SetCaller(c echo.Context, caller policy.Caller) {
	c.Set(constants.ContextKeyCaller, caller)
}
