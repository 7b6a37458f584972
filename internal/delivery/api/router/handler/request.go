package handler

import (
	"encoding/json"
	"strconv"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domainerrors.FieldError(typeErr.Field, "A valid "+typeErr.Type.String()+" is required.")
		}

		return domainerrors.ErrMalformedRequest.WrapMessage(err.Error())
	}

	return c.Validate(req)
}

// pathID parses a numeric path parameter. Ids that cannot exist are a 404.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, domainerrors.ErrNotFound.WrapMessage("invalid " + name)
	}

	return uint(id), nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrNotFound.WrapMessage("invalid " + name)
	}

	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerrors.FieldError(name, "A valid integer is required.")
	}

	return n, nil
}
