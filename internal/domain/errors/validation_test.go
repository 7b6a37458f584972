package errors

import (
	"net/http"
	"testing"

	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_CollectsFields(t *testing.T) {
	ve := NewValidationError()
	assert.NoError(t, ve.OrNil())

	ve.Add("title", MsgBlank)
	ve.Addf("inventory", "Ensure this value is greater than or equal to %d.", 0)

	err := ve.OrNil()
	require.Error(t, err)

	var appErr AppError
	require.True(t, errors.As(errors.Wrap(err, "creating product"), &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Equal(t, "inventory: Ensure this value is greater than or equal to 0.; title: This field may not be blank.", appErr.Details())

	var fieldErrs FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, []string{MsgBlank}, fieldErrs.Fields()["title"])
}

func TestValidationError_MergeKeepsExistingFields(t *testing.T) {
	ve := FieldError("title", MsgRequired)

	other := NewValidationError()
	other.Add("title", MsgBlank)
	other.Add("slug", MsgBlank)
	ve.Merge(other)
	ve.Merge(nil)

	fields := ve.Fields()
	assert.Equal(t, []string{MsgRequired}, fields["title"])
	assert.Equal(t, []string{MsgBlank}, fields["slug"])
}

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrProductNotFound.WrapMessage("product 9")

	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.False(t, errors.Is(err, ErrCollectionNotFound))
	assert.Equal(t, "product 9: Product not found.", err.Error())
}
