package impl

import (
	"fmt"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
)

// mergeValidation folds the field errors of err into ve and returns any other error unchanged.
func mergeValidation(ve *domainerrors.ValidationError, err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs *domainerrors.ValidationError
	if errors.As(err, &fieldErrs) {
		ve.Merge(fieldErrs)

		return nil
	}

	return err
}

func invalidPK(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
