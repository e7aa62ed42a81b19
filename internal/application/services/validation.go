package services

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/teamflow/core/internal/domain/entities"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateRequest checks a request DTO. Services call this before any write
// begins so a rejected request never reaches the store.
func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}
	return nil
}
