package controller

import (
	"errors"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/go-playground/validator/v10"
)

// validateForm runs the struct rules and reports the first failing field.
func (c *Controller) validateForm(form interface{}) error {
	err := c.validator.Validate(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return errs.Validation(err.Error())
	}
	fe := ve[0]
	return &errs.FieldValidationError{Field: fe.Field(), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "phone":
		return "must be +7 followed by 10 digits"
	}
	return "is invalid"
}
