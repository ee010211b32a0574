package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

type Option func(v *validator.Validate)

// WithRule registers a string rule under tag.
func WithRule(tag string, rule func(string) bool) Option {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool { //nolint:errcheck
			return rule(fl.Field().String())
		})
	}
}

func NewCustomValidator(opts ...Option) *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for _, op := range opts {
		op(v)
	}
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
