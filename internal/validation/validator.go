package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/MYAIBV/my-ai-portfolio/internal/locale"
	"github.com/MYAIBV/my-ai-portfolio/internal/slug"
)

var categories = map[string]bool{
	"voice":      true,
	"chat":       true,
	"image":      true,
	"video":      true,
	"automation": true,
	"other":      true,
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// "slug" accepts the empty string so optional slug fields can be
	// auto-derived; use it together with required where a slug must
	// actually be supplied.
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return value == "" || slug.IsValid(value)
	})

	v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := locale.Parse(value)
		return err == nil
	})

	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return categories[value]
	})

	return &Validator{v: v}
}

func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	if ve, ok := err.(validator.ValidationErrors); ok {
		return ve
	}
	return nil
}
