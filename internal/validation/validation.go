package validation

import (
	"errors"
	"reflect"
	"strings"

	svc "github.com/Jidetireni/gym-manager/internal/services"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// report json names so messages match the field names callers use
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	return &Validator{
		validate: validate,
		trans:    trans,
	}
}

// Struct returns a *services.ValidationError describing every failed field, or
// nil when dst is valid.
func (v *Validator) Struct(dst any) error {
	err := v.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make([]svc.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, svc.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.trans),
		})
	}

	return &svc.ValidationError{
		Message: "Input validation failed",
		Fields:  fields,
	}
}
