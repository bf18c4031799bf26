package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldLabels names form fields the way the pages show them.
var fieldLabels = map[string]string{
	"name":     "Nome",
	"email":    "E-mail",
	"password": "Senha",
	"open":     "Abertura",
	"close":    "Fechamento",
}

// formValidator plugs go-playground/validator into echo. Messages are
// user-facing and end up in a flash.
type formValidator struct {
	v *validator.Validate
}

// NewValidator returns a validator for echo.Echo.Validator that reports
// fields by their form name.
func NewValidator() *formValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &formValidator{v: v}
}

func (fv *formValidator) Validate(i any) error {
	err := fv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, " "))
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " é obrigatório."
	case "email":
		return label + " inválido."
	case "min":
		return fmt.Sprintf("%s deve ter ao menos %s caracteres.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres.", label, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s deve estar no formato HH:MM.", label)
	default:
		return fmt.Sprintf("%s inválido (%s).", label, fe.Tag())
	}
}
