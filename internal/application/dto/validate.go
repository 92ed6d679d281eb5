package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/billing"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Nombres de campo según el tag json en los errores
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
			return billing.ValidGSTIN(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate valida un DTO con sus tags. El primer campo inválido se devuelve como
// *domain.ValidationError.
func Validate(in any) error {
	err := engine().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.NewValidationError(fe.Field(), validationMessage(fe))
	}
	return domain.NewValidationError("", err.Error())
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es obligatorio"
	case "min":
		if e.Kind() == reflect.String {
			return "debe tener al menos " + e.Param() + " caracteres"
		}
		return "debe ser al menos " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "debe tener como máximo " + e.Param() + " caracteres"
		}
		return "debe ser como máximo " + e.Param()
	case "gt":
		return "debe ser mayor que " + e.Param()
	case "uuid":
		return "no es un UUID válido"
	case "numeric":
		return "debe ser numérico"
	case "datetime":
		return "fecha inválida, formato " + e.Param()
	case "gstin":
		return "GSTIN inválido"
	default:
		return "valor inválido"
	}
}
