package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Форматы дат, которые принимают бэкенды
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

var dniPattern = regexp.MustCompile(`^[0-9]{8}$`)

// Validator предоставляет общие функции валидации на базе go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator создает новый Validator с зарегистрированными правилами домена
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Ошибки регистрации возможны только при пустом теге
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		return IsDate(fl.Field().String())
	})
	_ = v.RegisterValidation("dni", func(fl validator.FieldLevel) bool {
		return dniPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Struct проверяет структуру по тегам validate и возвращает читаемую ошибку
func (v *Validator) Struct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// Var проверяет одно значение по тегу
func (v *Validator) Var(name string, value interface{}, tag string) error {
	if err := v.validate.Var(value, tag); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return errors.New(formatSingle(name, validationErrors[0]))
		}
		return err
	}
	return nil
}

// IsDate проверяет формат YYYY-MM-DD
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidateDateRange проверяет пару дат: обе в формате YYYY-MM-DD и desde <= hasta
func ValidateDateRange(desde, hasta string) error {
	from, err := time.Parse(DateLayout, desde)
	if err != nil {
		return fmt.Errorf("fecha desde inválida %q: se espera YYYY-MM-DD", desde)
	}
	to, err := time.Parse(DateLayout, hasta)
	if err != nil {
		return fmt.Errorf("fecha hasta inválida %q: se espera YYYY-MM-DD", hasta)
	}
	if to.Before(from) {
		return fmt.Errorf("el rango de fechas es inválido: %s es anterior a %s", hasta, desde)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, formatSingle(e.Namespace(), e))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

func formatSingle(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", field)
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s debe ser como máximo %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s debe ser una URL válida", field)
	case "hostname_port":
		return fmt.Sprintf("%s debe tener el formato host:puerto", field)
	case "email":
		return fmt.Sprintf("%s debe ser un correo válido", field)
	case "date":
		return fmt.Sprintf("%s debe tener el formato YYYY-MM-DD", field)
	case "dni":
		return fmt.Sprintf("%s debe tener 8 dígitos", field)
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, e.Tag())
	}
}
