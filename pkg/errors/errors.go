// Package errors таксономия ошибок консоли. Код ошибки определяет текст для
// оператора и код выхода; причина сохраняется для логов.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode категория ошибки
type ErrorCode string

const (
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrForbidden    ErrorCode = "FORBIDDEN"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrConflict     ErrorCode = "CONFLICT"
	ErrUnavailable  ErrorCode = "UNAVAILABLE"
	ErrTimeout      ErrorCode = "TIMEOUT"
)

// сообщения для оператора, на испанском
var userMessages = map[ErrorCode]string{
	ErrNotFound:     "Recurso no encontrado",
	ErrValidation:   "Datos inválidos",
	ErrUnauthorized: "Sesión no válida, inicie sesión nuevamente",
	ErrForbidden:    "Acceso denegado",
	ErrConflict:     "Conflicto de datos (por ejemplo, duplicado)",
	ErrUnavailable:  "Servicio no disponible",
	ErrTimeout:      "Tiempo de espera agotado",
	ErrInternal:     "Error interno del servidor",
}

// Error ошибка с кодом категории
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is сравнивает только коды, что позволяет errors.Is(err, New(ErrNotFound, ""))
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// GetUserMessage общий текст для оператора по коду ошибки
func (e *Error) GetUserMessage() string {
	if e == nil {
		return ""
	}
	if msg, ok := userMessages[e.Code]; ok {
		return msg
	}
	return "Ocurrió un error"
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap возвращает nil для nil ошибки
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// CodeOf код первой ошибки таксономии в цепочке; посторонние ошибки
// считаются ErrInternal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrInternal
}

func HasCode(err error, code ErrorCode) bool {
	return stderrors.Is(err, &Error{Code: code})
}

// FromHTTPStatus код ошибки для HTTP статуса ответа бэкенда
func FromHTTPStatus(status int) ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrTimeout
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable:
		return ErrUnavailable
	case status >= 400 && status < 500:
		return ErrValidation
	default:
		return ErrInternal
	}
}
