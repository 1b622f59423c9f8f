package errors

import (
	"fmt"
	"net/http"
	"testing"
)

// TestNewError проверяет создание новой ошибки
func TestNewError(t *testing.T) {
	e := New(ErrNotFound, "resource not found")
	if e == nil {
		t.Fatal("Expected error, got nil")
	}

	if e.Code != ErrNotFound {
		t.Errorf("Expected code %s, got %s", ErrNotFound, e.Code)
	}

	if e.Message != "resource not found" {
		t.Errorf("Expected message 'resource not found', got %s", e.Message)
	}

	if e.Cause != nil {
		t.Error("Expected cause to be nil")
	}
}

// TestWrapError проверяет оборачивание существующей ошибки
func TestWrapError(t *testing.T) {
	originalErr := fmt.Errorf("dial tcp: connection refused")
	e := Wrap(originalErr, ErrUnavailable, "biometric service unreachable")

	if e == nil {
		t.Fatal("Expected error, got nil")
	}

	if e.Code != ErrUnavailable {
		t.Errorf("Expected code %s, got %s", ErrUnavailable, e.Code)
	}

	if e.Error() != "biometric service unreachable: dial tcp: connection refused" {
		t.Errorf("Unexpected error string %q", e.Error())
	}

	if Wrap(nil, ErrInternal, "nothing") != nil {
		t.Error("Expected nil when wrapping nil error")
	}
}

// TestCodeOf проверяет извлечение кода из цепочки ошибок
func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("list users: %w", New(ErrUnauthorized, "401"))
	if CodeOf(wrapped) != ErrUnauthorized {
		t.Errorf("Expected %s, got %s", ErrUnauthorized, CodeOf(wrapped))
	}

	if CodeOf(fmt.Errorf("plain")) != ErrInternal {
		t.Error("Expected ErrInternal for foreign errors")
	}

	if CodeOf(nil) != "" {
		t.Error("Expected empty code for nil")
	}

	if !HasCode(wrapped, ErrUnauthorized) {
		t.Error("Expected HasCode to match wrapped code")
	}
	if HasCode(wrapped, ErrNotFound) {
		t.Error("Expected HasCode not to match other code")
	}
}

// TestFromHTTPStatus проверяет сопоставление HTTP статусов
func TestFromHTTPStatus(t *testing.T) {
	cases := map[int]ErrorCode{
		http.StatusBadRequest:          ErrValidation,
		http.StatusUnprocessableEntity: ErrValidation,
		http.StatusUnauthorized:        ErrUnauthorized,
		http.StatusForbidden:           ErrForbidden,
		http.StatusNotFound:            ErrNotFound,
		http.StatusConflict:            ErrConflict,
		http.StatusServiceUnavailable:  ErrUnavailable,
		http.StatusGatewayTimeout:      ErrTimeout,
		http.StatusInternalServerError: ErrInternal,
	}

	for status, want := range cases {
		if got := FromHTTPStatus(status); got != want {
			t.Errorf("status %d: expected %s, got %s", status, want, got)
		}
	}
}

// TestGetUserMessage проверяет тексты для оператора
func TestGetUserMessage(t *testing.T) {
	e := New(ErrUnauthorized, "token expired")
	if e.GetUserMessage() != "Sesión no válida, inicie sesión nuevamente" {
		t.Errorf("Unexpected user message %q", e.GetUserMessage())
	}

	if got := New("UNKNOWN", "x").GetUserMessage(); got != "Ocurrió un error" {
		t.Errorf("Expected fallback message, got %q", got)
	}

	var nilErr *Error
	if nilErr.GetUserMessage() != "" {
		t.Error("Expected empty message for nil error")
	}
}
