package output

import (
	"errors"
	"strings"

	"RRHHPlatform/internal/client"
	"RRHHPlatform/internal/domain"
	pkgerrors "RRHHPlatform/pkg/errors"
)

// UserMessage формирует текст ошибки для оператора. Ответ бэкенда с телом
// дополняет общее сообщение по коду, ошибки полей выводятся построчно.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *pkgerrors.Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	if body, ok := client.DecodeErrorBody(err); ok {
		var b strings.Builder
		b.WriteString(e.GetUserMessage())
		fields := append(body.Errors, body.Details...)
		if headline := firstNonEmpty(body.Message, body.Error, body.Detail); headline != "" {
			b.WriteString(": ")
			b.WriteString(headline)
		} else if len(fields) == 1 {
			b.WriteString(": ")
			b.WriteString(fields[0].Text())
			fields = nil
		}
		for _, fe := range fields {
			b.WriteString("\n  - ")
			if field := fieldName(fe); field != "" {
				b.WriteString(field)
				b.WriteString(": ")
			}
			b.WriteString(fe.Text())
		}
		return b.String()
	}

	switch e.Code {
	case pkgerrors.ErrUnavailable, pkgerrors.ErrTimeout:
		return e.GetUserMessage() + " (" + e.Message + ")"
	case pkgerrors.ErrInternal:
		return e.GetUserMessage()
	default:
		if e.Message != "" {
			return e.Message
		}
		return e.GetUserMessage()
	}
}

func fieldName(fe domain.FieldError) string {
	if fe.Field != "" {
		return fe.Field
	}
	return fe.Param
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
