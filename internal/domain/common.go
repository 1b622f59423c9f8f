// Package domain описывает формы запросов и ответов пяти бэкендов.
// Имена JSON полей совпадают с API бэкендов (испанский), имена Go полей английские.
package domain

import (
	"bytes"
	"encoding/json"
)

// Page описывает страницу списка биометрического бэкенда
type Page[T any] struct {
	Data     []T `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	Limit    int `json:"limit"`
	LastPage int `json:"last_page"`
}

// Pagination описывает блок пагинации бэкендов папелет и инцидентов
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// PagedList список с блоком pagination
type PagedList[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Message стандартный ответ {success, message}
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FieldError ошибка конкретного поля в ответе бэкенда
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
	Msg     string `json:"msg,omitempty"`
}

// Text возвращает текст ошибки поля независимо от формата бэкенда
func (f FieldError) Text() string {
	if f.Message != "" {
		return f.Message
	}
	return f.Msg
}

// ErrorBody тело ответа с ошибкой. Бэкенды используют разные поля:
// message, error, detail, errors или details.
type ErrorBody struct {
	Success *bool        `json:"success,omitempty"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
	Detail  string       `json:"detail,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// Summary возвращает наиболее информативное сообщение из тела ошибки
func (b ErrorBody) Summary() string {
	switch {
	case b.Message != "":
		return b.Message
	case b.Error != "":
		return b.Error
	case b.Detail != "":
		return b.Detail
	}
	for _, list := range [][]FieldError{b.Errors, b.Details} {
		if len(list) > 0 {
			return list[0].Text()
		}
	}
	return ""
}

// RoleRef роль пользователя. Бэкенд отдает ее то объектом {id, nombre}, то строкой.
type RoleRef struct {
	ID          string `json:"id,omitempty"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// UnmarshalJSON принимает объект, строку или null
func (r *RoleRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = RoleRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*r = RoleRef{Nombre: name}
		return nil
	}
	type plain RoleRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = RoleRef(p)
	return nil
}

// String возвращает плоское имя роли
func (r *RoleRef) String() string {
	if r == nil {
		return ""
	}
	return r.Nombre
}

// Bool, Int, String создают указатели для необязательных полей
func Bool(v bool) *bool       { return &v }
func Int(v int) *int          { return &v }
func String(v string) *string { return &v }
