package client

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"RRHHPlatform/internal/domain"
	pkgerrors "RRHHPlatform/pkg/errors"
)

// Бэкенды оборачивают данные по-разному: {data: [...]}, {users: [...]},
// {data: {data: {...}}}, {user: {...}} или отдают их без обертки.
// Функции ниже выбирают данные один раз, на границе клиента.

// ErrUnexpectedShape ответ не содержит ожидаемой коллекции или объекта
var ErrUnexpectedShape = pkgerrors.New(pkgerrors.ErrInternal, "неожиданный формат ответа")

// decodeList декодирует массив из корня ответа или из первого пути, где лежит массив
func decodeList[T any](raw []byte, paths ...string) ([]T, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrUnexpectedShape
	}

	root := gjson.ParseBytes(raw)
	if root.IsArray() {
		return unmarshalList[T](root.Raw)
	}

	for _, path := range paths {
		if res := root.Get(path); res.IsArray() {
			return unmarshalList[T](res.Raw)
		}
	}

	return nil, ErrUnexpectedShape
}

func unmarshalList[T any](raw string) ([]T, error) {
	items := make([]T, 0)
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrInternal, "ошибка декодирования списка")
	}
	return items, nil
}

// decodeObject декодирует объект из первого пути, где лежит объект, иначе из корня
func decodeObject(raw []byte, out any, paths ...string) error {
	if !gjson.ValidBytes(raw) {
		return ErrUnexpectedShape
	}

	root := gjson.ParseBytes(raw)
	for _, path := range paths {
		if res := root.Get(path); res.IsObject() {
			return decodeJSON([]byte(res.Raw), out)
		}
	}

	if !root.IsObject() {
		return ErrUnexpectedShape
	}
	return decodeJSON(raw, out)
}

// decodePage декодирует страницу биометрического бэкенда; голый массив
// превращается в страницу из одного листа
func decodePage[T any](raw []byte) (*domain.Page[T], error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrUnexpectedShape
	}

	root := gjson.ParseBytes(raw)
	if root.IsArray() {
		items, err := unmarshalList[T](root.Raw)
		if err != nil {
			return nil, err
		}
		return &domain.Page[T]{Data: items, Total: len(items), Page: 1, Limit: len(items), LastPage: 1}, nil
	}

	if !root.Get("data").IsArray() {
		return nil, ErrUnexpectedShape
	}

	page := &domain.Page[T]{}
	if err := decodeJSON(raw, page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = make([]T, 0)
	}
	return page, nil
}

// decodePaged декодирует список с блоком pagination
func decodePaged[T any](raw []byte) (*domain.PagedList[T], error) {
	items, err := decodeList[T](raw, "data")
	if err != nil {
		return nil, err
	}

	list := &domain.PagedList[T]{Data: items}
	if p := gjson.GetBytes(raw, "pagination"); p.IsObject() {
		if err := json.Unmarshal([]byte(p.Raw), &list.Pagination); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrInternal, "ошибка декодирования пагинации")
		}
	} else {
		list.Pagination = domain.Pagination{Total: len(items), Page: 1, Limit: len(items), TotalPages: 1}
	}
	return list, nil
}

// decodeMap декодирует объект из первого найденного пути в map
func decodeMap(raw []byte, paths ...string) (map[string]any, error) {
	out := make(map[string]any)
	if err := decodeObject(raw, &out, paths...); err != nil {
		return nil, err
	}
	return out, nil
}

// lookupString возвращает первое непустое строковое значение среди ключей
func lookupString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
