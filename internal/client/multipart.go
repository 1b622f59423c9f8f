package client

import (
	"bytes"
	"mime/multipart"
)

// Form тело multipart/form-data: поля и файлы в порядке добавления
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

// NewForm создает пустую форму
func NewForm() *Form {
	return &Form{}
}

// Field добавляет текстовое поле
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// OptionalField добавляет поле, только если значение задано
func (f *Form) OptionalField(name string, value *string) *Form {
	if value != nil {
		f.Field(name, *value)
	}
	return f
}

// File добавляет файл
func (f *Form) File(field, filename string, content []byte) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

func (f *Form) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}

	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
