package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// FormatType представляет тип форматирования вывода
type FormatType string

const (
	FormatTable FormatType = "table"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// ParseFormat разбирает имя формата из флага или конфигурации
func ParseFormat(s string) (FormatType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table", "tabla":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("formato de salida desconocido: %s", s)
	}
}

// Formatter интерфейс для форматирования вывода
type Formatter interface {
	Format(data any) (string, error)
}

// Tabular реализуют значения, которые умеют строить таблицу для себя
type Tabular interface {
	Table() *Table
}

// TableFormatter форматирует данные в виде таблицы
type TableFormatter struct {
	UseColors bool
}

func NewTableFormatter(useColors bool) *TableFormatter {
	return &TableFormatter{UseColors: useColors}
}

func (f *TableFormatter) Format(data any) (string, error) {
	switch v := data.(type) {
	case *Table:
		return v.Render(f.UseColors), nil
	case Tabular:
		return v.Table().Render(f.UseColors), nil
	case string:
		return v, nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// JSONFormatter форматирует данные в JSON
type JSONFormatter struct {
	Pretty bool
}

func NewJSONFormatter(pretty bool) *JSONFormatter {
	return &JSONFormatter{Pretty: pretty}
}

func (f *JSONFormatter) Format(data any) (string, error) {
	var out []byte
	var err error

	if f.Pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}

	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return string(out), nil
}

// YAMLFormatter форматирует данные в YAML. Структуры сначала приводятся
// к JSON представлению, чтобы имена полей совпадали с JSON выводом.
type YAMLFormatter struct{}

func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func (f *YAMLFormatter) Format(data any) (string, error) {
	generic, err := toGeneric(data)
	if err != nil {
		return "", err
	}

	out, err := yaml.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return string(out), nil
}

func toGeneric(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return generic, nil
}

// GetFormatter возвращает подходящий форматировщик
func GetFormatter(format FormatType, pretty bool, useColors bool) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(pretty)
	case FormatYAML:
		return NewYAMLFormatter()
	default:
		return NewTableFormatter(useColors)
	}
}

// DetectColors определяет нужно ли использовать цвета для writer.
// NO_COLOR и RRHH_COLORS имеют приоритет над настройкой.
func DetectColors(w io.Writer, configured bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if colors := os.Getenv("RRHH_COLORS"); colors != "" {
		return strings.ToLower(colors) == "true"
	}
	return configured && isTerminal(w)
}

// isTerminal проверяет, что вывод идет в терминал
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}

	fi, err := f.Stat()
	if err != nil {
		return false
	}

	return (fi.Mode() & os.ModeCharDevice) != 0
}
