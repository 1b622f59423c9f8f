package output

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// NoData текст пустой таблицы
const NoData = "No se encontraron registros"

// Table представляет данные для табличного вывода
type Table struct {
	Headers []string
	Rows    []*Row
}

// Row представляет строку таблицы
type Row struct {
	Cells []string
	Style RowStyle
}

// RowStyle определяет стиль строки
type RowStyle int

const (
	StyleDefault RowStyle = iota
	StyleSuccess
	StyleError
	StyleWarning
	StyleInfo
)

const (
	colorReset     = "\033[0m"
	colorHeader    = "\033[1;34m"
	colorSeparator = "\033[1;90m"
	colorSuccess   = "\033[1;32m"
	colorError     = "\033[1;31m"
	colorWarning   = "\033[1;33m"
	colorInfo      = "\033[1;36m"
)

// NewTable создает таблицу с заголовками
func NewTable(headers ...string) *Table {
	return &Table{
		Headers: headers,
		Rows:    make([]*Row, 0),
	}
}

// AddRow добавляет строку
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, &Row{Cells: cells})
}

// AddRowWithStyle добавляет строку с указанием стиля
func (t *Table) AddRowWithStyle(style RowStyle, cells ...string) {
	t.Rows = append(t.Rows, &Row{Cells: cells, Style: style})
}

// Table позволяет передавать *Table туда, где ожидается Tabular
func (t *Table) Table() *Table {
	return t
}

// String возвращает таблицу без цветов
func (t *Table) String() string {
	return t.Render(false)
}

// Render выравнивает колонки через tabwriter. Цвета добавляются после
// выравнивания, чтобы escape-последовательности не сбивали ширину колонок.
func (t *Table) Render(useColors bool) string {
	if len(t.Rows) == 0 {
		return NoData
	}

	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	styles := make([]string, 0, len(t.Rows)+2)
	if len(t.Headers) > 0 {
		fmt.Fprintln(w, strings.Join(t.Headers, "\t"))
		separators := make([]string, len(t.Headers))
		for i := range separators {
			separators[i] = strings.Repeat("-", len([]rune(t.Headers[i])))
		}
		fmt.Fprintln(w, strings.Join(separators, "\t"))
		styles = append(styles, colorHeader, colorSeparator)
	}

	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row.Cells, "\t"))
		styles = append(styles, styleColor(row.Style))
	}

	w.Flush()
	rendered := strings.TrimRight(builder.String(), "\n")
	if !useColors {
		return rendered
	}

	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		if i < len(styles) && styles[i] != "" {
			lines[i] = styles[i] + line + colorReset
		}
	}
	return strings.Join(lines, "\n")
}

func styleColor(style RowStyle) string {
	switch style {
	case StyleSuccess:
		return colorSuccess
	case StyleError:
		return colorError
	case StyleWarning:
		return colorWarning
	case StyleInfo:
		return colorInfo
	default:
		return ""
	}
}

// Details таблица "campo / valor" для одной записи
type Details struct {
	table *Table
}

// NewDetails создает таблицу деталей
func NewDetails() *Details {
	return &Details{table: NewTable("CAMPO", "VALOR")}
}

// Add добавляет поле; пустые значения показываются как "-"
func (d *Details) Add(field, value string) *Details {
	d.table.AddRow(field, orDash(value))
	return d
}

// AddStyled добавляет поле со стилем строки
func (d *Details) AddStyled(style RowStyle, field, value string) *Details {
	d.table.AddRowWithStyle(style, field, orDash(value))
	return d
}

// Table возвращает построенную таблицу
func (d *Details) Table() *Table {
	return d.table
}

// StatusStyle подбирает стиль строки по названию статуса
func StatusStyle(status string) RowStyle {
	s := strings.ToLower(status)
	switch {
	case containsAny(s, "rechaz", "cancel", "inactiv", "error", "fall", "bloque"):
		return StyleError
	case containsAny(s, "pendiente", "revisión", "revision", "proceso"):
		return StyleWarning
	case containsAny(s, "aprob", "activo", "complet", "ok", "firmad"):
		return StyleSuccess
	default:
		return StyleDefault
	}
}

// StatusIcon возвращает иконку для статуса
func StatusIcon(status string) string {
	switch StatusStyle(status) {
	case StyleSuccess:
		return "✓"
	case StyleError:
		return "✗"
	case StyleWarning:
		return "⚠"
	default:
		return "•"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
