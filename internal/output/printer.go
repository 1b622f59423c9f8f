package output

import (
	"fmt"
	"io"
	"time"

	pkgerrors "RRHHPlatform/pkg/errors"
)

// Result структурированный вывод json/yaml с метаданными
type Result struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}

// Metadata содержит метаданные вывода
type Metadata struct {
	Command    string      `json:"command"`
	Format     string      `json:"format"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination содержит информацию о пагинации
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination создает объект пагинации
func NewPagination(page, pageSize, total int) *Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Printer печатает результаты команд в выбранном формате
type Printer struct {
	out       io.Writer
	errOut    io.Writer
	format    FormatType
	pretty    bool
	useColors bool
	now       func() time.Time
}

// NewPrinter создает печать в out; сообщения об ошибках и предупреждения идут в errOut
func NewPrinter(out, errOut io.Writer, format FormatType, useColors bool) *Printer {
	return &Printer{
		out:       out,
		errOut:    errOut,
		format:    format,
		pretty:    true,
		useColors: useColors && format == FormatTable,
		now:       time.Now,
	}
}

// Format текущий формат вывода
func (p *Printer) Format() FormatType {
	return p.format
}

// Structured сообщает, печатается ли вывод как json/yaml
func (p *Printer) Structured() bool {
	return p.format == FormatJSON || p.format == FormatYAML
}

// Print печатает данные: таблицу в табличном формате, иначе конверт Result
func (p *Printer) Print(command string, data any, table Tabular) error {
	return p.print(command, data, table, nil)
}

// PrintPage печатает страницу списка с пагинацией
func (p *Printer) PrintPage(command string, data any, table Tabular, page *Pagination) error {
	if err := p.print(command, data, table, page); err != nil {
		return err
	}
	if !p.Structured() && page != nil && page.TotalPages > 1 {
		fmt.Fprintf(p.out, "Página %d de %d (%d registros)\n", page.Page, page.TotalPages, page.Total)
	}
	return nil
}

func (p *Printer) print(command string, data any, table Tabular, page *Pagination) error {
	var payload any
	switch {
	case p.Structured():
		payload = &Result{
			Success:   true,
			Data:      data,
			Timestamp: p.now(),
			Metadata:  &Metadata{Command: command, Format: string(p.format), Pagination: page},
		}
	case table != nil:
		payload = table
	default:
		payload = data
	}

	text, err := GetFormatter(p.format, p.pretty, p.useColors).Format(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, text)
	return err
}

// Success печатает сообщение об успешном действии
func (p *Printer) Success(command, message string) error {
	if p.Structured() {
		return p.Print(command, map[string]string{"message": message}, nil)
	}
	_, err := fmt.Fprintln(p.out, p.colorize(colorSuccess, "✓ "+message))
	return err
}

// Warning печатает предупреждение в errOut. В json/yaml предупреждения
// не смешиваются с выводом.
func (p *Printer) Warning(message string) {
	fmt.Fprintln(p.errOut, p.colorize(colorWarning, "⚠ "+message))
}

// Info печатает справочную строку в табличном режиме
func (p *Printer) Info(message string) {
	if p.Structured() {
		return
	}
	fmt.Fprintln(p.out, message)
}

// Error печатает ошибку команды: конверт Result в json/yaml, текст в errOut для таблиц
func (p *Printer) Error(command string, err error) {
	message := UserMessage(err)
	if p.Structured() {
		result := &Result{
			Success:   false,
			Error:     message,
			Code:      string(pkgerrors.CodeOf(err)),
			Timestamp: p.now(),
			Metadata:  &Metadata{Command: command, Format: string(p.format)},
		}
		if text, ferr := GetFormatter(p.format, p.pretty, false).Format(result); ferr == nil {
			fmt.Fprintln(p.out, text)
			return
		}
	}
	fmt.Fprintln(p.errOut, p.colorize(colorError, "✗ "+message))
}

func (p *Printer) colorize(color, s string) string {
	if !p.useColors {
		return s
	}
	return color + s + colorReset
}
