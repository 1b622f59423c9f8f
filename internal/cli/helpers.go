package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/client"
	"RRHHPlatform/internal/output"
	pkgerrors "RRHHPlatform/pkg/errors"
	"RRHHPlatform/pkg/validation"
)

// parseID разбирает числовой идентификатор из аргумента
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.ErrValidation, fmt.Sprintf("identificador inválido: %q", arg))
	}
	return id, nil
}

// optString возвращает указатель на значение флага, если он задан явно
func optString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// optInt возвращает указатель на значение флага, если он задан явно
func optInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

// optBool возвращает указатель на значение флага, если он задан явно
func optBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// optFloat возвращает указатель на значение флага, если он задан явно
func optFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

// prompt читает строку из stdin, если значение не передано флагом
func (a *App) prompt(label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(a.errOut, label+": ")
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return "", pkgerrors.Wrap(err, pkgerrors.ErrValidation, label+" es requerido")
	}
	return strings.TrimSpace(line), nil
}

// readFile читает вложение для multipart запроса
func readFile(path string) (string, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, pkgerrors.Wrap(err, pkgerrors.ErrValidation, fmt.Sprintf("no se pudo leer el archivo %s", path))
	}
	return filepath.Base(path), data, nil
}

// saveBlob сохраняет файл ответа: в dest, в каталог dest или под именем из ответа
func saveBlob(blob *client.Blob, dest, fallback string) (string, error) {
	name := blob.Filename
	if name == "" {
		name = fallback
	}

	path := dest
	switch {
	case path == "":
		path = name
	default:
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, name)
		}
	}

	if err := os.WriteFile(path, blob.Data, 0644); err != nil {
		return "", pkgerrors.Wrap(err, pkgerrors.ErrInternal, fmt.Sprintf("no se pudo guardar %s", path))
	}
	return path, nil
}

// splitList разбирает список через запятую без пустых элементов
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// validateOptionalRange проверяет даты фильтра, если заданы обе
func validateOptionalRange(desde, hasta string) error {
	if desde == "" && hasta == "" {
		return nil
	}
	if desde == "" || hasta == "" {
		return pkgerrors.New(pkgerrors.ErrValidation, "debe indicar ambas fechas: --desde y --hasta")
	}
	if err := validation.ValidateDateRange(desde, hasta); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrValidation, err.Error())
	}
	return nil
}

func confirmationRequired(command string) error {
	return pkgerrors.New(pkgerrors.ErrValidation,
		fmt.Sprintf("operación irreversible: repita 'rrhh %s' con --confirmar", command))
}

// mapsTable строит таблицу из строк отчета без фиксированной схемы.
// Колонки берутся из всех строк в алфавитном порядке.
func mapsTable(rows []map[string]any) *output.Table {
	seen := map[string]struct{}{}
	var columns []string
	for _, row := range rows {
		for k := range row {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = strings.ToUpper(c)
	}
	table := output.NewTable(headers...)
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = cellText(row[c])
		}
		table.AddRow(cells...)
	}
	return table
}

// mapDetails строит таблицу поле-значение из объекта отчета
func mapDetails(m map[string]any) *output.Details {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := output.NewDetails()
	for _, k := range keys {
		d.Add(k, cellText(m[k]))
	}
	return d
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func requiredFlags(names ...string) error {
	return pkgerrors.New(pkgerrors.ErrValidation, "faltan parámetros requeridos: "+strings.Join(names, ", "))
}
