package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/client"
	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
	pkgerrors "RRHHPlatform/pkg/errors"
)

func newReportsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reportes",
		Aliases: []string{"reports"},
		Short:   "Reportes y métricas de asistencia",
	}

	cmd.AddCommand(
		newReportsMetricsCmd(app),
		requireAuth(newReportsExportCmd(app), RoleAdmin, RoleRRHH),
		newGeneratedReportsCmd(app),
		newReportTypesCmd(app),
	)
	return requireAuth(cmd)
}

func newReportsMetricsCmd(app *App) *cobra.Command {
	var r domain.DateRange

	cmd := &cobra.Command{
		Use:   "metricas",
		Short: "Métricas de asistencia del periodo",
		Long:  `Totales de puntualidad, tardanzas, faltas y horas extras. Por defecto el mes en curso.`,
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			r = app.defaultRange(r)
			if err := app.validateRange(r); err != nil {
				return err
			}
			m, err := app.Registry.Reports().AttendanceMetrics(ctx, r)
			if err != nil {
				return err
			}
			return app.Printer.Print("reportes metricas", m, output.MetricsDetails(m))
		}),
	}
	rangeFlags(cmd, &r)
	return cmd
}

// defaultRange подставляет первый и текущий день месяца вместо пустых дат
func (a *App) defaultRange(r domain.DateRange) domain.DateRange {
	now := a.now()
	if r.FechaInicio == "" {
		r.FechaInicio = now.AddDate(0, 0, 1-now.Day()).Format("2006-01-02")
	}
	if r.FechaFin == "" {
		r.FechaFin = now.Format("2006-01-02")
	}
	return r
}

func newReportsExportCmd(app *App) *cobra.Command {
	var req domain.ReportExportRequest
	var users, dest string

	cmd := &cobra.Command{
		Use:       "exportar <pdf|excel>",
		Short:     "Exportar el reporte mensual de asistencia",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"pdf", "excel"},
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			now := app.now()
			if req.Mes == "" {
				req.Mes = fmt.Sprintf("%02d", int(now.Month()))
			}
			if req.Anio == "" {
				req.Anio = fmt.Sprintf("%d", now.Year())
			}
			req.UserIDs = splitList(users)
			if req.UserIDs == nil {
				req.UserIDs = []string{}
			}
			if err := app.validate(req); err != nil {
				return err
			}

			var blob *client.Blob
			var err error
			var ext string
			switch strings.ToLower(args[0]) {
			case "pdf":
				blob, err = app.Registry.Reports().ExportPDF(ctx, req)
				ext = ".pdf"
			case "excel", "xlsx":
				blob, err = app.Registry.Reports().ExportExcel(ctx, req)
				ext = ".xlsx"
			default:
				return pkgerrors.New(pkgerrors.ErrValidation, "formato desconocido: use pdf o excel")
			}
			if err != nil {
				return err
			}

			path, err := saveBlob(blob, dest, fmt.Sprintf("reporte-asistencia-%s-%s%s", req.Anio, req.Mes, ext))
			if err != nil {
				return err
			}
			return app.Printer.Success("reportes exportar", "Reporte guardado en "+path)
		}),
	}

	cmd.Flags().StringVar(&req.Mes, "mes", "", "mes (01-12, por defecto el actual)")
	cmd.Flags().StringVar(&req.Anio, "anio", "", "año (por defecto el actual)")
	cmd.Flags().StringVar(&req.Area, "area", "", "área o departamento")
	cmd.Flags().StringVar(&users, "usuarios", "", "DNIs separados por comas")
	cmd.Flags().StringVar(&dest, "salida", "", "archivo o directorio de destino")
	return cmd
}

func newGeneratedReportsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generados",
		Short: "Reportes generados",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar reportes generados",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			reports, err := app.Registry.Reports().ListGenerated(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print("reportes generados listar", reports, output.GeneratedReportsTable(reports))
		}),
	}

	var format, dest string
	download := &cobra.Command{
		Use:   "descargar <id>",
		Short: "Descargar un reporte generado",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f := strings.ToUpper(format)
			if f != domain.FormatPDF && f != domain.FormatExcel {
				return pkgerrors.New(pkgerrors.ErrValidation, "formato desconocido: use PDF o EXCEL")
			}
			blob, err := app.Registry.Reports().DownloadGenerated(ctx, id, f)
			if err != nil {
				return err
			}
			ext := ".pdf"
			if f == domain.FormatExcel {
				ext = ".xlsx"
			}
			path, err := saveBlob(blob, dest, "reporte-"+args[0]+ext)
			if err != nil {
				return err
			}
			return app.Printer.Success("reportes generados descargar", "Reporte guardado en "+path)
		}),
	}
	download.Flags().StringVar(&format, "formato", domain.FormatPDF, "PDF o EXCEL")
	download.Flags().StringVar(&dest, "salida", "", "archivo o directorio de destino")

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un reporte generado",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Registry.Reports().DeleteGenerated(ctx, id); err != nil {
				return err
			}
			return app.Printer.Success("reportes generados eliminar", "Reporte eliminado")
		}),
	}

	cmd.AddCommand(list, download, requireAuth(remove, RoleAdmin, RoleRRHH))
	return cmd
}

func newReportTypesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tipos",
		Short: "Tipos de reporte",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar tipos de reporte",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			types, err := app.Registry.Reports().ListTypes(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print("reportes tipos listar", types, output.ReportTypesTable(types))
		}),
	}

	create := &cobra.Command{
		Use:   "crear <nombre>",
		Short: "Crear un tipo de reporte",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := reportTypeRequest(cmd)
			req.Nombre = args[0]
			if err := app.validate(req); err != nil {
				return err
			}
			t, err := app.Registry.Reports().CreateType(ctx, req)
			if err != nil {
				return err
			}
			return app.Printer.Print("reportes tipos crear", t, output.ReportTypesTable([]domain.ReportType{*t}))
		}),
	}
	reportTypeFlags(create)

	update := &cobra.Command{
		Use:   "actualizar <id> <nombre>",
		Short: "Actualizar un tipo de reporte",
		Args:  cobra.ExactArgs(2),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := reportTypeRequest(cmd)
			req.Nombre = args[1]
			if err := app.validate(req); err != nil {
				return err
			}
			t, err := app.Registry.Reports().UpdateType(ctx, id, req)
			if err != nil {
				return err
			}
			return app.Printer.Print("reportes tipos actualizar", t, output.ReportTypesTable([]domain.ReportType{*t}))
		}),
	}
	reportTypeFlags(update)

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un tipo de reporte",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Registry.Reports().DeleteType(ctx, id); err != nil {
				return err
			}
			return app.Printer.Success("reportes tipos eliminar", "Tipo de reporte eliminado")
		}),
	}

	cmd.AddCommand(
		list,
		requireAuth(create, RoleAdmin),
		requireAuth(update, RoleAdmin),
		requireAuth(remove, RoleAdmin),
	)
	return cmd
}

func reportTypeFlags(cmd *cobra.Command) {
	cmd.Flags().String("descripcion", "", "descripción")
	cmd.Flags().Bool("activo", true, "tipo activo")
}

func reportTypeRequest(cmd *cobra.Command) domain.ReportTypeRequest {
	var req domain.ReportTypeRequest
	req.Descripcion, _ = cmd.Flags().GetString("descripcion")
	req.Activo, _ = cmd.Flags().GetBool("activo")
	return req
}
