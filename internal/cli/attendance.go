package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
)

func newAttendanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "asistencias",
		Aliases: []string{"attendance", "marcaciones"},
		Short:   "Marcaciones de asistencia",
		Long: `Consulta de marcaciones, sincronización con los dispositivos biométricos,
reportes diarios y registro manual de marcaciones.`,
	}

	cmd.AddCommand(
		newAttendanceListCmd(app),
		newAttendanceCountCmd(app),
		newAttendanceRealTimeCmd(app),
		requireAuth(newAttendanceSyncCmd(app), RoleAdmin, RoleRRHH),
		requireAuth(newAttendanceSyncTodayCmd(app), RoleAdmin, RoleRRHH),
		requireAuth(newAttendanceSyncAllCmd(app), RoleAdmin, RoleRRHH),
		requireAuth(newAttendanceClearCmd(app), RoleAdmin),
		newAttendanceDailyCmd(app),
		requireAuth(newAttendanceCalculateCmd(app), RoleAdmin, RoleRRHH),
		requireAuth(newAttendanceRegisterCmd(app), RoleAdmin, RoleRRHH),
		newAttendanceUserDailyCmd(app),
	)
	return requireAuth(cmd)
}

func newAttendanceListCmd(app *App) *cobra.Command {
	var q domain.AttendanceQuery

	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Listar marcaciones",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if err := validateOptionalRange(q.FechaInicio, q.FechaFin); err != nil {
				return err
			}
			page, err := app.Registry.Attendance().List(ctx, q)
			if err != nil {
				return err
			}
			return app.Printer.PrintPage("asistencias listar", page.Data, output.AttendanceTable(page.Data),
				output.NewPagination(page.Page, page.Limit, page.Total))
		}),
	}

	cmd.Flags().StringVar(&q.FechaInicio, "desde", "", "fecha inicial (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.FechaFin, "hasta", "", "fecha final (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.UserID, "dni", "", "filtrar por empleado")
	cmd.Flags().IntVar(&q.DispositivoID, "dispositivo", 0, "filtrar por dispositivo")
	cmd.Flags().IntVar(&q.Limit, "limite", 0, "registros por página")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "desplazamiento")
	return cmd
}

func newAttendanceCountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "contar",
		Short: "Total de marcaciones registradas",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			count, err := app.Registry.Attendance().Count(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print("asistencias contar", count, output.NewDetails().Add("Total", itoa(count.Total)))
		}),
	}
}

func newAttendanceRealTimeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tiempo-real <dispositivo>",
		Short: "Marcaciones leídas directamente del dispositivo",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			records, err := app.Registry.Attendance().RealTime(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Print("asistencias tiempo-real", records, output.AttendanceTable(records))
		}),
	}
}

func newAttendanceSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sincronizar <dispositivo>",
		Short: "Descargar las marcaciones de un dispositivo",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := app.Registry.Attendance().SyncDevice(ctx, id)
			if err != nil {
				return err
			}
			app.Cache.InvalidateMetrics()
			return app.Printer.Print("asistencias sincronizar", resp, syncDetails(resp))
		}),
	}
}

func newAttendanceSyncTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sincronizar-hoy <dispositivo>",
		Short: "Descargar solo las marcaciones de hoy",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := app.Registry.Attendance().SyncToday(ctx, id)
			if err != nil {
				return err
			}
			app.Cache.InvalidateMetrics()
			return app.Printer.Print("asistencias sincronizar-hoy", resp, syncDetails(resp))
		}),
	}
}

func syncDetails(resp *domain.SyncAttendanceResponse) *output.Details {
	style := output.StyleSuccess
	if !resp.Success {
		style = output.StyleError
	}
	return output.NewDetails().
		AddStyled(style, "Resultado", firstNonEmpty(resp.Message, output.YesNo(resp.Success))).
		Add("Dispositivo", itoa(resp.DispositivoID)).
		Add("Nuevos", itoa(resp.RegistrosNuevos)).
		Add("Totales", itoa(resp.RegistrosTotales))
}

func newAttendanceSyncAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sincronizar-todos",
		Short: "Descargar las marcaciones de todos los dispositivos",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			resp, err := app.Registry.Attendance().SyncAll(ctx)
			if err != nil {
				return err
			}
			app.Cache.InvalidateMetrics()
			if err := app.Printer.Print("asistencias sincronizar-todos", resp, output.SyncResultsTable(resp)); err != nil {
				return err
			}
			app.Printer.Info(fmt.Sprintf("Dispositivos procesados: %d", resp.TotalDispositivos))
			return nil
		}),
	}
}

func newAttendanceClearCmd(app *App) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "limpiar <dispositivo>",
		Short: "Borrar las marcaciones almacenadas en el dispositivo",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !confirm {
				return confirmationRequired("asistencias limpiar")
			}
			resp, err := app.Registry.Attendance().ClearDevice(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Success("asistencias limpiar", messageOr(resp, "Marcaciones del dispositivo eliminadas"))
		}),
	}
	cmd.Flags().BoolVar(&confirm, "confirmar", false, "confirmar el borrado")
	return cmd
}

func newAttendanceDailyCmd(app *App) *cobra.Command {
	var r domain.DateRange

	cmd := &cobra.Command{
		Use:   "reporte-diario",
		Short: "Reporte diario de asistencia",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if err := app.validateRange(r); err != nil {
				return err
			}
			rows, err := app.Registry.Attendance().DailyReport(ctx, r)
			if err != nil {
				return err
			}
			return app.Printer.Print("asistencias reporte-diario", rows, mapsTable(rows))
		}),
	}
	rangeFlags(cmd, &r)
	return cmd
}

func newAttendanceCalculateCmd(app *App) *cobra.Command {
	var r domain.DateRange

	cmd := &cobra.Command{
		Use:   "calcular",
		Short: "Recalcular la asistencia del periodo",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if err := app.validateRange(r); err != nil {
				return err
			}
			resp, err := app.Registry.Attendance().Calculate(ctx, r)
			if err != nil {
				return err
			}
			app.Cache.InvalidateMetrics()
			return app.Printer.Success("asistencias calcular", messageOr(resp, "Asistencia calculada"))
		}),
	}
	rangeFlags(cmd, &r)
	return cmd
}

func newAttendanceRegisterCmd(app *App) *cobra.Command {
	var req domain.RegisterAttendanceRequest

	cmd := &cobra.Command{
		Use:   "registrar",
		Short: "Registrar una marcación manual",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if req.FechaHora == "" {
				req.FechaHora = app.now().Format("2006-01-02T15:04:05")
			}
			if err := app.validate(req); err != nil {
				return err
			}
			resp, err := app.Registry.Attendance().Register(ctx, req)
			if err != nil {
				return err
			}
			return app.Printer.Success("asistencias registrar", messageOr(resp, "Marcación registrada"))
		}),
	}

	cmd.Flags().StringVar(&req.EmpleadoID, "dni", "", "DNI del empleado")
	cmd.Flags().StringVar(&req.Tipo, "tipo", "", "tipo de marcación (entrada, salida)")
	cmd.Flags().StringVar(&req.FechaHora, "fecha-hora", "", "fecha y hora (por defecto ahora)")
	return cmd
}

func newAttendanceUserDailyCmd(app *App) *cobra.Command {
	var r domain.DateRange

	cmd := &cobra.Command{
		Use:   "usuario-diario <dni>",
		Short: "Reporte diario de un empleado",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if err := app.validateRange(r); err != nil {
				return err
			}
			report, err := app.Registry.Attendance().UserDaily(ctx, args[0], r)
			if err != nil {
				return err
			}
			if app.Printer.Structured() {
				return app.Printer.Print("asistencias usuario-diario", report, nil)
			}
			if len(report.Resumen) > 0 {
				if err := app.Printer.Print("asistencias usuario-diario", report.Resumen, mapDetails(report.Resumen)); err != nil {
					return err
				}
			}
			return app.Printer.Print("asistencias usuario-diario", report.Detalle, mapsTable(report.Detalle))
		}),
	}
	rangeFlags(cmd, &r)
	return cmd
}

func rangeFlags(cmd *cobra.Command, r *domain.DateRange) {
	cmd.Flags().StringVar(&r.FechaInicio, "desde", "", "fecha inicial (YYYY-MM-DD)")
	cmd.Flags().StringVar(&r.FechaFin, "hasta", "", "fecha final (YYYY-MM-DD)")
}

// validateRange проверяет обе даты и их порядок
func (a *App) validateRange(r domain.DateRange) error {
	if err := a.validate(r); err != nil {
		return err
	}
	return validateOptionalRange(r.FechaInicio, r.FechaFin)
}
