package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
)

// dashboardSummary сводка панели: справочники из кэша и метрики периода
type dashboardSummary struct {
	Empleados     int                  `json:"empleados"`
	Cuentas       int                  `json:"cuentas"`
	Departamentos int                  `json:"departamentos"`
	Desde         string               `json:"desde"`
	Hasta         string               `json:"hasta"`
	Totales       domain.MetricsTotals `json:"totales"`
	Registros     int                  `json:"registros"`
}

func (s *dashboardSummary) Table() *output.Table {
	d := output.NewDetails().
		Add("Empleados", itoa(s.Empleados)).
		Add("Cuentas", itoa(s.Cuentas)).
		Add("Departamentos", itoa(s.Departamentos)).
		Add("Periodo", s.Desde+" - "+s.Hasta).
		AddStyled(output.StyleSuccess, "Puntual", itoa(s.Totales.Puntual)).
		AddStyled(output.StyleWarning, "Tardanzas", itoa(s.Totales.Tardanzas)).
		AddStyled(output.StyleError, "Faltas", itoa(s.Totales.Faltas)).
		AddStyled(output.StyleInfo, "Horas extras", fmt.Sprintf("%.2f", s.Totales.HorasExtras)).
		Add("Registros", itoa(s.Registros))
	return d.Table()
}

func newDashboardCmd(app *App) *cobra.Command {
	var r domain.DateRange
	var refresh bool

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"panel", "resumen"},
		Short:   "Resumen general de personal y asistencia",
		Long: `Carga en paralelo el personal, las cuentas y los departamentos y las
métricas de asistencia del periodo (por defecto el mes en curso). Los servicios
que no respondan se muestran en cero.`,
		Args: cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			r = app.defaultRange(r)
			if err := app.validateRange(r); err != nil {
				return err
			}

			app.Cache.FetchAll(ctx, refresh)
			if refresh {
				app.Cache.InvalidateMetrics()
			}
			app.Cache.FetchMetrics(ctx, r.FechaInicio, r.FechaFin)

			summary := &dashboardSummary{
				Empleados:     len(app.Cache.Users()),
				Cuentas:       len(app.Cache.AuthUsers()),
				Departamentos: len(app.Cache.Departments()),
				Desde:         r.FechaInicio,
				Hasta:         r.FechaFin,
				Totales:       app.Cache.Metrics(),
				Registros:     len(app.Cache.AttendanceRecords()),
			}
			return app.Printer.Print("dashboard", summary, summary)
		}),
	}

	rangeFlags(cmd, &r)
	cmd.Flags().BoolVar(&refresh, "refrescar", false, "ignorar la caché")
	return requireAuth(cmd)
}
