package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
)

func newSchedulesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "horarios",
		Aliases: []string{"schedules"},
		Short:   "Horarios de trabajo",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar horarios",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			schedules, err := app.Registry.Schedules().List(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print("horarios listar", schedules, output.SchedulesTable(schedules))
		}),
	}

	get := &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver un horario",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := app.Registry.Schedules().Get(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Print("horarios ver", s, output.SchedulesTable([]domain.Schedule{*s}))
		}),
	}

	create := &cobra.Command{
		Use:   "crear",
		Short: "Crear un horario",
		Long: `Crea un horario. Los días se indican separados por comas (lunes,martes,...)
o con los atajos "laborales", "fin-de-semana" y "todos".`,
		Args: cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := scheduleRequest(cmd)
			if req.Nombre == nil || req.HoraEntrada == nil || req.HoraSalida == nil {
				return requiredFlags("--nombre", "--entrada", "--salida")
			}
			if len(req.DiasSemana) == 0 {
				req.DiasSemana = append([]string(nil), domain.DiasLaborales...)
			}
			if err := app.validate(req); err != nil {
				return err
			}
			s, err := app.Registry.Schedules().Create(ctx, req)
			if err != nil {
				return err
			}
			return app.Printer.Print("horarios crear", s, output.SchedulesTable([]domain.Schedule{*s}))
		}),
	}
	scheduleFlags(create)

	update := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar un horario",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := scheduleRequest(cmd)
			if err := app.validate(req); err != nil {
				return err
			}
			s, err := app.Registry.Schedules().Update(ctx, id, req)
			if err != nil {
				return err
			}
			return app.Printer.Print("horarios actualizar", s, output.SchedulesTable([]domain.Schedule{*s}))
		}),
	}
	scheduleFlags(update)

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un horario",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := app.Registry.Schedules().Delete(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Success("horarios eliminar", messageOr(resp, "Horario eliminado"))
		}),
	}

	cmd.AddCommand(
		list,
		get,
		requireAuth(create, RoleAdmin, RoleRRHH),
		requireAuth(update, RoleAdmin, RoleRRHH),
		requireAuth(remove, RoleAdmin, RoleRRHH),
	)
	return requireAuth(cmd)
}

func scheduleFlags(cmd *cobra.Command) {
	cmd.Flags().String("nombre", "", "nombre del horario")
	cmd.Flags().String("descripcion", "", "descripción")
	cmd.Flags().String("entrada", "", "hora de entrada (HH:MM)")
	cmd.Flags().String("salida", "", "hora de salida (HH:MM)")
	cmd.Flags().String("dias", "", "días de la semana")
	cmd.Flags().Int("tolerancia-entrada", 0, "tolerancia de entrada en minutos")
	cmd.Flags().Int("tolerancia-salida", 0, "tolerancia de salida en minutos")
	cmd.Flags().Bool("activo", true, "horario activo")
}

func scheduleRequest(cmd *cobra.Command) domain.ScheduleRequest {
	days, _ := cmd.Flags().GetString("dias")
	return domain.ScheduleRequest{
		Nombre:            optString(cmd, "nombre"),
		Descripcion:       optString(cmd, "descripcion"),
		HoraEntrada:       optString(cmd, "entrada"),
		HoraSalida:        optString(cmd, "salida"),
		DiasSemana:        parseDays(days),
		ToleranciaEntrada: optInt(cmd, "tolerancia-entrada"),
		ToleranciaSalida:  optInt(cmd, "tolerancia-salida"),
		Activo:            optBool(cmd, "activo"),
	}
}

// parseDays разбирает список дней или одно из сокращений
func parseDays(s string) []string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil
	case "laborales":
		return append([]string(nil), domain.DiasLaborales...)
	case "fin-de-semana":
		return append([]string(nil), domain.FinDeSemana...)
	case "todos":
		return append([]string(nil), domain.DiasSemana...)
	}
	days := splitList(strings.ToLower(s))
	for i, d := range days {
		days[i] = strings.NewReplacer("é", "e", "á", "a").Replace(d)
	}
	return days
}
