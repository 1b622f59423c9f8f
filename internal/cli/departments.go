package cli

import (
	"context"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
)

func newDepartmentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "departamentos",
		Aliases: []string{"departments", "areas"},
		Short:   "Departamentos y jefes de área",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar departamentos",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			departments, err := app.Registry.Departments().List(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print("departamentos listar", departments, output.DepartmentsTable(departments))
		}),
	}

	get := &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver un departamento",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := app.Registry.Departments().Get(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Print("departamentos ver", d, output.DepartmentsTable([]domain.Department{*d}))
		}),
	}

	create := &cobra.Command{
		Use:   "crear <nombre>",
		Short: "Crear un departamento",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := domain.CreateDepartmentRequest{Nombre: args[0]}
			req.Descripcion, _ = cmd.Flags().GetString("descripcion")
			if err := app.validate(req); err != nil {
				return err
			}
			d, err := app.Registry.Departments().Create(ctx, req)
			if err != nil {
				return err
			}
			app.Cache.InvalidateDepartments()
			return app.Printer.Print("departamentos crear", d, output.DepartmentsTable([]domain.Department{*d}))
		}),
	}
	create.Flags().String("descripcion", "", "descripción")

	update := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar un departamento",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := domain.UpdateDepartmentRequest{
				Nombre:      optString(cmd, "nombre"),
				Descripcion: optString(cmd, "descripcion"),
				JefeID:      optString(cmd, "jefe"),
			}
			d, err := app.Registry.Departments().Update(ctx, id, req)
			if err != nil {
				return err
			}
			app.Cache.InvalidateDepartments()
			return app.Printer.Print("departamentos actualizar", d, output.DepartmentsTable([]domain.Department{*d}))
		}),
	}
	update.Flags().String("nombre", "", "nombre")
	update.Flags().String("descripcion", "", "descripción")
	update.Flags().String("jefe", "", "DNI del jefe de área")

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un departamento",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Registry.Departments().Delete(ctx, id); err != nil {
				return err
			}
			app.Cache.InvalidateDepartments()
			return app.Printer.Success("departamentos eliminar", "Departamento eliminado")
		}),
	}

	boss := &cobra.Command{
		Use:   "jefe <id> <dni>",
		Short: "Asignar el jefe de un departamento",
		Args:  cobra.ExactArgs(2),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := app.Registry.Departments().AssignBoss(ctx, id, args[1])
			if err != nil {
				return err
			}
			app.Cache.InvalidateDepartments()
			return app.Printer.Print("departamentos jefe", d, output.DepartmentsTable([]domain.Department{*d}))
		}),
	}

	byUser := &cobra.Command{
		Use:   "de <dni>",
		Short: "Departamento al que pertenece un empleado",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			d, err := app.Registry.Departments().ByUserDNI(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Print("departamentos de", d, output.DepartmentsTable([]domain.Department{*d}))
		}),
	}

	members := &cobra.Command{
		Use:   "personal <id>",
		Short: "Personal de un departamento",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			users, err := app.Registry.Departments().Users(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Print("departamentos personal", users, output.UsersTable(users))
		}),
	}

	cmd.AddCommand(
		list,
		get,
		requireAuth(create, RoleAdmin, RoleRRHH),
		requireAuth(update, RoleAdmin, RoleRRHH),
		requireAuth(remove, RoleAdmin),
		requireAuth(boss, RoleAdmin, RoleRRHH),
		byUser,
		members,
	)
	return requireAuth(cmd)
}
