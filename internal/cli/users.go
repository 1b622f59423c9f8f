package cli

import (
	"context"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "usuarios",
		Aliases: []string{"users", "empleados"},
		Short:   "Personal registrado en el sistema biométrico",
	}

	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersGetCmd(app),
		newUsersFindCmd(app),
		requireAuth(newUsersCreateCmd(app), RoleAdmin, RoleRRHH),
		requireAuth(newUsersUpdateCmd(app), RoleAdmin, RoleRRHH),
		requireAuth(newUsersDeleteCmd(app), RoleAdmin, RoleRRHH),
		requireAuth(newUsersSyncCmd(app), RoleAdmin, RoleRRHH),
		requireAuth(newUsersImportCmd(app), RoleAdmin, RoleRRHH),
	)
	return requireAuth(cmd)
}

func newUsersListCmd(app *App) *cobra.Command {
	var q domain.UserQuery

	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Listar personal",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			q.Activo = optBool(cmd, "activo")
			page, err := app.Registry.Users().List(ctx, q)
			if err != nil {
				return err
			}
			return app.Printer.PrintPage("usuarios listar", page.Data, output.UsersTable(page.Data),
				output.NewPagination(page.Page, page.Limit, page.Total))
		}),
	}

	cmd.Flags().IntVar(&q.DispositivoID, "dispositivo", 0, "filtrar por dispositivo")
	cmd.Flags().StringVar(&q.Departamento, "departamento", "", "filtrar por departamento")
	cmd.Flags().Bool("activo", true, "filtrar por estado")
	cmd.Flags().IntVar(&q.Limit, "limite", 0, "registros por página")
	cmd.Flags().IntVar(&q.Offset, "desde", 0, "desplazamiento")
	return cmd
}

func newUsersGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver un empleado por ID interno",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			user, err := app.Registry.Users().Get(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Print("usuarios ver", user, output.UsersTable([]domain.BiometricUser{*user}))
		}),
	}
}

func newUsersFindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "buscar <dni>",
		Short: "Buscar un empleado por DNI",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			user, err := app.Registry.Users().GetByUserID(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Print("usuarios buscar", user, output.UsersTable([]domain.BiometricUser{*user}))
		}),
	}
}

func newUsersCreateCmd(app *App) *cobra.Command {
	var req domain.CreateUserRequest
	var admin bool

	cmd := &cobra.Command{
		Use:   "crear",
		Short: "Registrar un empleado",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if admin {
				req.Privilegio = domain.PrivilegeAdmin
			}
			if err := app.validate(req); err != nil {
				return err
			}
			user, err := app.Registry.Users().Create(ctx, req)
			if err != nil {
				return err
			}
			app.Cache.InvalidateUsers()
			return app.Printer.Print("usuarios crear", user, output.UsersTable([]domain.BiometricUser{*user}))
		}),
	}

	cmd.Flags().StringVar(&req.UserID, "dni", "", "DNI del empleado")
	cmd.Flags().StringVar(&req.Nombre, "nombre", "", "nombre completo")
	cmd.Flags().IntVar(&req.DispositivoID, "dispositivo", 0, "dispositivo de registro")
	cmd.Flags().BoolVar(&admin, "admin", false, "privilegio de administrador en el dispositivo")
	cmd.Flags().StringVar(&req.Password, "password", "", "contraseña en el dispositivo")
	cmd.Flags().StringVar(&req.Email, "email", "", "correo electrónico")
	cmd.Flags().StringVar(&req.Telefono, "telefono", "", "teléfono")
	cmd.Flags().StringVar(&req.Departamento, "departamento", "", "departamento")
	cmd.Flags().StringVar(&req.Cargo, "cargo", "", "cargo")
	return cmd
}

func newUsersUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar un empleado",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := domain.UpdateUserRequest{
				UserID:        optString(cmd, "dni"),
				Nombre:        optString(cmd, "nombre"),
				Password:      optString(cmd, "password"),
				DispositivoID: optInt(cmd, "dispositivo"),
				Email:         optString(cmd, "email"),
				Telefono:      optString(cmd, "telefono"),
				Departamento:  optString(cmd, "departamento"),
				Cargo:         optString(cmd, "cargo"),
			}
			if admin := optBool(cmd, "admin"); admin != nil {
				p := domain.PrivilegeUser
				if *admin {
					p = domain.PrivilegeAdmin
				}
				req.Privilegio = &p
			}

			user, err := app.Registry.Users().Update(ctx, id, req)
			if err != nil {
				return err
			}
			app.Cache.InvalidateUsers()
			return app.Printer.Print("usuarios actualizar", user, output.UsersTable([]domain.BiometricUser{*user}))
		}),
	}

	cmd.Flags().String("dni", "", "DNI del empleado")
	cmd.Flags().String("nombre", "", "nombre completo")
	cmd.Flags().Int("dispositivo", 0, "dispositivo de registro")
	cmd.Flags().Bool("admin", false, "privilegio de administrador en el dispositivo")
	cmd.Flags().String("password", "", "contraseña en el dispositivo")
	cmd.Flags().String("email", "", "correo electrónico")
	cmd.Flags().String("telefono", "", "teléfono")
	cmd.Flags().String("departamento", "", "departamento")
	cmd.Flags().String("cargo", "", "cargo")
	return cmd
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un empleado",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := app.Registry.Users().Delete(ctx, id)
			if err != nil {
				return err
			}
			app.Cache.InvalidateUsers()
			return app.Printer.Success("usuarios eliminar", messageOr(resp, "Empleado eliminado"))
		}),
	}
}

func newUsersSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sincronizar <id>",
		Short: "Enviar un empleado a su dispositivo",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := app.Registry.Users().SyncToDevice(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Success("usuarios sincronizar", messageOr(resp, "Empleado sincronizado con el dispositivo"))
		}),
	}
}

func newUsersImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "importar <dispositivo>",
		Short: "Importar el personal registrado en un dispositivo",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := app.Registry.Users().SyncFromDevice(ctx, id)
			if err != nil {
				return err
			}
			app.Cache.InvalidateUsers()

			d := output.NewDetails().
				AddStyled(output.StyleSuccess, "Resultado", firstNonEmpty(resp.Message, "Importación completada")).
				Add("Nuevos", itoa(resp.UsuariosNuevos)).
				Add("Actualizados", itoa(resp.UsuariosActualizados))
			return app.Printer.Print("usuarios importar", resp, d)
		}),
	}
}
