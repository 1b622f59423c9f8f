package cli

import (
	"context"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
	pkgerrors "RRHHPlatform/pkg/errors"
)

func newRolesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Roles y permisos del servicio de autenticación",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar roles",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			roles, err := app.Registry.Roles().ListRoles(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print("roles listar", roles, output.RolesTable(roles))
		}),
	}

	get := &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver un rol",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			role, err := app.Registry.Roles().GetRole(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Print("roles ver", role, output.RolesTable([]domain.Role{*role}))
		}),
	}

	create := &cobra.Command{
		Use:   "crear",
		Short: "Crear un rol",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := roleRequest(cmd)
			if req.Nombre == "" {
				return pkgerrors.New(pkgerrors.ErrValidation, "el nombre del rol es requerido")
			}
			role, err := app.Registry.Roles().CreateRole(ctx, req)
			if err != nil {
				return err
			}
			return app.Printer.Print("roles crear", role, output.RolesTable([]domain.Role{*role}))
		}),
	}
	roleFlags(create)

	update := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar un rol",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			role, err := app.Registry.Roles().UpdateRole(ctx, args[0], roleRequest(cmd))
			if err != nil {
				return err
			}
			return app.Printer.Print("roles actualizar", role, output.RolesTable([]domain.Role{*role}))
		}),
	}
	roleFlags(update)

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un rol",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			resp, err := app.Registry.Roles().DeleteRole(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Success("roles eliminar", messageOr(resp, "Rol eliminado"))
		}),
	}

	cmd.AddCommand(list, get, create, update, remove, newPermissionsCmd(app))
	return requireAuth(cmd, RoleAdmin)
}

func roleFlags(cmd *cobra.Command) {
	cmd.Flags().String("nombre", "", "nombre del rol")
	cmd.Flags().String("descripcion", "", "descripción")
	cmd.Flags().String("permisos", "", "IDs de permisos separados por comas")
}

func roleRequest(cmd *cobra.Command) domain.RoleRequest {
	var req domain.RoleRequest
	req.Nombre, _ = cmd.Flags().GetString("nombre")
	req.Descripcion, _ = cmd.Flags().GetString("descripcion")
	perms, _ := cmd.Flags().GetString("permisos")
	req.Permisos = splitList(perms)
	return req
}

func newPermissionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permisos",
		Short: "Permisos asignables a roles y cuentas",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar permisos",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			perms, err := app.Registry.Roles().ListPermissions(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print("roles permisos listar", perms, output.PermissionsTable(perms))
		}),
	}

	get := &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver un permiso",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			perm, err := app.Registry.Roles().GetPermission(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Print("roles permisos ver", perm, output.PermissionsTable([]domain.Permission{*perm}))
		}),
	}

	create := &cobra.Command{
		Use:   "crear <nombre>",
		Short: "Crear un permiso",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			desc, _ := cmd.Flags().GetString("descripcion")
			perm, err := app.Registry.Roles().CreatePermission(ctx, domain.PermissionRequest{Nombre: args[0], Descripcion: desc})
			if err != nil {
				return err
			}
			return app.Printer.Print("roles permisos crear", perm, output.PermissionsTable([]domain.Permission{*perm}))
		}),
	}
	create.Flags().String("descripcion", "", "descripción")

	update := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar un permiso",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			var req domain.PermissionRequest
			req.Nombre, _ = cmd.Flags().GetString("nombre")
			req.Descripcion, _ = cmd.Flags().GetString("descripcion")
			perm, err := app.Registry.Roles().UpdatePermission(ctx, args[0], req)
			if err != nil {
				return err
			}
			return app.Printer.Print("roles permisos actualizar", perm, output.PermissionsTable([]domain.Permission{*perm}))
		}),
	}
	update.Flags().String("nombre", "", "nombre del permiso")
	update.Flags().String("descripcion", "", "descripción")

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un permiso",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			resp, err := app.Registry.Roles().DeletePermission(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Success("roles permisos eliminar", messageOr(resp, "Permiso eliminado"))
		}),
	}

	cmd.AddCommand(list, get, create, update, remove)
	return cmd
}
