package cli

import (
	"context"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/client"
	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
)

// newStatusesCmd справочник статусов; у папелет и инцидентов он одинаковый
func newStatusesCmd(app *App, parent string, statuses func() *client.StatusClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estados",
		Short: "Catálogo de estados",
	}
	name := parent + " estados"

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar estados",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			items, err := statuses().List(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print(name+" listar", items, output.StatusesTable(items))
		}),
	}

	get := &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver un estado",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			s, err := statuses().Get(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Print(name+" ver", s, output.StatusesTable([]domain.Status{*s}))
		}),
	}

	create := &cobra.Command{
		Use:   "crear <nombre>",
		Short: "Crear un estado",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := statusRequest(cmd)
			req.Nombre = &args[0]
			s, err := statuses().Create(ctx, req)
			if err != nil {
				return err
			}
			return app.Printer.Print(name+" crear", s, output.StatusesTable([]domain.Status{*s}))
		}),
	}
	statusFlags(create, false)

	update := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar un estado",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			s, err := statuses().Update(ctx, args[0], statusRequest(cmd))
			if err != nil {
				return err
			}
			return app.Printer.Print(name+" actualizar", s, output.StatusesTable([]domain.Status{*s}))
		}),
	}
	statusFlags(update, true)

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un estado",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			resp, err := statuses().Delete(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Success(name+" eliminar", messageOr(resp, "Estado eliminado"))
		}),
	}

	cmd.AddCommand(
		list,
		get,
		requireAuth(create, RoleAdmin, RoleRRHH),
		requireAuth(update, RoleAdmin, RoleRRHH),
		requireAuth(remove, RoleAdmin, RoleRRHH),
	)
	return cmd
}

func statusFlags(cmd *cobra.Command, withName bool) {
	if withName {
		cmd.Flags().String("nombre", "", "nombre")
	}
	cmd.Flags().String("codigo", "", "código, por ejemplo APROBADO")
	cmd.Flags().String("descripcion", "", "descripción")
}

func statusRequest(cmd *cobra.Command) domain.StatusRequest {
	return domain.StatusRequest{
		Nombre:      optString(cmd, "nombre"),
		Codigo:      optString(cmd, "codigo"),
		Descripcion: optString(cmd, "descripcion"),
	}
}
