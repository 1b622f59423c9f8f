package cli

import (
	"context"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/client"
	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
)

func newIncidentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "incidencias",
		Aliases: []string{"incidents"},
		Short:   "Incidencias: licencias, descansos médicos y similares",
	}

	cmd.AddCommand(
		newIncidentsListCmd(app),
		newIncidentsGetCmd(app),
		newIncidentsCreateCmd(app),
		newIncidentsUpdateCmd(app),
		requireAuth(newIncidentsDeleteCmd(app), RoleAdmin, RoleRRHH),
		requireAuth(newIncidentsApproveCmd(app), RoleAdmin, RoleRRHH, RoleJefe, RoleSupervisor),
		requireAuth(newIncidentsRejectCmd(app), RoleAdmin, RoleRRHH, RoleJefe, RoleSupervisor),
		newIncidentsDocumentCmd(app),
		newIncidentTypesCmd(app),
		newStatusesCmd(app, "incidencias", func() *client.StatusClient { return app.Registry.Incidents().Statuses() }),
	)
	return requireAuth(cmd)
}

func incidentDetails(inc *domain.Incident) *output.Details {
	d := output.NewDetails().
		Add("ID", inc.ID).
		Add("Empleado", inc.EmpleadoID)
	if inc.TipoIncidencia != nil {
		d.Add("Tipo", inc.TipoIncidencia.Nombre)
	} else {
		d.Add("Tipo", inc.TipoIncidenciaID)
	}
	status := inc.EstadoID
	if inc.Estado != nil {
		status = inc.Estado.Nombre
	}
	d.AddStyled(output.StatusStyle(status), "Estado", status).
		Add("Desde", inc.FechaInicio).
		Add("Hasta", inc.FechaFin).
		Add("Descripción", inc.Descripcion).
		Add("Documento", inc.URLDocumento)
	if inc.AprobadoPor != nil {
		d.Add("Aprobado por", *inc.AprobadoPor)
	}
	if inc.MotivoRechazo != nil {
		d.AddStyled(output.StyleError, "Motivo de rechazo", *inc.MotivoRechazo)
	}
	return d
}

func newIncidentsListCmd(app *App) *cobra.Command {
	var q domain.IncidentQuery

	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Listar incidencias",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			list, err := app.Registry.Incidents().List(ctx, q)
			if err != nil {
				return err
			}
			p := list.Pagination
			return app.Printer.PrintPage("incidencias listar", list.Data, output.IncidentsTable(list.Data),
				output.NewPagination(p.Page, p.Limit, p.Total))
		}),
	}

	cmd.Flags().StringVar(&q.EmpleadoID, "empleado", "", "DNI del empleado")
	cmd.Flags().StringVar(&q.TipoIncidenciaID, "tipo", "", "ID del tipo de incidencia")
	cmd.Flags().StringVar(&q.EstadoID, "estado", "", "ID del estado")
	cmd.Flags().IntVar(&q.Page, "pagina", 1, "página")
	cmd.Flags().IntVar(&q.Limit, "limite", 10, "registros por página")
	return cmd
}

func newIncidentsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver una incidencia",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			inc, err := app.Registry.Incidents().Get(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Print("incidencias ver", inc, incidentDetails(inc))
		}),
	}
}

func newIncidentsCreateCmd(app *App) *cobra.Command {
	var req domain.CreateIncidentRequest
	var documento string

	cmd := &cobra.Command{
		Use:   "crear",
		Short: "Registrar una incidencia con su documento sustentatorio",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if err := app.validate(req); err != nil {
				return err
			}
			if err := validateOptionalRange(req.FechaInicio, req.FechaFin); err != nil {
				return err
			}
			if documento == "" {
				return requiredFlags("--documento")
			}
			name, data, err := readFile(documento)
			if err != nil {
				return err
			}
			req.Documento = domain.Attachment{Filename: name, Content: data}

			inc, err := app.Registry.Incidents().Create(ctx, req)
			if err != nil {
				return err
			}
			return app.Printer.Print("incidencias crear", inc, incidentDetails(inc))
		}),
	}

	cmd.Flags().StringVar(&req.EmpleadoID, "empleado", "", "DNI del empleado")
	cmd.Flags().StringVar(&req.TipoIncidenciaID, "tipo", "", "ID del tipo de incidencia")
	cmd.Flags().StringVar(&req.FechaInicio, "desde", "", "fecha inicial (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.FechaFin, "hasta", "", "fecha final (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Descripcion, "descripcion", "", "descripción")
	cmd.Flags().StringVar(&req.EstadoID, "estado", "", "ID del estado inicial")
	cmd.Flags().StringVar(&documento, "documento", "", "archivo del documento sustentatorio")
	return cmd
}

func newIncidentsUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar una incidencia",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := domain.UpdateIncidentRequest{
				EmpleadoID:       optString(cmd, "empleado"),
				TipoIncidenciaID: optString(cmd, "tipo"),
				FechaInicio:      optString(cmd, "desde"),
				FechaFin:         optString(cmd, "hasta"),
				Descripcion:      optString(cmd, "descripcion"),
				EstadoID:         optString(cmd, "estado"),
			}
			if path := optString(cmd, "documento"); path != nil {
				name, data, err := readFile(*path)
				if err != nil {
					return err
				}
				req.Documento = &domain.Attachment{Filename: name, Content: data}
			}

			inc, err := app.Registry.Incidents().Update(ctx, args[0], req)
			if err != nil {
				return err
			}
			return app.Printer.Print("incidencias actualizar", inc, incidentDetails(inc))
		}),
	}

	cmd.Flags().String("empleado", "", "DNI del empleado")
	cmd.Flags().String("tipo", "", "ID del tipo de incidencia")
	cmd.Flags().String("desde", "", "fecha inicial (YYYY-MM-DD)")
	cmd.Flags().String("hasta", "", "fecha final (YYYY-MM-DD)")
	cmd.Flags().String("descripcion", "", "descripción")
	cmd.Flags().String("estado", "", "ID del estado")
	cmd.Flags().String("documento", "", "reemplazar el documento")
	return cmd
}

func newIncidentsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar una incidencia",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			resp, err := app.Registry.Incidents().Delete(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Success("incidencias eliminar", messageOr(resp, "Incidencia eliminada"))
		}),
	}
}

func newIncidentsApproveCmd(app *App) *cobra.Command {
	var approver string

	cmd := &cobra.Command{
		Use:   "aprobar <id>",
		Short: "Aprobar una incidencia",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := domain.ApproveIncidentRequest{AprobadoPor: approver}
			if req.AprobadoPor == "" {
				if user := app.Session.User(); user != nil {
					req.AprobadoPor = firstNonEmpty(user.ID, user.DNI)
				}
			}
			if err := app.validate(req); err != nil {
				return err
			}
			inc, err := app.Registry.Incidents().Approve(ctx, args[0], req)
			if err != nil {
				return err
			}
			return app.Printer.Print("incidencias aprobar", inc, incidentDetails(inc))
		}),
	}
	cmd.Flags().StringVar(&approver, "aprobado-por", "", "ID de quien aprueba (por defecto el usuario actual)")
	return cmd
}

func newIncidentsRejectCmd(app *App) *cobra.Command {
	var req domain.RejectIncidentRequest

	cmd := &cobra.Command{
		Use:   "rechazar <id>",
		Short: "Rechazar una incidencia",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if err := app.validate(req); err != nil {
				return err
			}
			inc, err := app.Registry.Incidents().Reject(ctx, args[0], req)
			if err != nil {
				return err
			}
			return app.Printer.Print("incidencias rechazar", inc, incidentDetails(inc))
		}),
	}
	cmd.Flags().StringVar(&req.MotivoRechazo, "motivo", "", "motivo del rechazo")
	return cmd
}

func newIncidentsDocumentCmd(app *App) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "documento <id>",
		Short: "Descargar el documento de una incidencia",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			blob, err := app.Registry.Incidents().Document(ctx, args[0])
			if err != nil {
				return err
			}
			path, err := saveBlob(blob, dest, "incidencia-"+args[0])
			if err != nil {
				return err
			}
			return app.Printer.Success("incidencias documento", "Documento guardado en "+path)
		}),
	}
	cmd.Flags().StringVar(&dest, "salida", "", "archivo o directorio de destino")
	return cmd
}

func newIncidentTypesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tipos",
		Short: "Tipos de incidencia",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar tipos de incidencia",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			types, err := app.Registry.Incidents().ListTypes(ctx, optBool(cmd, "activo"))
			if err != nil {
				return err
			}
			return app.Printer.Print("incidencias tipos listar", types, output.IncidentTypesTable(types))
		}),
	}
	list.Flags().Bool("activo", true, "filtrar por estado")

	get := &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver un tipo de incidencia",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			t, err := app.Registry.Incidents().GetType(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Print("incidencias tipos ver", t, output.IncidentTypesTable([]domain.IncidentType{*t}))
		}),
	}

	create := &cobra.Command{
		Use:   "crear",
		Short: "Crear un tipo de incidencia",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := incidentTypeRequest(cmd)
			if req.Nombre == nil || req.Codigo == nil {
				return requiredFlags("--nombre", "--codigo")
			}
			t, err := app.Registry.Incidents().CreateType(ctx, req)
			if err != nil {
				return err
			}
			return app.Printer.Print("incidencias tipos crear", t, output.IncidentTypesTable([]domain.IncidentType{*t}))
		}),
	}
	incidentTypeFlags(create)

	update := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar un tipo de incidencia",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			t, err := app.Registry.Incidents().UpdateType(ctx, args[0], incidentTypeRequest(cmd))
			if err != nil {
				return err
			}
			return app.Printer.Print("incidencias tipos actualizar", t, output.IncidentTypesTable([]domain.IncidentType{*t}))
		}),
	}
	incidentTypeFlags(update)

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un tipo de incidencia",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			resp, err := app.Registry.Incidents().DeleteType(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Success("incidencias tipos eliminar", messageOr(resp, "Tipo de incidencia eliminado"))
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

func incidentTypeFlags(cmd *cobra.Command) {
	cmd.Flags().String("nombre", "", "nombre")
	cmd.Flags().String("codigo", "", "código")
	cmd.Flags().Bool("aprobacion", false, "requiere aprobación")
	cmd.Flags().Bool("documento", false, "requiere documento")
	cmd.Flags().Bool("descuenta", false, "descuenta del salario")
	cmd.Flags().Bool("activo", true, "tipo activo")
	cmd.Flags().Int("max-dias", 0, "máximo de días al año")
	cmd.Flags().Int("max-solicitudes", 0, "máximo de solicitudes al año")
	cmd.Flags().Bool("dias-calendario", false, "cuenta días calendario")
}

func incidentTypeRequest(cmd *cobra.Command) domain.IncidentTypeRequest {
	return domain.IncidentTypeRequest{
		Nombre:              optString(cmd, "nombre"),
		Codigo:              optString(cmd, "codigo"),
		RequiereAprobacion:  optBool(cmd, "aprobacion"),
		RequiereDocumento:   optBool(cmd, "documento"),
		DescuentaSalario:    optBool(cmd, "descuenta"),
		Activo:              optBool(cmd, "activo"),
		MaxDiasAnual:        optInt(cmd, "max-dias"),
		MaxSolicitudesAnual: optInt(cmd, "max-solicitudes"),
		TomaDiasCalendario:  optBool(cmd, "dias-calendario"),
	}
}
