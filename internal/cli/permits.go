package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/client"
	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
	"RRHHPlatform/internal/store"
	"RRHHPlatform/internal/workflow"
	pkgerrors "RRHHPlatform/pkg/errors"
	"RRHHPlatform/pkg/logger"
)

func newPermitsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "papeletas",
		Aliases: []string{"permisos", "permits"},
		Short:   "Papeletas de salida",
		Long: `Papeletas de salida: registro, firmas según el tipo de solicitante,
retorno del empleado, PDF y catálogos de tipos y estados.`,
	}

	cmd.AddCommand(
		newPermitsListCmd(app),
		newPermitsGetCmd(app),
		newPermitsCreateCmd(app),
		newPermitsUpdateCmd(app),
		requireAuth(newPermitsDeleteCmd(app), RoleAdmin, RoleRRHH),
		requireAuth(newPermitsStatusCmd(app), RoleAdmin, RoleRRHH),
		newPermitsSignCmd(app),
		newPermitsVerifyCmd(app),
		newPermitsPDFCmd(app),
		newPermitsUploadCmd(app),
		newPermitsReturnCmd(app),
		newPermitTypesCmd(app),
		newStatusesCmd(app, "papeletas", func() *client.StatusClient { return app.Registry.Permits().Statuses() }),
		newPermitsNotifyCmd(app),
	)
	return requireAuth(cmd)
}

func newPermitsListCmd(app *App) *cobra.Command {
	var q domain.PermitQuery

	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Listar papeletas",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if err := validateOptionalRange(q.FechaDesde, q.FechaHasta); err != nil {
				return err
			}
			list, err := app.Registry.Permits().List(ctx, q)
			if err != nil {
				return err
			}
			p := list.Pagination
			return app.Printer.PrintPage("papeletas listar", list.Data, output.PermitsTable(list.Data),
				output.NewPagination(p.Page, p.Limit, p.Total))
		}),
	}

	cmd.Flags().StringVar(&q.EmpleadoID, "empleado", "", "DNI del empleado")
	cmd.Flags().StringVar(&q.TipoPermisoID, "tipo", "", "ID del tipo de papeleta")
	cmd.Flags().StringVar(&q.EstadoID, "estado", "", "ID del estado")
	cmd.Flags().StringVar(&q.FechaDesde, "desde", "", "fecha inicial (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.FechaHasta, "hasta", "", "fecha final (YYYY-MM-DD)")
	cmd.Flags().IntVar(&q.Page, "pagina", 1, "página")
	cmd.Flags().IntVar(&q.Limit, "limite", 10, "registros por página")
	return cmd
}

// permitView папелета вместе с подписями, которых не хватает для согласования
type permitView struct {
	*domain.Permit
	Pendientes []domain.SignerRole `json:"firmas_pendientes"`
}

func newPermitView(p *domain.Permit) *permitView {
	cfg := workflow.ResolveSignatureConfig(p.Solicitante)
	return &permitView{Permit: p, Pendientes: cfg.Pending(p)}
}

func (v *permitView) Table() *output.Table {
	d := output.PermitDetails(v.Permit)
	if len(v.Pendientes) == 0 {
		d.AddStyled(output.StyleSuccess, "Firmas pendientes", "ninguna")
	} else {
		names := make([]string, len(v.Pendientes))
		for i, r := range v.Pendientes {
			names[i] = string(r)
		}
		d.AddStyled(output.StyleWarning, "Firmas pendientes", strings.Join(names, ", "))
	}
	return d.Table()
}

func newPermitsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver una papeleta y sus firmas pendientes",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			p, err := app.Registry.Permits().Get(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Print("papeletas ver", newPermitView(p), nil)
		}),
	}
}

func newPermitsCreateCmd(app *App) *cobra.Command {
	var req domain.CreatePermitRequest
	var institucion string

	cmd := &cobra.Command{
		Use:   "crear",
		Short: "Registrar una papeleta",
		Long: `Registra una papeleta personal o, con --institucion, una comisión de servicio.
Se rechaza si el empleado ya tiene una papeleta pendiente o sin retorno registrado.`,
		Args: cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if req.EmpleadoID == "" {
				if user := app.Session.User(); user != nil {
					req.EmpleadoID = user.DNI
				}
			}
			if req.FechaHoraInicio == "" {
				req.FechaHoraInicio = app.now().Format(client.ReturnTimeLayout)
			}
			if err := app.validate(req); err != nil {
				return err
			}

			existing, err := app.Registry.Permits().List(ctx, domain.PermitQuery{EmpleadoID: req.EmpleadoID})
			if err != nil {
				return err
			}
			if workflow.HasPendingOrOpenPermit(req.EmpleadoID, existing.Data) {
				return pkgerrors.New(pkgerrors.ErrConflict,
					fmt.Sprintf("el empleado %s ya tiene una papeleta pendiente o sin retorno registrado", req.EmpleadoID))
			}

			var resp *domain.PermitResponse
			if institucion != "" {
				resp, err = app.Registry.Permits().CreateCommission(ctx, req, institucion)
			} else {
				resp, err = app.Registry.Permits().CreatePersonal(ctx, req)
			}
			if err != nil {
				return err
			}
			app.Logger.Info("Permit created",
				logger.String("permit_id", resp.Data.ID),
				logger.String("employee", req.EmpleadoID))
			return app.Printer.Print("papeletas crear", newPermitView(&resp.Data), nil)
		}),
	}

	cmd.Flags().StringVar(&req.EmpleadoID, "empleado", "", "DNI del empleado (por defecto el usuario actual)")
	cmd.Flags().StringVar(&req.TipoPermisoID, "tipo", "", "ID del tipo de papeleta")
	cmd.Flags().StringVar(&req.FechaHoraInicio, "salida", "", "fecha y hora de salida (por defecto ahora)")
	cmd.Flags().StringVar(&req.FechaHoraFin, "retorno", "", "fecha y hora estimada de retorno")
	cmd.Flags().StringVar(&req.Motivo, "motivo", "", "motivo")
	cmd.Flags().StringVar(&req.Justificacion, "justificacion", "", "justificación")
	cmd.Flags().StringVar(&institucion, "institucion", "", "institución visitada (comisión de servicio)")
	return cmd
}

func newPermitsUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar una papeleta",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := domain.UpdatePermitRequest{
				TipoPermisoID:       optString(cmd, "tipo"),
				FechaHoraInicio:     optString(cmd, "salida"),
				FechaHoraFin:        optString(cmd, "retorno"),
				Motivo:              optString(cmd, "motivo"),
				Justificacion:       optString(cmd, "justificacion"),
				InstitucionVisitada: optString(cmd, "institucion"),
			}
			resp, err := app.Registry.Permits().Update(ctx, args[0], req)
			if err != nil {
				return err
			}
			return app.Printer.Print("papeletas actualizar", newPermitView(&resp.Data), nil)
		}),
	}

	cmd.Flags().String("tipo", "", "ID del tipo de papeleta")
	cmd.Flags().String("salida", "", "fecha y hora de salida")
	cmd.Flags().String("retorno", "", "fecha y hora de retorno")
	cmd.Flags().String("motivo", "", "motivo")
	cmd.Flags().String("justificacion", "", "justificación")
	cmd.Flags().String("institucion", "", "institución visitada")
	return cmd
}

func newPermitsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar una papeleta",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			resp, err := app.Registry.Permits().Delete(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Success("papeletas eliminar", messageOr(resp, "Papeleta eliminada"))
		}),
	}
}

func newPermitsStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "estado <id> <codigo>",
		Short: "Cambiar el estado de una papeleta (APROBADO, RECHAZADO, ...)",
		Args:  cobra.ExactArgs(2),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			resp, err := app.Registry.Permits().ChangeStatus(ctx, args[0], strings.ToUpper(args[1]))
			if err != nil {
				return err
			}
			return app.Printer.Print("papeletas estado", newPermitView(&resp.Data), nil)
		}),
	}
}

func newPermitsSignCmd(app *App) *cobra.Command {
	var (
		rol, firma, archivo string
		digital             bool
		cert                domain.Certificate
	)

	cmd := &cobra.Command{
		Use:   "firmar <id>",
		Short: "Firmar una papeleta",
		Long: `Firma la papeleta en el espacio que corresponde al usuario actual según su
rol y cargo y el tipo de solicitante. La firma se toma de --firma (base64) o de
una imagen con --archivo. Con --digital se envía una firma digital con certificado.`,
		Args: cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id := args[0]
			p, err := app.Registry.Permits().Get(ctx, id)
			if err != nil {
				return err
			}

			role, err := app.signerRole(p, rol)
			if err != nil {
				return err
			}

			signature, err := signatureValue(firma, archivo, digital)
			if err != nil {
				return err
			}

			var resp *domain.PermitResponse
			if digital {
				user := app.Session.User()
				if cert.DNI == "" && user != nil {
					cert.DNI = user.DNI
				}
				if cert.Nombre == "" && user != nil {
					cert.Nombre = user.Nombre
				}
				resp, err = app.Registry.Permits().SignDigitalAs(ctx, id, role, signature, cert)
			} else {
				resp, err = app.Registry.Permits().SignAs(ctx, id, role, signature)
			}
			if err != nil {
				return err
			}

			app.Logger.Info("Permit signed",
				logger.String("permit_id", id),
				logger.String("signer_role", string(role)),
				logger.Bool("digital", digital))

			if err := app.Printer.Success("papeletas firmar",
				firstNonEmpty(resp.Message, fmt.Sprintf("Papeleta firmada como %s", role))); err != nil {
				return err
			}
			if resp.FirmasCompletas != nil && *resp.FirmasCompletas {
				app.Printer.Info("Todas las firmas requeridas están completas.")
			}
			if resp.URLVerificacion != "" {
				app.Printer.Info("Verificación: " + resp.URLVerificacion)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&rol, "rol", "", "espacio de firma (solicitante, jefe_area, rrhh, institucion)")
	cmd.Flags().StringVar(&firma, "firma", "", "firma en base64")
	cmd.Flags().StringVar(&archivo, "archivo", "", "imagen de la firma")
	cmd.Flags().BoolVar(&digital, "digital", false, "firma digital con certificado")
	cmd.Flags().StringVar(&cert.DNI, "cert-dni", "", "DNI del certificado (por defecto el usuario actual)")
	cmd.Flags().StringVar(&cert.Nombre, "cert-nombre", "", "titular del certificado")
	cmd.Flags().StringVar(&cert.EntidadEmisora, "cert-emisor", "", "entidad emisora")
	cmd.Flags().StringVar(&cert.NumeroSerie, "cert-serie", "", "número de serie")
	cmd.Flags().StringVar(&cert.FechaEmision, "cert-emision", "", "fecha de emisión")
	cmd.Flags().StringVar(&cert.FechaExpiracion, "cert-expiracion", "", "fecha de expiración")
	return cmd
}

// signerRole выбирает слот подписи: явный --rol или доступный пользователю сейчас
func (a *App) signerRole(p *domain.Permit, explicit string) (domain.SignerRole, error) {
	cfg := workflow.ResolveSignatureConfig(p.Solicitante)
	identity := workflow.IdentityFromProfile(a.Session.User())

	if explicit != "" {
		role := domain.SignerRole(strings.ToLower(explicit))
		if !role.Valid() {
			return "", pkgerrors.New(pkgerrors.ErrValidation, fmt.Sprintf("espacio de firma desconocido: %s", explicit))
		}
		if !cfg.HasSlot(role) {
			return "", pkgerrors.New(pkgerrors.ErrValidation,
				fmt.Sprintf("el espacio de firma %s no corresponde a esta papeleta", role))
		}
		if p.IsSigned(role) {
			return "", pkgerrors.New(pkgerrors.ErrConflict, fmt.Sprintf("la papeleta ya tiene la firma de %s", role))
		}
		// ADMIN может занять любой слот бланка, остальные только доступные им
		if strings.EqualFold(a.Session.Role(), RoleAdmin) || slices.Contains(workflow.SignableRoles(p, identity, cfg), role) {
			return role, nil
		}
		return "", pkgerrors.New(pkgerrors.ErrForbidden, fmt.Sprintf("no puede firmar como %s en esta papeleta", role))
	}

	role, ok := workflow.AvailableSignatureRole(p, identity, cfg)
	if !ok {
		return "", pkgerrors.New(pkgerrors.ErrForbidden, "no tiene firmas pendientes disponibles en esta papeleta")
	}
	return role, nil
}

// signatureValue возвращает подпись из флага или файла изображения в виде data URL
func signatureValue(firma, archivo string, digital bool) (string, error) {
	if firma != "" {
		return firma, nil
	}
	if archivo == "" {
		return "", requiredFlags("--firma o --archivo")
	}
	_, data, err := readFile(archivo)
	if err != nil {
		return "", err
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	if digital {
		return encoded, nil
	}
	return "data:" + http.DetectContentType(data) + ";base64," + encoded, nil
}

func newPermitsVerifyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "verificar <id> <rol>",
		Short: "Verificar una firma de la papeleta",
		Args:  cobra.ExactArgs(2),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			role := domain.SignerRole(strings.ToLower(args[1]))
			if !role.Valid() {
				return pkgerrors.New(pkgerrors.ErrValidation, fmt.Sprintf("espacio de firma desconocido: %s", args[1]))
			}
			v, err := app.Registry.Permits().VerifySignature(ctx, args[0], role)
			if err != nil {
				return err
			}

			style := output.StyleError
			if v.Validada {
				style = output.StyleSuccess
			}
			d := output.NewDetails().
				AddStyled(style, "Validada", output.YesNo(v.Validada)).
				Add("Método", v.MetodoFirma).
				Add("Firmante", v.Firmante.Nombre).
				Add("DNI", v.Firmante.DNI).
				Add("Cargo", v.Firmante.Cargo).
				Add("Fecha", v.FechaFirma).
				Add("Hash", v.DocumentoHash)
			if v.Certificado != nil {
				d.Add("Emisor", v.Certificado.EntidadEmisora).
					Add("Serie", v.Certificado.NumeroSerie).
					Add("Vigencia", v.Certificado.VigenteDesde+" - "+v.Certificado.VigenteHasta)
			}
			return app.Printer.Print("papeletas verificar", v, d)
		}),
	}
}

func newPermitsPDFCmd(app *App) *cobra.Command {
	var dest string
	var generate bool

	cmd := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Descargar el PDF de una papeleta",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			var blob *client.Blob
			var err error
			if generate {
				blob, err = app.Registry.Permits().GeneratePDF(ctx, args[0])
			} else {
				blob, err = app.Registry.Permits().ViewPDF(ctx, args[0])
			}
			if err != nil {
				return err
			}
			path, err := saveBlob(blob, dest, "papeleta-"+args[0]+".pdf")
			if err != nil {
				return err
			}
			return app.Printer.Success("papeletas pdf", "PDF guardado en "+path)
		}),
	}

	cmd.Flags().StringVar(&dest, "salida", "", "archivo o directorio de destino")
	cmd.Flags().BoolVar(&generate, "generar", false, "volver a generar el PDF")
	return cmd
}

func newPermitsUploadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "subir-pdf <id> <archivo>",
		Short: "Subir el PDF firmado a mano",
		Args:  cobra.ExactArgs(2),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			name, data, err := readFile(args[1])
			if err != nil {
				return err
			}
			resp, err := app.Registry.Permits().UploadPDF(ctx, args[0], name, data)
			if err != nil {
				return err
			}
			return app.Printer.Success("papeletas subir-pdf", firstNonEmpty(resp.Message, "PDF firmado cargado"))
		}),
	}
}

func newPermitsReturnCmd(app *App) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "retorno <id>",
		Short: "Registrar el retorno del empleado",
		Long: `Registra la hora actual como retorno del empleado y descarga el PDF
actualizado. Si el tiempo fuera supera el máximo del tipo de papeleta se muestra
una advertencia; el registro no se bloquea.`,
		Args: cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id := args[0]
			p, err := app.Registry.Permits().Get(ctx, id)
			if err != nil {
				return err
			}

			maxHours, err := app.permitMaxHours(ctx, p)
			if err != nil {
				return err
			}
			notify, err := app.notifyMaxTimeExceeded(ctx)
			if err != nil {
				return err
			}

			end := app.now().Format(client.ReturnTimeLayout)
			if warning := workflow.ValidateManualReturnTime(p.FechaHoraInicio, end, maxHours, notify); warning != "" {
				app.Printer.Warning(warning)
				app.Logger.Warn("Permit return exceeds maximum time",
					logger.String("permit_id", id),
					logger.Float64("max_hours", maxHours),
					logger.Bool("notify", notify))
			}

			blob, err := app.Registry.Permits().RegisterReturn(ctx, id)
			if err != nil {
				return err
			}
			path, err := saveBlob(blob, dest, "papeleta-"+id+".pdf")
			if err != nil {
				return err
			}
			return app.Printer.Success("papeletas retorno", "Retorno registrado. PDF guardado en "+path)
		}),
	}

	cmd.Flags().StringVar(&dest, "salida", "", "archivo o directorio para el PDF")
	return cmd
}

// permitMaxHours максимум часов для типа папелеты; 0 без ограничения
func (a *App) permitMaxHours(ctx context.Context, p *domain.Permit) (float64, error) {
	t := p.TipoPermiso
	if t == nil && p.TipoPermisoID != "" {
		var err error
		if t, err = a.Registry.Permits().GetType(ctx, p.TipoPermisoID); err != nil {
			return 0, err
		}
	}
	if t == nil || t.TiempoMaximoHoras == nil {
		return 0, nil
	}
	return *t.TiempoMaximoHoras, nil
}

func (a *App) notifyMaxTimeExceeded(ctx context.Context) (bool, error) {
	v, err := store.GetOptional(ctx, a.Storage, store.KeyNotifyMaxTimeExceeded)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

func newPermitsNotifyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "notificar [on|off]",
		Short:     "Notificar cuando el retorno excede el tiempo máximo",
		Long:      `Sin argumento muestra la preferencia actual; con on u off la cambia.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				var value string
				switch strings.ToLower(args[0]) {
				case "on", "si", "sí", "true":
					value = "true"
				case "off", "no", "false":
					value = "false"
				default:
					return pkgerrors.New(pkgerrors.ErrValidation, "valor inválido: use on u off")
				}
				if err := app.Storage.Set(ctx, store.KeyNotifyMaxTimeExceeded, value); err != nil {
					return err
				}
			}

			notify, err := app.notifyMaxTimeExceeded(ctx)
			if err != nil {
				return err
			}
			state := "desactivada"
			if notify {
				state = "activada"
			}
			return app.Printer.Print("papeletas notificar",
				map[string]bool{"notificar": notify},
				output.NewDetails().Add("Notificación de tiempo excedido", state))
		}),
	}
}

func newPermitTypesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tipos",
		Short: "Tipos de papeleta",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar tipos de papeleta",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			types, err := app.Registry.Permits().ListTypes(ctx, optBool(cmd, "activo"))
			if err != nil {
				return err
			}
			return app.Printer.Print("papeletas tipos listar", types, output.PermitTypesTable(types))
		}),
	}
	list.Flags().Bool("activo", true, "filtrar por estado")

	get := &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver un tipo de papeleta",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			t, err := app.Registry.Permits().GetType(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Print("papeletas tipos ver", t, output.PermitTypesTable([]domain.PermitType{*t}))
		}),
	}

	create := &cobra.Command{
		Use:   "crear",
		Short: "Crear un tipo de papeleta",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := permitTypeRequest(cmd)
			if req.Nombre == nil || req.Codigo == nil {
				return requiredFlags("--nombre", "--codigo")
			}
			t, err := app.Registry.Permits().CreateType(ctx, req)
			if err != nil {
				return err
			}
			return app.Printer.Print("papeletas tipos crear", t, output.PermitTypesTable([]domain.PermitType{*t}))
		}),
	}
	permitTypeFlags(create)

	update := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar un tipo de papeleta",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			t, err := app.Registry.Permits().UpdateType(ctx, args[0], permitTypeRequest(cmd))
			if err != nil {
				return err
			}
			return app.Printer.Print("papeletas tipos actualizar", t, output.PermitTypesTable([]domain.PermitType{*t}))
		}),
	}
	permitTypeFlags(update)

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un tipo de papeleta",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			resp, err := app.Registry.Permits().DeleteType(ctx, args[0])
			if err != nil {
				return err
			}
			return app.Printer.Success("papeletas tipos eliminar", messageOr(resp, "Tipo de papeleta eliminado"))
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

func permitTypeFlags(cmd *cobra.Command) {
	cmd.Flags().String("nombre", "", "nombre")
	cmd.Flags().String("codigo", "", "código")
	cmd.Flags().String("descripcion", "", "descripción")
	cmd.Flags().Bool("firma-institucion", false, "requiere firma de la institución")
	cmd.Flags().Float64("max-horas", 0, "tiempo máximo fuera en horas")
	cmd.Flags().Bool("activo", true, "tipo activo")
}

func permitTypeRequest(cmd *cobra.Command) domain.PermitTypeRequest {
	return domain.PermitTypeRequest{
		Nombre:                   optString(cmd, "nombre"),
		Codigo:                   optString(cmd, "codigo"),
		Descripcion:              optString(cmd, "descripcion"),
		RequiereFirmaInstitucion: optBool(cmd, "firma-institucion"),
		TiempoMaximoHoras:        optFloat(cmd, "max-horas"),
		Activo:                   optBool(cmd, "activo"),
	}
}
