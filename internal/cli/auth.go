package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
	"RRHHPlatform/pkg/logger"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Autenticación y sesión",
		Long: `Comandos de sesión: inicio y cierre de sesión, estado de la sesión,
perfil del usuario actual, cambio de contraseña y administración de cuentas.`,
	}

	cmd.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newAuthStatusCmd(app),
		requireAuth(newProfileCmd(app)),
		requireAuth(newPasswordCmd(app)),
		requireAuth(newAccountsCmd(app), RoleAdmin, RoleRRHH),
	)
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var correo, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión",
		Long: `Inicia sesión con correo y contraseña. El token y el perfil se guardan
en el almacenamiento local para los siguientes comandos. Si ya existe una
sesión, se muestra el usuario actual sin volver a autenticarse.`,
		Args: cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if app.Session.HasToken(ctx) {
				if user := app.Session.User(); user != nil {
					app.Printer.Info("Ya existe una sesión iniciada. Use 'rrhh auth logout' para cambiar de usuario.")
					return app.Printer.Print("auth login", user, output.ProfileDetails(user))
				}
			}

			var err error
			if correo, err = app.prompt("Correo", correo); err != nil {
				return err
			}
			if password, err = app.prompt("Contraseña", password); err != nil {
				return err
			}

			creds := domain.LoginCredentials{Correo: correo, Contrasena: password}
			if err := app.validate(creds); err != nil {
				return err
			}

			profile, err := app.Session.Login(ctx, creds)
			if err != nil {
				return err
			}
			app.Reset()

			if err := app.Printer.Success("auth login", "Bienvenido, "+profile.Nombre); err != nil {
				return err
			}
			if app.Printer.Structured() {
				return nil
			}
			return app.Printer.Print("auth login", profile, output.ProfileDetails(profile))
		}),
	}

	cmd.Flags().StringVarP(&correo, "correo", "u", "", "correo electrónico")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña (se solicita si se omite)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesión",
		Long:  `Elimina el token y el perfil guardados. No realiza peticiones al servidor.`,
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			app.Logout(ctx)
			return app.Printer.Success("auth logout", "Sesión cerrada")
		}),
	}
}

// sessionStatus состояние сессии для вывода json/yaml
type sessionStatus struct {
	Authenticated bool            `json:"autenticado"`
	User          *domain.Profile `json:"usuario,omitempty"`
	ExpiresAt     *time.Time      `json:"expira,omitempty"`
	Expired       bool            `json:"expirado"`
}

func (s *sessionStatus) Table() *output.Table {
	d := output.NewDetails()
	if !s.Authenticated {
		d.AddStyled(output.StyleWarning, "Sesión", "No hay sesión iniciada")
		return d.Table()
	}
	d.AddStyled(output.StyleSuccess, "Sesión", "Activa")
	if s.User != nil {
		d.Add("Usuario", s.User.Nombre).
			Add("DNI", s.User.DNI).
			Add("Rol", s.User.Rol)
	}
	if s.ExpiresAt != nil {
		style := output.StyleDefault
		if s.Expired {
			style = output.StyleError
		}
		d.AddStyled(style, "Expira", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return d.Table()
}

func newAuthStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Estado de la sesión",
		Long: `Muestra si hay una sesión iniciada, el usuario guardado y la fecha de
expiración del token (leída del token sin verificar la firma).`,
		Args: cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			status := &sessionStatus{Authenticated: app.Session.HasToken(ctx)}
			if status.Authenticated {
				status.User = app.Session.User()
				claims, err := app.Session.TokenClaims(ctx)
				if err != nil {
					app.Logger.Debug("Token claims unavailable", logger.Error(err))
				} else if claims.ExpiresAt != nil {
					status.ExpiresAt = claims.ExpiresAt
					status.Expired = claims.Expired(app.now())
				}
			}
			return app.Printer.Print("auth status", status, status)
		}),
	}
}

func newProfileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "perfil",
		Aliases: []string{"profile"},
		Short:   "Perfil del usuario actual",
		Long: `Descarga el perfil del servicio de autenticación, lo completa con el
nombre y correo del registro de personal y actualiza la sesión guardada.`,
		Args: cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			profile, err := app.Session.FetchProfile(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print("auth perfil", profile, output.ProfileDetails(profile))
		}),
	}
}

func newPasswordCmd(app *App) *cobra.Command {
	var actual, nueva string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Cambiar contraseña",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			var err error
			if actual, err = app.prompt("Contraseña actual", actual); err != nil {
				return err
			}
			if nueva, err = app.prompt("Contraseña nueva", nueva); err != nil {
				return err
			}

			req := domain.ChangePasswordRequest{Actual: actual, Nueva: nueva}
			if err := app.validate(req); err != nil {
				return err
			}

			resp, err := app.Registry.Auth().ChangePassword(ctx, req)
			if err != nil {
				return err
			}
			return app.Printer.Success("auth password", messageOr(resp, "Contraseña actualizada"))
		}),
	}

	cmd.Flags().StringVar(&actual, "actual", "", "contraseña actual")
	cmd.Flags().StringVar(&nueva, "nueva", "", "contraseña nueva (mínimo 6 caracteres)")
	return cmd
}

func newAccountsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cuentas",
		Short: "Cuentas del servicio de autenticación",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar cuentas",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			users, err := app.Registry.Auth().ListUsers(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print("auth cuentas listar", users, output.AuthUsersTable(users))
		}),
	}

	register := &cobra.Command{
		Use:   "registrar",
		Short: "Registrar una cuenta",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := domain.RegisterRequest{}
			req.Usuario, _ = cmd.Flags().GetString("usuario")
			req.Correo, _ = cmd.Flags().GetString("correo")
			req.Contrasena, _ = cmd.Flags().GetString("password")
			req.RolID, _ = cmd.Flags().GetString("rol")
			if err := app.validate(req); err != nil {
				return err
			}

			resp, err := app.Registry.Auth().Register(ctx, req)
			if err != nil {
				return err
			}
			app.Cache.InvalidateAuthUsers()
			if resp.User != nil {
				return app.Printer.Print("auth cuentas registrar", resp.User, output.AuthUsersTable([]domain.AuthUser{*resp.User}))
			}
			return app.Printer.Success("auth cuentas registrar", firstNonEmpty(resp.Message, "Cuenta registrada"))
		}),
	}
	register.Flags().String("usuario", "", "usuario (DNI)")
	register.Flags().String("correo", "", "correo electrónico")
	register.Flags().String("password", "", "contraseña")
	register.Flags().String("rol", "", "ID del rol")

	update := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar una cuenta",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := domain.UpdateAuthUserRequest{
				Usuario: optString(cmd, "usuario"),
				Correo:  optString(cmd, "correo"),
				Activo:  optBool(cmd, "activo"),
				RolID:   optString(cmd, "rol"),
			}
			user, err := app.Registry.Auth().UpdateUser(ctx, args[0], req)
			if err != nil {
				return err
			}
			app.Cache.InvalidateAuthUsers()
			return app.Printer.Print("auth cuentas actualizar", user, output.AuthUsersTable([]domain.AuthUser{*user}))
		}),
	}
	update.Flags().String("usuario", "", "usuario (DNI)")
	update.Flags().String("correo", "", "correo electrónico")
	update.Flags().Bool("activo", true, "cuenta activa")
	update.Flags().String("rol", "", "ID del rol")

	lock := &cobra.Command{
		Use:   "bloqueo <id>",
		Short: "Estado de bloqueo de una cuenta",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			status, err := app.Registry.Auth().LockStatus(ctx, args[0])
			if err != nil {
				return err
			}
			d := output.NewDetails()
			style := output.StyleSuccess
			if status.Bloqueado {
				style = output.StyleError
			}
			d.AddStyled(style, "Bloqueado", output.YesNo(status.Bloqueado)).
				Add("Intentos fallidos", strconv.Itoa(status.IntentosFallidos)).
				Add("Bloqueado hasta", status.BloqueadoHasta)
			return app.Printer.Print("auth cuentas bloqueo", status, d)
		}),
	}

	unlock := &cobra.Command{
		Use:   "desbloquear <id>",
		Short: "Desbloquear una cuenta",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			resp, err := app.Registry.Auth().Unlock(ctx, args[0])
			if err != nil {
				return err
			}
			app.Cache.InvalidateAuthUsers()
			return app.Printer.Success("auth cuentas desbloquear", messageOr(resp, "Cuenta desbloqueada"))
		}),
	}

	cmd.AddCommand(list, register, update, lock, unlock)
	return cmd
}

// messageOr текст ответа бэкенда или сообщение по умолчанию
func messageOr(m *domain.Message, fallback string) string {
	if m == nil {
		return fallback
	}
	return firstNonEmpty(m.Message, fallback)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
