package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	pkgerrors "RRHHPlatform/pkg/errors"
	"RRHHPlatform/pkg/logger"
)

// Глобальные флаги
const (
	flagConfig  = "config"
	flagOutput  = "output"
	flagNoColor = "no-color"
	flagDebug   = "debug"
)

// Аннотации команд
const (
	// annotationAuth команда требует сохраненного токена
	annotationAuth = "rrhh/requires-auth"
	// annotationRoles список ролей через запятую, которым доступна команда
	annotationRoles = "rrhh/roles"
	// annotationScope уровень зависимостей, которые нужны команде
	annotationScope = "rrhh/scope"
)

// Уровни зависимостей команды
const (
	scopeNone   = "none"
	scopeConfig = "config"
	scopeFull   = "full"
)

// Роли сервиса авторизации, которые встречаются в списках доступа
const (
	RoleAdmin      = "ADMIN"
	RoleRRHH       = "RRHH"
	RoleSupervisor = "SUPERVISOR"
	RoleJefe       = "JEFE"
)

// commandTimeout ограничение на выполнение одной команды
const commandTimeout = 2 * time.Minute

var (
	// ErrLoginRequired команда требует входа
	ErrLoginRequired = pkgerrors.New(pkgerrors.ErrUnauthorized, "debe iniciar sesión: ejecute 'rrhh auth login'")
	// errReported ошибка уже напечатана командой
	errReported = errors.New("error already reported")
)

// NewRootCmd создает корневую команду rrhh
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "rrhh",
		Short: "Consola de Recursos Humanos",
		Long: `rrhh - consola de administración de Recursos Humanos.

Gestiona asistencias y dispositivos biométricos, papeletas con firmas,
incidencias, horarios, departamentos y reportes contra los servicios
de autenticación, biométrico, papeletas, incidencias y reportes.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Open(cmd.Context(), scopeOf(cmd)); err != nil {
				return err
			}
			return app.authorize(cmd.Context(), cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringP(flagConfig, "c", "", "archivo de configuración (por defecto ~/.rrhh/config.yaml)")
	flags.StringP(flagOutput, "o", "", "formato de salida (table, json, yaml)")
	flags.Bool(flagNoColor, false, "desactivar colores")
	flags.Bool(flagDebug, false, "registro detallado en stderr")
	app.bindFlags(flags)

	root.AddCommand(
		newAuthCmd(app),
		newUsersCmd(app),
		newRolesCmd(app),
		newAttendanceCmd(app),
		newDevicesCmd(app),
		newSchedulesCmd(app),
		newDepartmentsCmd(app),
		newPermitsCmd(app),
		newIncidentsCmd(app),
		newReportsCmd(app),
		newDashboardCmd(app),
		newSyncCmd(app),
		newConfigCmd(app),
		newVersionCmd(app),
	)

	return root
}

// Execute выполняет консоль с аргументами args и печатает ошибку в выбранном формате
func Execute(ctx context.Context, app *App, args []string) error {
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetIn(app.in)
	root.SetOut(app.out)
	root.SetErr(app.errOut)

	defer app.Close()

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		app.Logger.Debug("Command failed", logger.Error(err))
		app.Printer.Error(root.Name(), err)
	}
	return err
}

// requireAuth помечает команду и все вложенные как требующие входа
func requireAuth(cmd *cobra.Command, roles ...string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationAuth] = "true"
	if len(roles) > 0 {
		cmd.Annotations[annotationRoles] = strings.Join(roles, ",")
	}
	return cmd
}

// withScope задает уровень зависимостей команды
func withScope(cmd *cobra.Command, scope string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationScope] = scope
	return cmd
}

// annotation ищет аннотацию у команды и ее родителей
func annotation(cmd *cobra.Command, key string) (string, bool) {
	for c := cmd; c != nil; c = c.Parent() {
		if v, ok := c.Annotations[key]; ok {
			return v, true
		}
	}
	return "", false
}

func scopeOf(cmd *cobra.Command) string {
	if scope, ok := annotation(cmd, annotationScope); ok {
		return scope
	}
	return scopeFull
}

// authorize аналог навигационного guard: без токена команды с requiresAuth
// отклоняются, а роль сессии должна входить в список доступа команды
func (a *App) authorize(ctx context.Context, cmd *cobra.Command) error {
	if _, ok := annotation(cmd, annotationAuth); !ok {
		return nil
	}
	if a.Session == nil || !a.Session.HasToken(ctx) {
		return ErrLoginRequired
	}

	allowed, ok := annotation(cmd, annotationRoles)
	if !ok {
		return nil
	}
	role := a.Session.Role()
	for _, r := range strings.Split(allowed, ",") {
		if strings.EqualFold(strings.TrimSpace(r), strings.TrimSpace(role)) {
			return nil
		}
	}

	a.Logger.Warn("Command refused for role",
		logger.String("command", cmd.CommandPath()),
		logger.String("role", role))
	return pkgerrors.New(pkgerrors.ErrForbidden,
		fmt.Sprintf("su rol (%s) no tiene acceso a este comando; roles permitidos: %s", orDash(role), allowed))
}

// validate проверяет запрос тегами validate
func (a *App) validate(v any) error {
	if err := a.Validator.Struct(v); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrValidation, err.Error())
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// run оборачивает обработчик команды: таймаут, метрики и печать ошибки
func (a *App) run(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		name := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
		timer := a.Metrics.NewCommandTimer()

		err := fn(ctx, cmd, args)
		timer.Finish(name, err == nil)

		if err != nil {
			a.Logger.Debug("Command failed",
				logger.String("command", name),
				logger.Error(err))
			a.Printer.Error(name, err)
			return errReported
		}
		return nil
	}
}
