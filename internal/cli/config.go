package cli

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/config"
	"RRHHPlatform/internal/output"
	pkgerrors "RRHHPlatform/pkg/errors"
	"RRHHPlatform/pkg/logger"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuración de la consola",
		Long: `Muestra y modifica ~/.rrhh/config.yaml. Las variables de entorno RRHH_*
y el archivo .env del directorio actual tienen prioridad sobre el archivo.`,
	}

	cmd.AddCommand(
		newConfigInitCmd(app),
		newConfigShowCmd(app),
		newConfigSetCmd(app),
		newConfigKeysCmd(app),
		newConfigPathCmd(app),
	)
	return withScope(cmd, scopeConfig)
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Crear el archivo de configuración por defecto",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			path, err := app.configPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return pkgerrors.New(pkgerrors.ErrConflict, "el archivo ya existe: "+path+" (use --forzar para sobrescribirlo)")
			}

			cfg, err := config.InitConfig(path)
			if err != nil {
				return err
			}
			app.Logger.Info("Config initialized", logger.String("path", cfg.Path))
			return app.Printer.Success("config init", "Configuración creada en "+cfg.Path)
		}),
	}
	cmd.Flags().BoolVar(&force, "forzar", false, "sobrescribir un archivo existente")

	// существующий файл может быть невалидным, поэтому конфигурация не загружается
	return withScope(cmd, scopeNone)
}

// configPath путь из флага --config или путь по умолчанию
func (a *App) configPath() (string, error) {
	if path := a.flags.GetString(flagConfig); path != "" {
		return path, nil
	}
	if a.Config != nil && a.Config.Path != "" {
		return a.Config.Path, nil
	}
	return config.GetConfigPath()
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ver",
		Aliases: []string{"show"},
		Short:   "Mostrar la configuración efectiva",
		Args:    cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			values := app.Config.Values()
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			details := output.NewDetails()
			for _, k := range keys {
				details.Add(k, orDash(values[k]))
			}
			return app.Printer.Print("config ver", app.Config, details)
		}),
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <clave> <valor>",
		Short: "Cambiar un valor y guardar el archivo",
		Example: `  rrhh config set gateway.enabled true
  rrhh config set gateway.url https://rrhh.example.com
  rrhh config set storage.backend redis`,
		Args: cobra.ExactArgs(2),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if err := app.Config.Set(args[0], args[1]); err != nil {
				return pkgerrors.Wrap(err, pkgerrors.ErrValidation, err.Error())
			}
			if err := app.Config.Validate(); err != nil {
				return pkgerrors.Wrap(err, pkgerrors.ErrValidation, err.Error())
			}
			if err := app.Config.Save(); err != nil {
				return err
			}
			app.Logger.Info("Config updated", logger.String("key", args[0]))
			return app.Printer.Success("config set", args[0]+" actualizado")
		}),
	}
}

func newConfigKeysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "claves",
		Aliases: []string{"keys"},
		Short:   "Listar las claves configurables",
		Args:    cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			keys := app.Config.Keys()
			table := output.NewTable("CLAVE", "VARIABLE")
			for _, k := range keys {
				table.AddRow(k, envName(k))
			}
			return app.Printer.Print("config claves", keys, table)
		}),
	}
}

// envName имя переменной окружения для ключа: storage.redis.addr -> RRHH_STORAGE_REDIS_ADDR
func envName(key string) string {
	return config.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ruta",
		Aliases: []string{"path"},
		Short:   "Mostrar la ruta del archivo de configuración",
		Args:    cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			path, err := app.configPath()
			if err != nil {
				return err
			}
			return app.Printer.Print("config ruta", map[string]string{"ruta": path}, output.NewDetails().Add("Ruta", path))
		}),
	}
}
