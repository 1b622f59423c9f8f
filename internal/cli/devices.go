package cli

import (
	"context"

	"github.com/spf13/cobra"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/output"
)

func newDevicesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dispositivos",
		Aliases: []string{"devices"},
		Short:   "Dispositivos biométricos",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Listar dispositivos",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			devices, err := app.Registry.Devices().List(ctx)
			if err != nil {
				return err
			}
			return app.Printer.Print("dispositivos listar", devices, output.DevicesTable(devices))
		}),
	}

	get := &cobra.Command{
		Use:   "ver <id>",
		Short: "Ver un dispositivo",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			device, err := app.Registry.Devices().Get(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Print("dispositivos ver", device, output.DevicesTable([]domain.Device{*device}))
		}),
	}

	create := &cobra.Command{
		Use:   "crear",
		Short: "Registrar un dispositivo",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			req := deviceRequest(cmd)
			if req.Nombre == nil || req.IPAddress == nil {
				return requiredFlags("--nombre", "--ip")
			}
			if req.Puerto == nil {
				req.Puerto = domain.Int(defaultDevicePort)
			}
			if err := app.validate(req); err != nil {
				return err
			}
			device, err := app.Registry.Devices().Create(ctx, req)
			if err != nil {
				return err
			}
			return app.Printer.Print("dispositivos crear", device, output.DevicesTable([]domain.Device{*device}))
		}),
	}
	deviceFlags(create)

	update := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualizar un dispositivo",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := deviceRequest(cmd)
			if err := app.validate(req); err != nil {
				return err
			}
			device, err := app.Registry.Devices().Update(ctx, id, req)
			if err != nil {
				return err
			}
			return app.Printer.Print("dispositivos actualizar", device, output.DevicesTable([]domain.Device{*device}))
		}),
	}
	deviceFlags(update)

	remove := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Eliminar un dispositivo",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := app.Registry.Devices().Delete(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Success("dispositivos eliminar", messageOr(resp, "Dispositivo eliminado"))
		}),
	}

	test := &cobra.Command{
		Use:   "probar <id>",
		Short: "Probar la conexión con un dispositivo",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := app.Registry.Devices().TestConnection(ctx, id)
			if err != nil {
				return err
			}
			return app.Printer.Print("dispositivos probar", resp, output.ConnectionDetails(resp))
		}),
	}

	info := &cobra.Command{
		Use:   "info <id>",
		Short: "Información del firmware y hora del dispositivo",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			info, err := app.Registry.Devices().Info(ctx, id)
			if err != nil {
				return err
			}
			d := output.NewDetails().
				Add("Número de serie", info.SerialNumber).
				Add("Firmware", info.FirmwareVersion).
				Add("Plataforma", info.Platform).
				Add("IP", info.IPAddress).
				Add("Puerto", itoa(info.Puerto)).
				Add("Hora del dispositivo", info.HoraDispositivo)
			return app.Printer.Print("dispositivos info", info, d)
		}),
	}

	cmd.AddCommand(
		list,
		get,
		requireAuth(create, RoleAdmin, RoleRRHH),
		requireAuth(update, RoleAdmin, RoleRRHH),
		requireAuth(remove, RoleAdmin),
		test,
		info,
	)
	return requireAuth(cmd)
}

// defaultDevicePort стандартный порт ZKTeco
const defaultDevicePort = 4370

func deviceFlags(cmd *cobra.Command) {
	cmd.Flags().String("nombre", "", "nombre del dispositivo")
	cmd.Flags().String("ip", "", "dirección IP")
	cmd.Flags().Int("puerto", defaultDevicePort, "puerto")
	cmd.Flags().String("ubicacion", "", "ubicación")
	cmd.Flags().Int("password", 0, "contraseña de comunicación")
	cmd.Flags().Int("timeout", 0, "tiempo de espera en segundos")
	cmd.Flags().Bool("activo", true, "dispositivo activo")
}

func deviceRequest(cmd *cobra.Command) domain.DeviceRequest {
	return domain.DeviceRequest{
		Nombre:    optString(cmd, "nombre"),
		IPAddress: optString(cmd, "ip"),
		Puerto:    optInt(cmd, "puerto"),
		Ubicacion: optString(cmd, "ubicacion"),
		Password:  optInt(cmd, "password"),
		Timeout:   optInt(cmd, "timeout"),
		Activo:    optBool(cmd, "activo"),
	}
}
