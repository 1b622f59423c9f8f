package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"RRHHPlatform/internal/output"
)

type versionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func (v versionInfo) Table() *output.Table {
	return output.NewDetails().
		Add("Versión", v.Version).
		Add("Go", v.GoVersion).
		Add("Plataforma", v.Platform).
		Table()
}

func newVersionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Mostrar la versión de la consola",
		Args:  cobra.NoArgs,
		RunE: app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   Version,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if !app.Printer.Structured() {
				fmt.Fprintln(app.out, figure.NewFigure("RRHH", "cybermedium", true).String())
			}
			return app.Printer.Print("version", info, info)
		}),
	}
	return withScope(cmd, scopeNone)
}
