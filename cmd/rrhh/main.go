package main

import (
	"context"
	"os"
	"os/signal"

	"RRHHPlatform/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx, cli.NewApp(cli.Options{}), os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
