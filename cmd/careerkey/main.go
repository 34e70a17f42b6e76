package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/careerkey/portal/internal/buildinfo"
	"github.com/careerkey/portal/internal/client/cli"
	"github.com/careerkey/portal/internal/client/config"
	"github.com/careerkey/portal/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewDefault()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
