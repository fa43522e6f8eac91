package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aquamarinepk/aqm"

	"github.com/ecoeats/seller-console/internal/app"
)

const appNamespace = "SELLERCONSOLE"

func main() {
	config, err := aqm.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", app.AppName, app.AppVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := aqm.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	application, err := app.New(config, logger)
	if err != nil {
		log.Fatalf("cannot create application: %v", err)
	}

	if err := application.Initialize(ctx); err != nil {
		log.Fatalf("cannot initialize application: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped: %v", app.AppName, app.AppVersion, err)
	}
}
