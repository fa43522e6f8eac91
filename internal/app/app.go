package app

import (
	"context"

	"github.com/aquamarinepk/aqm"
	aqmevents "github.com/aquamarinepk/aqm/events"
	"github.com/aquamarinepk/aqm/middleware"

	"github.com/ecoeats/seller-console/internal/console"
	"github.com/ecoeats/seller-console/internal/events"
)

const (
	AppName    = "seller-console"
	AppVersion = "0.1.0"
)

// App wires the seller console together: configuration, logging, the
// optional NATS publisher and the HTTP handler.
type App struct {
	config *aqm.Config
	logger aqm.Logger
	micro  *aqm.Micro
}

func New(config *aqm.Config, logger aqm.Logger) (*App, error) {
	return &App{
		config: config,
		logger: logger,
	}, nil
}

// Initialize sets up all dependencies and components.
func (a *App) Initialize(ctx context.Context) error {
	// Event publishing is optional. Without a broker the console still
	// works; seller actions are only logged.
	var publisher aqmevents.Publisher
	var natsPublisher *events.NATSPublisher

	natsURL, _ := a.config.GetString("nats.url")
	if natsURL != "" {
		p, err := events.NewNATSPublisher(natsURL)
		if err != nil {
			a.logger.Info("NATS unavailable, seller action events disabled", "error", err)
		} else {
			natsPublisher = p
			publisher = p
		}
	}

	handler := console.NewHandler(publisher, a.config, a.logger)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      a.logger,
		DisableCORS: false,
	})

	var lifecycles []interface{}
	if natsPublisher != nil {
		lifecycles = append(lifecycles, aqm.LifecycleHooks{
			OnStop: func(context.Context) error { return natsPublisher.Close() },
		})
	}

	options := []aqm.Option{
		aqm.WithConfig(a.config),
		aqm.WithLogger(a.logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithHTTPServerModules("web.port", handler),
		aqm.WithLifecycle(lifecycles...),
		aqm.WithHealthChecks(AppName),
	}

	a.micro = aqm.NewMicro(options...)
	return nil
}

// Run starts the application.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("Starting %s(%s)", AppName, AppVersion)
	if err := a.micro.Run(ctx); err != nil {
		return err
	}
	a.logger.Infof("%s(%s) stopped", AppName, AppVersion)
	return nil
}
