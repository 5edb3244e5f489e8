package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chrissnell/wildfire/internal/controllers/restserver"
	"github.com/chrissnell/wildfire/internal/log"
	"github.com/chrissnell/wildfire/pkg/config"
	"go.uber.org/zap"
)

// Controller is implemented by the long-running front ends the daemon
// starts.
type Controller interface {
	StartController() error
}

// App represents the firebehaved daemon
type App struct {
	server config.ServerData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(server config.ServerData, logger *zap.SugaredLogger) *App {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &App{
		server: server,
		logger: logger,
	}
}

// Run starts the REST server and blocks until a shutdown signal arrives or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rest, err := restserver.NewController(ctx, &wg, a.server, a.logger)
	if err != nil {
		return err
	}

	for _, c := range []Controller{rest} {
		if err := c.StartController(); err != nil {
			return err
		}
	}

	log.Infow("firebehaved started", "addr", rest.Server.Addr, "workers", a.server.Workers)

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	log.Info("waiting for in-flight requests to finish...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
