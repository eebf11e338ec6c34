package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/hairmatch/internal/domain/discovery"
	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/internal/infra/config"
	"github.com/yanqian/hairmatch/internal/infra/discoveryqueue"
)

// Resources are shared connections closed after the server and workers stop.
type Resources struct {
	Closers []func()
}

// waiter is implemented by dispatchers that send in the background.
type waiter interface {
	Wait(ctx context.Context)
}

// App encapsulates the HTTP server and discovery worker lifecycle.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	server     *http.Server
	queue      discoveryqueue.HandlerQueue
	discovery  discovery.Service
	dispatcher scoring.Dispatcher
	resources  Resources
}

// NewApp is used by Wire to build the runnable app.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	queue discoveryqueue.HandlerQueue,
	discoverySvc discovery.Service,
	dispatcher scoring.Dispatcher,
	resources Resources,
) *App {
	return &App{
		cfg:        cfg,
		logger:     logger.With("component", "bootstrap"),
		server:     server,
		queue:      queue,
		discovery:  discoverySvc,
		dispatcher: dispatcher,
		resources:  resources,
	}
}

// Run starts the discovery worker and the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.queue.SetHandler(discoveryqueue.NewDiscoveryHandler(a.discovery, a.logger))

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	}

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// shutdown stops intake first, then drains pending dispatches and jobs, then
// releases connections.
func (a *App) shutdown() error {
	timeout := a.cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := a.server.Shutdown(ctx)
	if err != nil {
		a.logger.Error("http server shutdown failed", "error", err)
	}
	if w, ok := a.dispatcher.(waiter); ok {
		w.Wait(ctx)
	}
	a.queue.Close()
	for _, closeFn := range a.resources.Closers {
		closeFn()
	}
	a.logger.Info("shutdown complete")
	return err
}
