package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"Hermes/internal/usecase"
	"Hermes/pkg/config"
	xhttp "Hermes/pkg/http"
	applogger "Hermes/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	httpServer *xhttp.Server
	scheduler  *usecase.CycleScheduler
}

// New creates a new App instance. scheduler may be nil.
func New(cfg *config.Config, l *applogger.Logger, httpServer *xhttp.Server, scheduler *usecase.CycleScheduler) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		cfg:        cfg,
		l:          l,
		httpServer: httpServer,
		scheduler:  scheduler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the application and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	schedCtx, cancelSched := context.WithCancel(context.Background())
	defer cancelSched()

	if a.scheduler != nil {
		a.scheduler.Start(schedCtx)
	}

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("hermes started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Bool("scheduler", a.scheduler != nil),
	)

	<-ctx.Done()
	a.l.Info("shutdown signal received")

	cancelSched()
	return a.shutdown()
}

// shutdown stops the HTTP server. Infrastructure clients are closed by the DI cleanup.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.l.Info("shutdown complete")
	return nil
}
