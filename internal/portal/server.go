package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trevor93/Aigency/internal/dashboard"
	"github.com/trevor93/Aigency/internal/dataservice"
	"github.com/trevor93/Aigency/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// Run starts the portal server and blocks until the context is cancelled or
// a termination signal arrives.
func Run(ctx context.Context, version string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		Component: "portal",
	})

	ds, err := dataservice.NewClient(dataservice.ClientConfig{
		URL:     cfg.DataURL,
		AnonKey: cfg.DataAnonKey,
		Timeout: cfg.DataTimeout,
	})
	if err != nil {
		return fmt.Errorf("data service client: %w", err)
	}

	deps := &Deps{
		Config:       cfg,
		Data:         ds,
		Gate:         NewGate(ds, cfg.CookieName, cfg.CookieSecure),
		Nav:          NewNavMachine("/"),
		Clients:      dashboard.NewClientFetcher(ds),
		Transactions: dashboard.NewTransactionFetcher(ds),
		Automations:  dashboard.NewAutomationLogFetcher(ds),
		Version:      version,
	}

	mux := http.NewServeMux()
	RegisterRoutes(mux, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.Port),
		Handler:           SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("Portal server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("portal server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down portal server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
