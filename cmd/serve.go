package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chinook/internal/server"
	"github.com/desertthunder/chinook/internal/shared"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

// Serve loads the configuration, opens the store and serves the catalog API until ctx is
// cancelled or the process receives SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("port") {
		config.Server.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("prefix") {
		config.Server.Prefix = cmd.String("prefix")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	closeLog, err := r.configureLogging(config.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := shared.NewDatabase(config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	return r.listen(ctx, newServer(config.Server, db, r.logger))
}

// configureLogging applies the configured level and, when a directory is set, also writes
// every entry to the daily log file. The returned func restores the original output.
func (r *Runner) configureLogging(cfg shared.LoggingConfig) (func(), error) {
	level, err := shared.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}
	shared.SetLogLevel(r.logger, level)

	if cfg.Dir == "" {
		return func() {}, nil
	}

	daily := shared.NewDailyLog(cfg.Dir)
	r.logger.SetOutput(io.MultiWriter(r.logOutput, daily))
	r.logger.Info("writing logs to directory", "dir", cfg.Dir)

	return func() {
		r.logger.SetOutput(r.logOutput)
		daily.Close()
	}, nil
}

func newServer(cfg shared.ServerConfig, db server.Connector, logger *log.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.NewRouter(db, cfg, logger),
		ReadHeaderTimeout: 15 * time.Second,
	}
}

func (r *Runner) listen(ctx context.Context, srv *http.Server) error {
	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("catalog API listening", "addr", srv.Addr)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		r.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return <-serverErr
	}
}
