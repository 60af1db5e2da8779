package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clickwork/clickwork/internal/app"
	"github.com/clickwork/clickwork/internal/config"
	"github.com/clickwork/clickwork/internal/jobs"
	"github.com/clickwork/clickwork/internal/repository/postgres"
	myhttp "github.com/clickwork/clickwork/internal/transport/http"
	"github.com/clickwork/clickwork/pkg/logger/sl"
	"github.com/clickwork/clickwork/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting clickwork", slog.String("env", cfg.Env))

	db, err := postgres.NewDB(ctx, cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	services, err := app.NewServices(log, db.DB(), cfg)
	if err != nil {
		return err
	}

	syncJob, err := jobs.NewAutoReviewSync(log, services.Admin, cfg.AutoReview.SyncSchedule)
	if err != nil {
		return err
	}

	go syncJob.Run(ctx)

	srv := myhttp.NewServer(log, cfg.Auth, services.Assignment, services.Submission, services.Review, services.Admin)
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errChan := make(chan error, 1)

	go startServer(log, httpServer, errChan)

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("http server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %w", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChan <- fmt.Errorf("error listening and serving: %w", err)
	}
}
