// Package server owns the process lifecycle: boot, serve, and graceful
// shutdown of the HTTP listener and everything behind it.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/ecotrackhq/ecotrack/app/jobs"
	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/internal/kernel"
	"github.com/ecotrackhq/ecotrack/pkg/cache"
	"github.com/ecotrackhq/ecotrack/pkg/database"
	"github.com/ecotrackhq/ecotrack/pkg/event"
	grpcserver "github.com/ecotrackhq/ecotrack/pkg/grpc"
	"github.com/ecotrackhq/ecotrack/pkg/logger"
	"github.com/ecotrackhq/ecotrack/pkg/migration"
	"github.com/ecotrackhq/ecotrack/pkg/queue"
	"github.com/ecotrackhq/ecotrack/pkg/schedule"
	"github.com/ecotrackhq/ecotrack/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Boot loads config and connects every backing service. Safe to call
// from any command that needs a wired environment.
func Boot() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}

	cache.Connect()
	storage.Connect()

	// The queue runs on Redis when it is up; jobs fall back to the
	// in-memory driver otherwise, which is fine for dev.
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)

	jobs.Register()
	return nil
}

// Start boots the application and serves until SIGINT or SIGTERM.
func Start() error {
	if err := Boot(); err != nil {
		return err
	}

	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	httpKernel := kernel.NewHTTPKernel(database.DB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, 5)

	// Keep the dashboard stats cache warm so the first admin hit of
	// the minute never pays for seven counts.
	schedule.EveryMinute().Name("stats:refresh").Run(func() {
		if err := httpKernel.Stats().Refresh(); err != nil {
			logger.Warn("stats refresh failed", "error", err)
		}
	})
	schedule.Start(ctx)

	grpcSrv := startGRPC()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	grpcserver.Stop(grpcSrv)
	event.Flush()
	logger.Shutdown()
	return err
}

func startGRPC() *grpc.Server {
	port := config.GRPCPort()
	if port == "" {
		return nil
	}

	srv, _, err := grpcserver.Start(port)
	if err != nil {
		logger.Error("grpc listener failed, continuing without it", "error", err)
		return nil
	}
	return srv
}
