package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/Augustwise/fullstack-task-manager/internal/auth"
	config "github.com/Augustwise/fullstack-task-manager/internal/configs"
	httpapi "github.com/Augustwise/fullstack-task-manager/internal/http"
	middleware "github.com/Augustwise/fullstack-task-manager/internal/http/middlewares"
	repository "github.com/Augustwise/fullstack-task-manager/internal/repositories"
	"github.com/Augustwise/fullstack-task-manager/internal/services"
)

const (
	cleanupWorkers   = 2
	cleanupQueueSize = 256
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task manager HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		database, closeDB, err := openDatabase(cfg, true)
		if err != nil {
			return err
		}
		defer closeDB()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := newStorage(ctx, cfg)
		if err != nil {
			return err
		}

		limits, err := newLimiters(cfg, logger)
		if err != nil {
			return err
		}
		defer limits.Close()

		cleanup := services.NewCleanupPool(store, cleanupWorkers, cleanupQueueSize, logger)

		sessions := auth.NewSessionManager(cfg.JWTSecret)
		cookie := middleware.SessionCookie{
			Name:   cfg.SessionCookieName,
			Secure: cfg.SessionCookieSecure,
			MaxAge: int(sessions.TTL().Seconds()),
		}

		authService := services.NewAuthService(
			repository.NewAccountRepository(database),
			auth.NewPasswordHasher(cfg.BcryptCost),
			logger,
		)
		taskService := services.NewTaskService(repository.NewTaskRepository(database), store, cleanup, logger)

		sqlDB, err := database.DB()
		if err != nil {
			return err
		}

		e := httpapi.NewServer(logger)
		handler := httpapi.NewHandler(authService, taskService, sessions, cookie, sqlDB.PingContext, logger)
		httpapi.Register(e, handler, httpapi.RouteOptions{
			Limiter:     limits.global,
			AuthLimiter: limits.auth,
			Sessions:    sessions,
			Cookie:      cookie,
			LoginURL:    cfg.LoginPageURL,
			Logger:      logger,
		})

		logger.Info("HTTP server listening", "addr", cfg.AppURL, "storage", store.Provider())
		return runServer(ctx, e, cfg.AppURL, cfg.ShutdownTimeout(), logger, cleanup.Shutdown)
	},
}

func init() {
	flags := serveCmd.Flags()
	flags.String("host", "0.0.0.0", "address to listen on")
	flags.String("port", "3000", "port to listen on")
	flags.String("storage-driver", "local", "attachment storage (local, s3)")
	flags.String("upload-dir", "uploads", "directory for local attachment storage")
	flags.String("redis-addr", "", "redis address for shared rate limiting; empty keeps counters in process")

	for key, name := range map[string]string{
		"app_host":       "host",
		"app_port":       "port",
		"storage_driver": "storage-driver",
		"upload_dir":     "upload-dir",
		"redis_addr":     "redis-addr",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(serveCmd)
}

// runServer serves until ctx is done or the listener fails, then shuts e
// down and runs drain with the same deadline. A listener failure is
// returned so the process exits non-zero.
func runServer(
	ctx context.Context,
	e *echo.Echo,
	addr string,
	timeout time.Duration,
	logger *slog.Logger,
	drain func(context.Context),
) error {
	startErr := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErr <- err
		}
		close(startErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-startErr:
		if ok {
			logger.Error("server stopped", "error", err)
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if drain != nil {
		drain(shutdownCtx)
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("HTTP server shut down gracefully")
	return nil
}
