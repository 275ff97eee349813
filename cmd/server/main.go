package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/label"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/todo"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/user"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/config"
	todohttp "github.com/Flip451/t-rust-book-akifumi-sato/internal/http"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/http/handler"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/infrastructure/persistence/memory"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/infrastructure/persistence/postgres"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/infrastructure/persistence/sqlite"
	"github.com/Flip451/t-rust-book-akifumi-sato/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		// Print to stderr directly: slog may not be configured if
		// startup failed early.
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context for all normal operations, cancelled on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Init observability (logger, tracer, meter). Exporter endpoints and
	// headers come from the standard OTEL_* env vars.
	lp, logger, err := observability.InitLogger(ctx, cfg.Observability.ServiceName, cfg.Observability.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		// Use a timeout to prevent hanging if collector is unreachable
		shutdownCtx, cancel := newShutdownContext()
		defer cancel()
		if err := lp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown logger provider", "error", err)
		}
	}()
	slog.SetDefault(logger)

	tp, err := observability.InitTracerProvider(ctx, cfg.Observability.ServiceName, cfg.Observability.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := newShutdownContext()
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown tracer provider", "error", err)
		}
	}()

	mp, err := observability.InitMeterProvider(ctx, cfg.Observability.ServiceName, cfg.Observability.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := newShutdownContext()
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown meter provider", "error", err)
		}
	}()

	slog.InfoContext(ctx, "starting todo service", "storage", cfg.Storage.Type)

	todoRepo, labelRepo, userRepo, labelFinder, closeStore, err := newStores(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer closeStore()

	todoService := todo.NewService(todoRepo, labelFinder)
	labelService := label.NewService(labelRepo)
	userService := user.NewService(userRepo)

	api := handler.NewServer(todoService, labelService, userService)

	server := todohttp.NewAPIServer(api, todohttp.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		OTelEnabled:       cfg.Observability.OTelEnabled,
		ServiceName:       cfg.Observability.ServiceName,
	})

	serveErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "HTTP server listening", "port", cfg.HTTP.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	// Fresh context: the root context is already cancelled, but the
	// server still needs a window to drain in-flight requests.
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// newStores builds the repositories for the configured storage backend.
// The returned close function releases backend resources and is a no-op
// for the in-memory store.
func newStores(ctx context.Context, cfg config.StorageConfig) (todo.Repository, label.Repository, user.Repository, todo.LabelFinder, func(), error) {
	switch cfg.Type {
	case config.StorageMemory:
		store := memory.NewStore()
		return store, store.Labels(), store.Users(), store.Labels(), func() {}, nil

	case config.StoragePostgres:
		store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			AutoMigrate:     cfg.AutoMigrate,
		})
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		slog.InfoContext(ctx, "postgres storage initialized", "url", maskPassword(cfg.DSN))
		closeFn := func() {
			if err := store.Close(); err != nil {
				slog.Error("failed to close postgres store", "error", err)
			}
		}
		return store, store.Labels(), store.Users(), store.Labels(), closeFn, nil

	case config.StorageSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		slog.InfoContext(ctx, "sqlite storage initialized", "path", cfg.SQLitePath)
		closeFn := func() {
			if err := store.Close(); err != nil {
				slog.Error("failed to close sqlite store", "error", err)
			}
		}
		return store, store.Labels(), store.Users(), store.Labels(), closeFn, nil

	default:
		return nil, nil, nil, nil, nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// newShutdownContext creates a fresh context with a timeout for cleanup
// operations running after the root context is already cancelled.
func newShutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "<unparseable connection string>"
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
