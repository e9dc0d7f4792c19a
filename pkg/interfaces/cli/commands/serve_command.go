package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/prettybom/pkg/application/services"
	"github.com/vsinha/prettybom/pkg/infrastructure/config"
	"github.com/vsinha/prettybom/pkg/infrastructure/events"
	"github.com/vsinha/prettybom/pkg/infrastructure/logging"
	"github.com/vsinha/prettybom/pkg/infrastructure/metrics"
	"github.com/vsinha/prettybom/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/prettybom/pkg/interfaces/web"
)

// ShutdownTimeout bounds how long in-flight requests may take once the server stops
const ShutdownTimeout = 10 * time.Second

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	// EnvFiles are loaded before the environment is read; ".env" when empty
	EnvFiles []string
	// Overrides of the environment settings
	Addr     string
	LogLevel string
}

// ServeCommand runs the HTTP service until its context is cancelled
type ServeCommand struct {
	config ServeConfig
}

// NewServeCommand creates a new serve command with the given configuration
func NewServeCommand(config ServeConfig) *ServeCommand {
	return &ServeCommand{config: config}
}

// Execute starts the server and shuts it down gracefully when ctx is done
func (c *ServeCommand) Execute(ctx context.Context) error {
	settings, err := c.settings()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(settings.Logging())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	recorder := metrics.NewRecorder()
	service := services.NewBOMService(
		memory.NewBOMManager(),
		events.NewInMemoryEventStore(logger),
		recorder,
		logger,
		nil,
	)
	server := web.NewServer(service, recorder, logger, settings.MaxUploadBytes)

	listener, err := net.Listen("tcp", settings.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", settings.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("server stopped", zap.String("addr", listener.Addr().String()))
	return nil
}

func (c *ServeCommand) settings() (config.Settings, error) {
	settings, err := config.LoadSettings(c.config.EnvFiles...)
	if err != nil {
		return config.Settings{}, err
	}
	if c.config.Addr != "" {
		settings.Addr = c.config.Addr
	}
	if c.config.LogLevel != "" {
		settings.LogLevel = c.config.LogLevel
	}
	return settings, nil
}
