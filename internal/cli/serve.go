package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/rechat/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/rechat/pkg/adapters/mcp"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// NewHTTPHandler builds the HTTP API for app.
func NewHTTPHandler(app *App) http.Handler {
	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(app.Logger),
		httpAdapter.WithMaxInputSize(app.Config.MaxInputSize),
	}
	if app.Config.HTTP.Metrics {
		opts = append(opts, httpAdapter.WithMetrics(app.Metrics.Handler()))
	}
	return httpAdapter.NewHandler(app.Engine, app.Sessions, opts...)
}

// Serve runs the HTTP API on ln until ctx is done.
func Serve(ctx context.Context, app *App, ln net.Listener) error {
	srv := httpAdapter.NewHTTPServer(app.Config.HTTP.Port, NewHTTPHandler(app))

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("Starting rechat server", "address", ln.Addr().String(), "store", app.Config.Store)
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		app.Logger.Info("rechat server stopped gracefully")
		return nil
	}
}

// NewMCPServer builds the MCP adapter for app.
func NewMCPServer(app *App) *mcpAdapter.Server {
	return mcpAdapter.NewServer(app.Engine,
		mcpAdapter.WithSessions(app.Sessions),
		mcpAdapter.WithLogger(app.Logger),
		mcpAdapter.WithMaxInputSize(app.Config.MaxInputSize),
	)
}
