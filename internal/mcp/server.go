package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/srcnav/internal/catalog"
	"github.com/mvp-joe/srcnav/internal/navigator"
	"github.com/mvp-joe/srcnav/internal/source"
)

// Transports accepted by ServerConfig.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// shutdownTimeout bounds graceful shutdown of the http transport.
const shutdownTimeout = 5 * time.Second

// ServerConfig contains configuration for the MCP server.
type ServerConfig struct {
	Name      string
	Version   string
	Transport string // stdio or http
	Addr      string // listen address for http
	Tools     ToolOptions
}

// DefaultServerConfig returns default MCP server configuration.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Name:      "srcnav",
		Version:   "dev",
		Transport: TransportStdio,
		Addr:      ":3000",
		Tools: ToolOptions{
			DefaultPackage: source.DefaultPackageName,
			LineThreshold:  navigator.DefaultLineThreshold,
			Placeholder:    catalog.Placeholder,
		},
	}
}

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config  *ServerConfig
	logger  *slog.Logger
	metrics *ToolMetrics
	mcp     *server.MCPServer
}

// NewMCPServer creates a server exposing the navigation tools.
func NewMCPServer(config *ServerConfig, nav Navigator, logger *slog.Logger) (*MCPServer, error) {
	if config == nil {
		config = DefaultServerConfig()
	}
	if nav == nil {
		return nil, fmt.Errorf("navigator is required")
	}
	switch config.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return nil, fmt.Errorf("unsupported transport %q", config.Transport)
	}
	if logger == nil {
		logger = slog.Default()
	}

	metrics := NewToolMetrics()
	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(withObservability(logger, metrics)),
	)

	AddComponentFileListTool(mcpServer, nav, config.Tools)
	AddFileCodeTool(mcpServer, nav, config.Tools)
	AddFunctionCodeTool(mcpServer, nav, config.Tools)

	return &MCPServer{
		config:  config,
		logger:  logger,
		metrics: metrics,
		mcp:     mcpServer,
	}, nil
}

// Metrics returns the per-tool call statistics.
func (s *MCPServer) Metrics() *ToolMetrics {
	return s.metrics
}

// Serve starts the configured transport and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if s.config.Transport == TransportHTTP {
		return s.serveHTTP(ctx, sigCh)
	}
	return s.serveStdio(ctx, sigCh)
}

func (s *MCPServer) serveStdio(ctx context.Context, sigCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting MCP server", "transport", TransportStdio, "name", s.config.Name)
		errCh <- server.ServeStdio(s.mcp)
	}()

	select {
	case <-sigCh:
		s.logger.Info("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MCPServer) serveHTTP(ctx context.Context, sigCh <-chan os.Signal) error {
	httpServer := server.NewStreamableHTTPServer(s.mcp)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting MCP server", "transport", TransportHTTP, "addr", s.config.Addr, "name", s.config.Name)
		if err := httpServer.Start(s.config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	var runErr error
	select {
	case <-sigCh:
		s.logger.Info("received shutdown signal, stopping")
	case runErr = <-errCh:
		return runErr
	case <-ctx.Done():
		runErr = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http transport: %w", err)
	}
	return runErr
}
