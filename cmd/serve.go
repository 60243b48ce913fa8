package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/jsievers/mailbridge/internal/instrumentation"
	"github.com/jsievers/mailbridge/internal/logging"
	"github.com/jsievers/mailbridge/internal/prompts"
	"github.com/jsievers/mailbridge/internal/resources"
	"github.com/jsievers/mailbridge/internal/server"
	"github.com/jsievers/mailbridge/internal/tools/gmail_tools"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	metricsEnabled bool
	metricsAddr    string
}

// newServeCmd creates the serve command that runs the MCP server over
// stdio. There is deliberately no network transport: the server holds
// full access to a Gmail account, and exposing that on a listening port
// would require an inbound authorization layer this project does not
// carry. Remote access belongs behind an MCP-aware OAuth proxy.
func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run mailbridge as an MCP server over stdio",
		Long: `Runs the MCP server exposing Gmail tools, resources and prompts.

The server communicates over stdin/stdout for a local MCP client;
stdout carries the protocol and all logging goes to stderr. Prometheus
metrics can be served on a separate local port.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.metricsEnabled, "metrics-enabled", false, "Serve Prometheus metrics on a dedicated port")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Listen address for the metrics server")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cliLogger(cmd)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("initializing instrumentation: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	audit := instrumentation.NewAuditLogger(logger, instrConfig)

	store, err := newStore(cmd, logger)
	if err != nil {
		return err
	}

	// The Gmail client is created lazily on first use, so the server
	// starts even before credentials exist. The auth command (or the
	// first tool call) completes the consent flow.
	sc := server.NewServerContext(ctx, store, logger, provider, audit)
	defer sc.Shutdown()

	s := mcpserver.NewMCPServer(
		"mailbridge",
		version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	if err := gmail_tools.RegisterGmailTools(s, sc); err != nil {
		return fmt.Errorf("registering tools: %w", err)
	}
	if err := resources.RegisterMailResources(s, sc); err != nil {
		return fmt.Errorf("registering resources: %w", err)
	}
	prompts.RegisterPrompts(s)

	if opts.metricsEnabled {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:     opts.metricsAddr,
			Provider: provider,
		})
		if err != nil {
			return fmt.Errorf("creating metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", logging.Err(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	logger.Info("starting MCP server on stdio transport")
	errCh := make(chan error, 1)
	go func() {
		errCh <- mcpserver.ServeStdio(s)
	}()

	select {
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	return nil
}
