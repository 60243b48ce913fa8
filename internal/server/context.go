// Package server holds the shared state behind MCP tool handlers: the
// credential store, the lazily built Gmail client, and the
// observability plumbing. It also runs the standalone metrics server.
package server

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/jsievers/mailbridge/internal/auth"
	"github.com/jsievers/mailbridge/internal/gmail"
	"github.com/jsievers/mailbridge/internal/instrumentation"
)

// ServerContext carries the capabilities tool handlers need. The Gmail
// client is built on first use so `mailbridge serve` can start before
// credentials exist; the first tool call then triggers Obtain.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	store    *auth.Store
	logger   *slog.Logger
	provider *instrumentation.Provider
	audit    *instrumentation.AuditLogger

	mu          sync.RWMutex
	gmailClient *gmail.Client
	shutdown    bool
}

// NewServerContext wires the server state together.
func NewServerContext(ctx context.Context, store *auth.Store, logger *slog.Logger, provider *instrumentation.Provider, audit *instrumentation.AuditLogger) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	if logger == nil {
		logger = slog.Default()
	}
	sc := &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		store:    store,
		logger:   logger,
		provider: provider,
		audit:    audit,
	}
	if store != nil {
		store.OnRefresh = func(result string) {
			sc.Metrics().RecordOAuthRefresh(sc.ctx, result)
		}
		baseConsent := store.Consent
		store.Consent = func(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
			tok, err := baseConsent(ctx, cfg)
			if err == nil {
				sc.Audit().ConsentCompleted()
			}
			return tok, err
		}
	}
	return sc
}

// Context returns the server lifetime context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Logger returns the shared logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Store returns the credential store.
func (sc *ServerContext) Store() *auth.Store {
	return sc.store
}

// Metrics returns the metrics recorder. Safe to call even when
// instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	if sc.provider == nil {
		return &instrumentation.Metrics{}
	}
	return sc.provider.Metrics()
}

// Audit returns the audit logger, or a disabled one when none was
// configured.
func (sc *ServerContext) Audit() *instrumentation.AuditLogger {
	if sc.audit == nil {
		return instrumentation.NewAuditLogger(sc.logger, instrumentation.Config{})
	}
	return sc.audit
}

// GmailClient returns the Gmail client, building and caching it on the
// first call. Building it obtains credentials, so this may launch the
// interactive consent flow.
func (sc *ServerContext) GmailClient(ctx context.Context) (*gmail.Client, error) {
	sc.mu.RLock()
	client := sc.gmailClient
	sc.mu.RUnlock()
	if client != nil {
		return client, nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.gmailClient != nil {
		return sc.gmailClient, nil
	}

	httpClient, err := sc.store.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	client, err = gmail.NewClient(sc.ctx, httpClient, sc.logger)
	if err != nil {
		return nil, err
	}
	client.SetMetrics(sc.Metrics())
	sc.gmailClient = client
	return client, nil
}

// SetGmailClient injects a client, used by tests.
func (sc *ServerContext) SetGmailClient(client *gmail.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.gmailClient = client
}

// IsShutdown reports whether Shutdown has run.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Idempotent.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}
