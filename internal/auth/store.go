// Package auth implements the credential store: it loads and persists the
// OAuth2 token, refreshes it when expired, and runs the interactive
// consent flow when no token exists. The OAuth client id/secret are read
// from an externally supplied credentials.json (Google Cloud Console
// format); the token lives next to it in token.json.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jsievers/mailbridge/internal/logging"
	"github.com/jsievers/mailbridge/internal/mailerr"
)

// ConsentFunc runs an interactive consent flow and returns the granted
// token. It is a field on Store so tests can substitute it.
type ConsentFunc func(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)

// Store is the credential store. All token access goes through its mutex
// so concurrent invocations perform at most one refresh at a time, and at
// most one interactive consent happens per process lifetime.
type Store struct {
	mu              sync.Mutex
	configDir       string
	credentialsFile string
	logger          *slog.Logger

	// Consent runs the interactive flow. Defaults to a local-callback
	// browser flow; replaced in tests.
	Consent ConsentFunc

	// OnRefresh, when set, is called with "success" or "error" after
	// each background token refresh attempt. Set before first use.
	OnRefresh func(result string)

	consentDone bool
}

// NewStore creates a credential store.
//
// configDir defaults to $XDG_CONFIG_HOME/mailbridge (or
// ~/.config/mailbridge). credentialsFile defaults to
// <configDir>/credentials.json.
func NewStore(configDir, credentialsFile string, logger *slog.Logger) (*Store, error) {
	if configDir == "" {
		xdg := os.Getenv("XDG_CONFIG_HOME")
		if xdg == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("could not determine home directory: %w", err)
			}
			xdg = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(xdg, "mailbridge")
	}
	if credentialsFile == "" {
		credentialsFile = filepath.Join(configDir, "credentials.json")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		configDir:       configDir,
		credentialsFile: credentialsFile,
		logger:          logger,
	}
	s.Consent = s.browserConsent
	return s, nil
}

// ConfigDir returns the configuration directory path.
func (s *Store) ConfigDir() string {
	return s.configDir
}

func (s *Store) notifyRefresh(result string) {
	if s.OnRefresh != nil {
		s.OnRefresh(result)
	}
}

func (s *Store) tokenPath() string {
	return filepath.Join(s.configDir, "token.json")
}

// HasToken reports whether a persisted token exists. It says nothing
// about validity; Obtain handles refresh.
func (s *Store) HasToken() bool {
	_, err := os.Stat(s.tokenPath())
	return err == nil
}

// oauthConfig reads credentials.json and builds the oauth2.Config.
func (s *Store) oauthConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(s.credentialsFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, mailerr.Newf(mailerr.Auth, "auth.oauthConfig",
			"credentials file not found at %s; download it from the Google Cloud Console", s.credentialsFile)
	}
	if err != nil {
		return nil, mailerr.Wrap(mailerr.Auth, "auth.oauthConfig", err)
	}

	cfg, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, mailerr.Wrap(mailerr.Auth, "auth.oauthConfig",
			fmt.Errorf("parsing credentials file: %w", err))
	}
	return cfg, nil
}

func (s *Store) readToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.tokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err != nil {
		return nil, mailerr.Wrap(mailerr.Auth, "auth.readToken",
			fmt.Errorf("token file unreadable: %w", err))
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, mailerr.Wrap(mailerr.Auth, "auth.readToken",
			fmt.Errorf("token file corrupt: %w", err))
	}
	return &tok, nil
}

// saveToken persists the token with owner-only permissions. Callers hold
// the store mutex.
func (s *Store) saveToken(tok *oauth2.Token) error {
	if err := os.MkdirAll(s.configDir, 0o700); err != nil {
		return mailerr.Wrap(mailerr.Auth, "auth.saveToken", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return mailerr.Wrap(mailerr.Auth, "auth.saveToken", err)
	}
	if err := os.WriteFile(s.tokenPath(), data, 0o600); err != nil {
		return mailerr.Wrap(mailerr.Auth, "auth.saveToken", err)
	}
	return nil
}

// Obtain returns a valid (non-expired) token, refreshing or launching
// interactive consent as needed. Refreshed tokens are persisted before
// Obtain returns. At most one interactive consent runs per process.
func (s *Store) Obtain(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.readToken()
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s.consentLocked(ctx)
	case err != nil:
		return nil, err
	}

	if tok.Valid() {
		return tok, nil
	}

	if tok.RefreshToken != "" {
		cfg, err := s.oauthConfig()
		if err != nil {
			return nil, err
		}
		fresh, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			if err := s.saveToken(fresh); err != nil {
				return nil, err
			}
			s.notifyRefresh("success")
			s.logger.Debug("refreshed OAuth token", logging.Operation("auth.Obtain"))
			return fresh, nil
		}
		s.notifyRefresh("error")
		s.logger.Warn("token refresh failed, falling back to consent",
			logging.Operation("auth.Obtain"), logging.Err(err))
	}

	return s.consentLocked(ctx)
}

// consentLocked runs the interactive consent flow. Callers hold the
// store mutex.
func (s *Store) consentLocked(ctx context.Context) (*oauth2.Token, error) {
	if s.consentDone {
		return nil, mailerr.New(mailerr.Auth, "auth.Obtain",
			"interactive consent already attempted in this process")
	}
	s.consentDone = true

	cfg, err := s.oauthConfig()
	if err != nil {
		return nil, err
	}

	tok, err := s.Consent(ctx, cfg)
	if err != nil {
		return nil, mailerr.Wrap(mailerr.Auth, "auth.Obtain", err)
	}
	if err := s.saveToken(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// TokenSource returns a token source that refreshes transparently and
// persists every refreshed token back to token.json.
func (s *Store) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := s.Obtain(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.oauthConfig()
	if err != nil {
		return nil, err
	}
	return oauth2.ReuseTokenSource(tok, &persistingTokenSource{
		base:  cfg.TokenSource(ctx, tok),
		store: s,
		last:  tok,
	}), nil
}

// HTTPClient returns an HTTP client that injects the OAuth token into
// every request, refreshing and persisting as needed.
func (s *Store) HTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := s.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

// browserConsent runs the OAuth2 authorization code flow with a local
// callback server. The URL is printed to stderr: stdout belongs to
// command output and, in serve mode, to the stdio transport.
func (s *Store) browserConsent(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("starting local listener: %w", err)
	}
	defer listener.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	type authResult struct {
		code string
		err  error
	}
	resultCh := make(chan authResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if errMsg := r.URL.Query().Get("error"); errMsg != "" {
			resultCh <- authResult{err: fmt.Errorf("consent declined: %s", errMsg)}
			fmt.Fprintf(w, "Authorization failed: %s. You can close this tab.", errMsg)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			resultCh <- authResult{err: errors.New("no authorization code received")}
			fmt.Fprint(w, "No authorization code received. You can close this tab.")
			return
		}
		resultCh <- authResult{code: code}
		fmt.Fprint(w, "Authorization successful! You can close this tab.")
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			resultCh <- authResult{err: fmt.Errorf("callback server error: %w", err)}
		}
	}()
	defer server.Shutdown(ctx)

	authURL := cfg.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintf(os.Stderr, "\nOpen this URL in your browser to authorize mailbridge:\n\n%s\n\nWaiting for authorization...\n", authURL)

	select {
	case result := <-resultCh:
		if result.err != nil {
			return nil, result.err
		}
		tok, err := cfg.Exchange(ctx, result.code)
		if err != nil {
			return nil, fmt.Errorf("exchanging auth code for token: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Authorization successful.")
		return tok, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
