package auth

import (
	"golang.org/x/oauth2"

	"github.com/jsievers/mailbridge/internal/logging"
)

// persistingTokenSource wraps a token source and writes every refreshed
// token back to disk, so a long-running server survives access token
// expiry without re-consent.
type persistingTokenSource struct {
	base  oauth2.TokenSource
	store *Store
	last  *oauth2.Token
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.base.Token()
	if err != nil {
		p.store.notifyRefresh("error")
		return nil, err
	}
	if p.last == nil || tok.AccessToken != p.last.AccessToken {
		p.store.notifyRefresh("success")
		p.store.mu.Lock()
		saveErr := p.store.saveToken(tok)
		p.store.mu.Unlock()
		if saveErr != nil {
			// Keep serving with the in-memory token; persistence failure
			// only costs a re-consent after restart.
			p.store.logger.Warn("failed to persist refreshed token",
				logging.Operation("auth.TokenSource"), logging.Err(saveErr))
		}
		p.last = tok
	}
	return tok, nil
}
