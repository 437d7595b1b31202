// Package gauth provides OAuth2 credentials for the Google-backed adapters.
// Tokens are checked lazily per call: a valid cached token is used as-is, an
// expired one with a refresh token is silently refreshed and re-persisted,
// and anything else surfaces as a credential error pointing the operator at
// the interactive consent flow. Concurrent requests share a single refresh.
package gauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"

	"github.com/artermis-ops/agency-mcp/internal/models"
)

// Scopes requested during consent: read and send mail, create events.
var Scopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/calendar.events",
}

// Provider owns the cached token and its on-disk copy.
type Provider struct {
	conf      *oauth2.Config
	tokenFile string

	mu     sync.Mutex
	cached *oauth2.Token

	group singleflight.Group
}

// NewProvider reads an installed-app client secrets file.
func NewProvider(credentialsFile, tokenFile string, scopes ...string) (*Provider, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}
	conf, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}
	return NewFromConfig(conf, tokenFile), nil
}

// NewFromConfig wraps an already-built oauth2 config.
func NewFromConfig(conf *oauth2.Config, tokenFile string) *Provider {
	return &Provider{conf: conf, tokenFile: tokenFile}
}

// Token returns a valid token, refreshing and re-persisting the cached one
// when it has expired.
func (p *Provider) Token(ctx context.Context) (*oauth2.Token, error) {
	p.mu.Lock()
	tok := p.cached
	p.mu.Unlock()

	if tok == nil {
		loaded, err := p.loadFile()
		if err != nil {
			return nil, &models.CredentialError{
				Message: "no cached credential; run the auth command to authorize",
			}
		}
		p.mu.Lock()
		p.cached = loaded
		p.mu.Unlock()
		tok = loaded
	}

	if tok.Valid() {
		return tok, nil
	}
	if tok.RefreshToken == "" {
		return nil, &models.CredentialError{
			Message: "credential expired and no refresh token cached; run the auth command to reauthorize",
		}
	}

	// The refresh result is shared across callers, so it must not die with
	// whichever request happened to initiate it.
	refreshCtx := context.WithoutCancel(ctx)
	v, err, _ := p.group.Do("refresh", func() (any, error) {
		// A concurrent caller may have refreshed while we waited.
		p.mu.Lock()
		current := p.cached
		p.mu.Unlock()
		if current != nil && current.Valid() {
			return current, nil
		}

		fresh, err := p.conf.TokenSource(refreshCtx, tok).Token()
		if err != nil {
			return nil, &models.CredentialError{Message: "token refresh failed: " + err.Error()}
		}
		if err := p.store(fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*oauth2.Token), nil
}

// Client returns an HTTP client that attaches a freshly-checked token to
// every request.
func (p *Provider) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, &lazySource{ctx: ctx, p: p})
}

// AuthURL returns the consent URL for the interactive flow.
func (p *Provider) AuthURL() string {
	return p.conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for the first token and persists it.
func (p *Provider) Exchange(ctx context.Context, code string) error {
	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	return p.store(tok)
}

func (p *Provider) loadFile() (*oauth2.Token, error) {
	b, err := os.ReadFile(p.tokenFile)
	if err != nil {
		return nil, err
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(b, tok); err != nil {
		return nil, fmt.Errorf("parse token cache: %w", err)
	}
	return tok, nil
}

func (p *Provider) store(tok *oauth2.Token) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.WriteFile(p.tokenFile, b, 0o600); err != nil {
		return fmt.Errorf("persist token cache: %w", err)
	}
	p.mu.Lock()
	p.cached = tok
	p.mu.Unlock()
	return nil
}

// lazySource re-runs the validity check on every request, so a token that
// expires mid-run is refreshed instead of failing until restart.
type lazySource struct {
	ctx context.Context
	p   *Provider
}

func (s *lazySource) Token() (*oauth2.Token, error) {
	return s.p.Token(s.ctx)
}
