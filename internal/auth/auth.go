// Package auth provides the Google OAuth2 credential used for Drive access
// and stream URLs.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/claes/dirigible/internal/prefs"
)

// DriveReadOnlyScope is the only scope requested.
const DriveReadOnlyScope = "https://www.googleapis.com/auth/drive.readonly"

var (
	ErrNoToken      = errors.New("no stored token")
	ErrTokenExpired = errors.New("token expired and cannot be refreshed")
)

// RecoverableError means the user has to complete a consent step at URL
// before the failed operation can succeed.
type RecoverableError struct {
	URL string
	Err error
}

func (e *RecoverableError) Error() string {
	return fmt.Sprintf("authorization required: %v", e.Err)
}

func (e *RecoverableError) Unwrap() error { return e.Err }

// NewConfig returns an OAuth2 config for an installed or web client.
func NewConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{DriveReadOnlyScope},
		Endpoint:     google.Endpoint,
	}
}

// Credential issues access tokens for the signed-in account.
// Tokens are persisted through prefs and refreshed on demand.
type Credential struct {
	cfg    *oauth2.Config
	prefs  *prefs.Prefs
	client *http.Client
	state  string

	mu sync.Mutex
}

// NewCredential returns a Credential. client is used for token endpoint calls;
// nil means http.DefaultClient.
func NewCredential(cfg *oauth2.Config, p *prefs.Prefs, client *http.Client) *Credential {
	return &Credential{cfg: cfg, prefs: p, client: client, state: newState()}
}

func newState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// AccountName returns the selected account, "" when nobody signed in.
func (c *Credential) AccountName(ctx context.Context) (string, error) {
	return c.prefs.Account(ctx)
}

// AuthCodeURL returns the consent page URL.
func (c *Credential) AuthCodeURL() string {
	return c.cfg.AuthCodeURL(c.state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ValidState reports whether state matches the one embedded in AuthCodeURL.
func (c *Credential) ValidState(state string) bool {
	return state != "" && state == c.state
}

// Exchange trades an authorization code for a token and stores it.
func (c *Credential) Exchange(ctx context.Context, code string) error {
	tok, err := c.cfg.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}
	if err := c.prefs.PutToken(ctx, tok); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Token returns a valid access token, refreshing it when needed.
func (c *Credential) Token(ctx context.Context) (string, error) {
	tok, err := c.TokenSource(ctx).Token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// TokenSource returns a token source bound to ctx. Failures that need the
// user to consent again are reported as *RecoverableError.
func (c *Credential) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, c: c}
}

// Client returns an HTTP client that authorizes requests with this credential.
func (c *Credential) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(c.oauthContext(ctx), c.TokenSource(ctx))
}

func (c *Credential) oauthContext(ctx context.Context) context.Context {
	if c.client == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, c.client)
}

type tokenSource struct {
	ctx context.Context
	c   *Credential
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.prefs.Token(s.ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, &RecoverableError{URL: c.AuthCodeURL(), Err: ErrNoToken}
	}
	if stored.Valid() {
		return stored, nil
	}
	if stored.RefreshToken == "" {
		return nil, &RecoverableError{URL: c.AuthCodeURL(), Err: ErrTokenExpired}
	}
	fresh, err := c.cfg.TokenSource(c.oauthContext(s.ctx), stored).Token()
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return nil, &RecoverableError{URL: c.AuthCodeURL(), Err: err}
		}
		return nil, err
	}
	if fresh.AccessToken != stored.AccessToken {
		if err := c.prefs.PutToken(s.ctx, fresh); err != nil {
			slog.Warn("unable to store refreshed token", "err", err)
		}
	}
	return fresh, nil
}
