// Package prefs persists small per-user settings such as the signed-in account.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
)

const (
	Namespace = "settings"

	KeyAccount = "account"
	KeyToken   = "token"
)

// Store is a string key-value store scoped to one namespace.
// Get returns "" and a nil error for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// Prefs wraps a Store with typed accessors.
type Prefs struct {
	store Store
}

func New(s Store) *Prefs {
	return &Prefs{store: s}
}

// Account returns the selected account name, or "" if none was stored.
func (p *Prefs) Account(ctx context.Context) (string, error) {
	return p.store.Get(ctx, KeyAccount)
}

// PutAccount stores the selected account name. An empty name is ignored.
func (p *Prefs) PutAccount(ctx context.Context, account string) error {
	if account == "" {
		return nil
	}
	return p.store.Put(ctx, KeyAccount, account)
}

// Token returns the stored OAuth token, or nil if none was stored.
func (p *Prefs) Token(ctx context.Context) (*oauth2.Token, error) {
	raw, err := p.store.Get(ctx, KeyToken)
	if err != nil || raw == "" {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &tok, nil
}

func (p *Prefs) PutToken(ctx context.Context, tok *oauth2.Token) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	return p.store.Put(ctx, KeyToken, string(b))
}
