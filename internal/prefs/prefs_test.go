package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestAccount_MissingFileReturnsEmpty(t *testing.T) {
	p := New(NewFileStore(filepath.Join(t.TempDir(), "nested"), Namespace))
	got, err := p.Account(context.Background())
	if err != nil {
		t.Fatalf("Account error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty account, got %q", got)
	}
}

func TestPutAccount_RoundTripAndOverwrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p := New(NewFileStore(dir, Namespace))

	if err := p.PutAccount(ctx, "a@example.com"); err != nil {
		t.Fatalf("PutAccount error: %v", err)
	}
	if err := p.PutAccount(ctx, "b@example.com"); err != nil {
		t.Fatalf("PutAccount overwrite error: %v", err)
	}
	// fresh store reads from disk
	got, err := New(NewFileStore(dir, Namespace)).Account(ctx)
	if err != nil {
		t.Fatalf("Account error: %v", err)
	}
	if got != "b@example.com" {
		t.Fatalf("got %q, want b@example.com", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "settings.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected no tmp file, stat err=%v", err)
	}
}

func TestPutAccount_EmptyIgnored(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p := New(NewFileStore(dir, Namespace))
	if err := p.PutAccount(ctx, "a@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := p.PutAccount(ctx, ""); err != nil {
		t.Fatalf("empty PutAccount should not fail: %v", err)
	}
	got, _ := p.Account(ctx)
	if got != "a@example.com" {
		t.Fatalf("empty write changed account to %q", got)
	}
}

func TestToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := New(NewFileStore(t.TempDir(), Namespace))
	if tok, err := p.Token(ctx); err != nil || tok != nil {
		t.Fatalf("expected nil token, got %v, %v", tok, err)
	}
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := p.PutToken(ctx, &oauth2.Token{AccessToken: "at", RefreshToken: "rt", Expiry: exp}); err != nil {
		t.Fatal(err)
	}
	tok, err := p.Token(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if tok.AccessToken != "at" || tok.RefreshToken != "rt" || !tok.Expiry.Equal(exp) {
		t.Fatalf("unexpected token: %#v", tok)
	}
}

func TestFileStore_CorruptFileReturnsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(dir, Namespace).Get(context.Background(), KeyAccount); err == nil {
		t.Fatalf("expected decode error")
	}
}
