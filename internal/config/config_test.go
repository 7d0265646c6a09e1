package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("DIRIGIBLE_STATE", "")
	t.Setenv("PORT", "")
	t.Setenv("DIRIGIBLE_DEBUG", "")
	c := FromEnv()
	if c.StateDir != "/var/lib/dirigible" || c.Port != "8080" || c.Debug {
		t.Fatalf("unexpected defaults: %#v", c)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DIRIGIBLE_STATE", "/tmp/x")
	t.Setenv("DIRIGIBLE_REDIS_DB", "3")
	t.Setenv("DIRIGIBLE_DEBUG", "yes")
	t.Setenv("DIRIGIBLE_CHROMECAST", "tv.local")
	c := FromEnv()
	if c.StateDir != "/tmp/x" || c.RedisDB != 3 || !c.Debug || c.Chromecast != "tv.local" {
		t.Fatalf("unexpected config: %#v", c)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{StateDir: "/x"}).Validate(); err == nil {
		t.Fatalf("expected missing client id error")
	}
	if err := (Config{StateDir: "/x", ClientID: "id", ClientSecret: "s"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DIRIGIBLE_CLIENT_ID=fromfile\nDIRIGIBLE_PROXY=socks5://h:1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("DIRIGIBLE_DOTENV", "")
	t.Setenv("DIRIGIBLE_CLIENT_ID", "fromenv")
	t.Setenv("DIRIGIBLE_PROXY", "")
	os.Unsetenv("DIRIGIBLE_PROXY")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("DIRIGIBLE_CLIENT_ID"); got != "fromenv" {
		t.Fatalf("env overridden: %q", got)
	}
	if got := os.Getenv("DIRIGIBLE_PROXY"); got != "socks5://h:1" {
		t.Fatalf("file value not loaded: %q", got)
	}
	os.Unsetenv("DIRIGIBLE_PROXY")
}

func TestLoadDotEnv_Disabled(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DIRIGIBLE_PORT_X=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("DIRIGIBLE_DOTENV", "0")
	if err := LoadDotEnv(); err != nil {
		t.Fatal(err)
	}
	if _, ok := os.LookupEnv("DIRIGIBLE_PORT_X"); ok {
		t.Fatalf("dotenv should be disabled")
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
