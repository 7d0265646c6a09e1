// Package config holds runtime settings. Values come from flags, falling back
// to DIRIGIBLE_* environment variables (optionally loaded from .env files).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	StateDir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ClientID     string
	ClientSecret string
	RedirectURL  string

	Chromecast string
	Port       string
	Proxy      string
	Debug      bool
}

// FromEnv returns defaults overridden by environment variables.
func FromEnv() Config {
	c := Config{
		StateDir:      getenv("DIRIGIBLE_STATE", "/var/lib/dirigible"),
		RedisAddr:     os.Getenv("DIRIGIBLE_REDIS_ADDR"),
		RedisPassword: os.Getenv("DIRIGIBLE_REDIS_PASSWORD"),
		ClientID:      os.Getenv("DIRIGIBLE_CLIENT_ID"),
		ClientSecret:  os.Getenv("DIRIGIBLE_CLIENT_SECRET"),
		RedirectURL:   getenv("DIRIGIBLE_REDIRECT_URL", "http://localhost:8080/oauth/callback"),
		Chromecast:    os.Getenv("DIRIGIBLE_CHROMECAST"),
		Port:          getenv("PORT", "8080"),
		Proxy:         os.Getenv("DIRIGIBLE_PROXY"),
		Debug:         isTrue(os.Getenv("DIRIGIBLE_DEBUG")),
	}
	if v := os.Getenv("DIRIGIBLE_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		} else {
			slog.Warn("ignoring invalid DIRIGIBLE_REDIS_DB", "value", v)
		}
	}
	return c
}

// Validate checks the settings needed to talk to Google.
func (c Config) Validate() error {
	var errs []error
	if c.ClientID == "" {
		errs = append(errs, errors.New("missing OAuth client id (DIRIGIBLE_CLIENT_ID)"))
	}
	if c.ClientSecret == "" {
		errs = append(errs, errors.New("missing OAuth client secret (DIRIGIBLE_CLIENT_SECRET)"))
	}
	if c.RedisAddr == "" && c.StateDir == "" {
		errs = append(errs, errors.New("need a state directory or a redis address"))
	}
	return errors.Join(errs...)
}

// LoadDotEnv loads .env.local then .env from the working directory.
// Variables already set are kept. DIRIGIBLE_DOTENV=0 disables loading.
func LoadDotEnv() error {
	if v := strings.TrimSpace(os.Getenv("DIRIGIBLE_DOTENV")); v != "" && !isTrue(v) {
		return nil
	}
	for _, p := range []string{".env.local", ".env"} {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
		slog.Debug("loaded env", "path", p)
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
