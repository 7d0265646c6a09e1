package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/claes/dirigible/internal/config"
)

var logLevel = new(slog.LevelVar)

func main() {
	// Configure structured logging to stderr
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("unable to load .env", "err", err)
		os.Exit(1)
	}
	cfg := config.FromEnv()

	if err := newRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "dirigible",
		Short:         "Browse a Google Drive video library and cast it to a Chromecast",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg.Debug {
				logLevel.Set(slog.LevelDebug)
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&cfg.StateDir, "state", cfg.StateDir, "directory for persistent settings (env DIRIGIBLE_STATE)")
	f.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "redis address for settings instead of the state directory (env DIRIGIBLE_REDIS_ADDR)")
	f.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "redis database (env DIRIGIBLE_REDIS_DB)")
	f.StringVar(&cfg.ClientID, "client-id", cfg.ClientID, "OAuth client id (env DIRIGIBLE_CLIENT_ID)")
	f.StringVar(&cfg.RedirectURL, "redirect-url", cfg.RedirectURL, "OAuth redirect URL (env DIRIGIBLE_REDIRECT_URL)")
	f.StringVar(&cfg.Chromecast, "chromecast", cfg.Chromecast, "chromecast host[:port] to cast to (env DIRIGIBLE_CHROMECAST)")
	f.StringVar(&cfg.Proxy, "proxy", cfg.Proxy, "outbound proxy: env, http://, https:// or socks5:// URL (env DIRIGIBLE_PROXY)")
	f.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging (env DIRIGIBLE_DEBUG)")

	root.AddCommand(
		newServeCmd(cfg),
		newListCmd(cfg),
		newPlayCmd(cfg),
		newLoginCmd(cfg),
		newAccountCmd(cfg),
		newCastURLCmd(cfg),
	)
	return root
}
