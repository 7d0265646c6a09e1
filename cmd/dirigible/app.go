package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/claes/dirigible/internal/auth"
	"github.com/claes/dirigible/internal/cast"
	"github.com/claes/dirigible/internal/config"
	"github.com/claes/dirigible/internal/drive"
	"github.com/claes/dirigible/internal/httpx"
	"github.com/claes/dirigible/internal/library"
	"github.com/claes/dirigible/internal/prefs"
)

// app wires the components shared by all commands.
type app struct {
	prefs  *prefs.Prefs
	cred   *auth.Credential
	drive  *drive.Client
	lib    *library.Library
	caster *cast.Caster

	rdb    *redis.Client
	player *cast.Chromecast
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &app{}

	var store prefs.Store
	if cfg.RedisAddr != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store = prefs.NewRedisStore(a.rdb, prefs.Namespace)
	} else {
		store = prefs.NewFileStore(cfg.StateDir, prefs.Namespace)
	}
	a.prefs = prefs.New(store)

	hc, err := httpx.NewClient(httpx.ClientOptions{Proxy: cfg.Proxy})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("http client: %w", err)
	}
	a.cred = auth.NewCredential(auth.NewConfig(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL), a.prefs, hc)

	svc, err := drive.NewService(ctx, a.cred.Client(ctx))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.drive = drive.New(svc, a.cred.AuthCodeURL)
	a.lib = library.New(a.drive, a.cred)

	var player cast.Player
	if cfg.Chromecast != "" {
		cc, err := cast.NewChromecast(cfg.Chromecast)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.player = cc
		player = cc
		slog.Debug("chromecast configured", "addr", cc.Addr())
	}
	a.caster = cast.NewCaster(a.lib, cast.NewBuilder(a.cred), player)
	return a, nil
}

func (a *app) Close() {
	if a.player != nil {
		if err := a.player.Close(); err != nil {
			slog.Debug("close chromecast", "err", err)
		}
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}
