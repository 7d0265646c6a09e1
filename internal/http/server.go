package http

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/api/googleapi"

	"github.com/claes/dirigible/internal/auth"
	"github.com/claes/dirigible/internal/cast"
	"github.com/claes/dirigible/internal/library"
	"github.com/claes/dirigible/internal/model"
)

type Library interface {
	Load(ctx context.Context, query, pageToken string) model.Result
}

type Caster interface {
	Cast(ctx context.Context, id string) (model.MediaInfo, error)
}

type Authorizer interface {
	AuthCodeURL() string
	ValidState(state string) bool
	Exchange(ctx context.Context, code string) error
}

// Drive is the part of the remote file store used directly by handlers.
type Drive interface {
	Open(ctx context.Context, fileID string) (io.ReadCloser, string, error)
	AccountEmail(ctx context.Context) (string, error)
}

type Accounts interface {
	Account(ctx context.Context) (string, error)
	PutAccount(ctx context.Context, account string) error
}

type Deps struct {
	Library  Library
	Caster   Caster
	Auth     Authorizer
	Drive    Drive
	Accounts Accounts
}

type server struct {
	Deps
	tpl *template.Template
}

// NewServer creates the HTTP handler for browsing and casting the library.
func NewServer(d Deps) nethttp.Handler {
	tpl := template.Must(template.New("page").Funcs(template.FuncMap{
		"bytes": func(n int64) string {
			if n <= 0 {
				return ""
			}
			return humanize.Bytes(uint64(n))
		},
	}).Parse(pageTpl))
	s := &server{Deps: d, tpl: tpl}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleBrowse)
	r.Get("/health", HealthHandler(func(ctx context.Context) error {
		_, err := d.Accounts.Account(ctx)
		return err
	}).ServeHTTP)
	r.Get("/api/videos", s.handleVideos)
	r.Post("/api/videos/{id}/cast", s.handleCast)
	r.Get("/media/{id}", s.handleMedia)
	r.Get("/oauth/login", s.handleLogin)
	r.Get("/oauth/callback", s.handleCallback)
	return r
}

type page struct {
	Query  string
	Token  string
	Result model.Result
	Signed bool
}

func (s *server) handleBrowse(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	tok := r.URL.Query().Get("page")
	res := s.Library.Load(r.Context(), q, tok)
	account, _ := s.Accounts.Account(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, page{Query: q, Token: tok, Result: res, Signed: account != ""}); err != nil {
		slog.Warn("render page", "err", err)
	}
}

func (s *server) handleVideos(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	res := s.Library.Load(r.Context(), q, r.URL.Query().Get("page"))
	code := nethttp.StatusOK
	if res.Authorization != nil {
		code = nethttp.StatusUnauthorized
	}
	writeJSON(w, code, res)
}

func (s *server) handleCast(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := chi.URLParam(r, "id")
	mi, err := s.Caster.Cast(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, nethttp.StatusOK, mi)
	case errors.Is(err, cast.ErrNoPlayer):
		writeJSON(w, nethttp.StatusServiceUnavailable, map[string]any{"error": err.Error(), "media": mi})
	case notFound(err):
		httpError(w, nethttp.StatusNotFound, "video not found")
	default:
		var rec *auth.RecoverableError
		if errors.As(err, &rec) {
			writeJSON(w, nethttp.StatusUnauthorized, model.Result{Authorization: &model.Authorization{URL: rec.URL}})
			return
		}
		slog.Warn("cast failed", "id", id, "err", err)
		httpError(w, nethttp.StatusBadGateway, "unable to cast video")
	}
}

// notFound reports ids that do not name a video in the library.
func notFound(err error) bool {
	if errors.Is(err, library.ErrNotVideo) || errors.Is(err, library.ErrNotInLibrary) {
		return true
	}
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == nethttp.StatusNotFound
}

// handleMedia proxies thumbnails so the page does not need an access token.
func (s *server) handleMedia(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := chi.URLParam(r, "id")
	body, ct, err := s.Drive.Open(r.Context(), id)
	if err != nil {
		slog.Debug("open media", "id", id, "err", err)
		httpError(w, nethttp.StatusNotFound, "not found")
		return
	}
	defer body.Close()
	if ct != model.MimeTypeJPEG {
		httpError(w, nethttp.StatusNotFound, "not found")
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "private, max-age=300")
	if _, err := io.Copy(w, body); err != nil {
		slog.Debug("copy media", "id", id, "err", err)
	}
}

func (s *server) handleLogin(w nethttp.ResponseWriter, r *nethttp.Request) {
	nethttp.Redirect(w, r, s.Auth.AuthCodeURL(), nethttp.StatusFound)
}

func (s *server) handleCallback(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		httpError(w, nethttp.StatusForbidden, "authorization denied: "+e)
		return
	}
	if !s.Auth.ValidState(q.Get("state")) {
		httpError(w, nethttp.StatusBadRequest, "invalid state")
		return
	}
	code := q.Get("code")
	if code == "" {
		httpError(w, nethttp.StatusBadRequest, "missing code")
		return
	}
	if err := s.Auth.Exchange(r.Context(), code); err != nil {
		slog.Warn("oauth exchange failed", "err", err)
		httpError(w, nethttp.StatusBadGateway, "unable to complete sign-in")
		return
	}
	email, err := s.Drive.AccountEmail(r.Context())
	if err != nil {
		slog.Warn("unable to resolve account", "err", err)
		httpError(w, nethttp.StatusBadGateway, "unable to resolve account")
		return
	}
	if err := s.Accounts.PutAccount(r.Context(), email); err != nil {
		slog.Warn("unable to store account", "err", err)
		httpError(w, nethttp.StatusInternalServerError, "unable to store account")
		return
	}
	slog.Info("signed in", "account", email)
	nethttp.Redirect(w, r, "/", nethttp.StatusFound)
}

func writeJSON(w nethttp.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w nethttp.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
