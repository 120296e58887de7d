// Package httpapi exposes comment retrieval and winner selection over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"giveaway-picker/internal/auth"
	"giveaway-picker/internal/giveaway"
	"giveaway-picker/internal/hashtag"
	"giveaway-picker/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// HistoryLister lists a user's past draws.
type HistoryLister interface {
	List(ctx context.Context, userID string) ([]model.GiveawayRecord, error)
}

// Deps are the collaborators the handlers need. History, Hashtags and
// Ready are optional.
type Deps struct {
	Comments giveaway.CommentSource
	Drawer   *giveaway.Drawer
	History  HistoryLister
	Hashtags *hashtag.Generator
	Verifier auth.Verifier
	Ready    func(ctx context.Context) error
}

// NewRouter wires middleware and routes.
func NewRouter(d Deps) http.Handler {
	h := &handlers{Deps: d}
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	r.Use(auth.OptionalUser(d.Verifier))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", h.ready)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/platforms", h.platforms)
		r.Get("/extract", h.extract)
		r.Get("/comments/{platform}/{postID}", h.comments)
		r.Post("/giveaways/draw", h.draw)
		r.With(auth.RequireUser(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "sign in to view giveaway history")
		})).Get("/giveaways/history", h.history)
		r.Get("/hashtags", h.hashtags)
	})
	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("httpapi: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", RequestIDFromContext(r.Context()),
		)
	})
}
