// Package web serves mood sessions over HTTP.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/huangsam/moodmixer/internal/catalog"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/logging"
	"github.com/huangsam/moodmixer/internal/pos"
	"github.com/huangsam/moodmixer/schema"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server holds the shared catalog and the per-session mood state.
type Server struct {
	cfg      *contract.Config
	drinks   []schema.Drink
	bars     []schema.Bar
	store    contract.ProfileStore
	sessions *registry
	terminal *pos.Terminal
	page     *template.Template
}

// NewServer loads the catalog once and prepares the session registry.
func NewServer(cfg *contract.Config, mgr contract.StoreManager) (*Server, error) {
	page, err := template.New("index.html").Funcs(template.FuncMap{
		"label": contract.GetPlainLabel,
		"pct":   func(v int) int { return v * 10 },
	}).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	var store contract.ProfileStore
	if mgr != nil {
		store = mgr.GetProfileStore()
	}
	drinks := catalog.LoadDrinksOrSample(cfg.CatalogFile)
	bars := catalog.LoadBarsOrSample(cfg.BarsFile)
	sessions, err := newRegistry(cfg, drinks, bars, store)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:      cfg,
		drinks:   drinks,
		bars:     bars,
		store:    store,
		sessions: sessions,
		terminal: pos.NewTerminal(store, cfg.Pricing, cfg.OrderDelay),
		page:     page,
	}, nil
}

// Handler builds the chi router with middleware and routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger)
	if s.cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(s.cfg.RateLimit, time.Minute))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", sessionHeader},
		MaxAge:         86400,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/mood", func(r chi.Router) {
			r.Get("/", s.handleGetMood)
			r.Post("/reset", s.handleResetMood)
			r.Post("/randomize", s.handleRandomizeMood)
			r.Post("/occasion/{name}", s.handleOccasion)
			r.Put("/{dim}", s.handleSetMood)
		})
		r.Get("/recommendations", s.handleRecommendations)
		r.Get("/drinks", s.handleDrinks)
		r.Get("/drinks/{id}", s.handleDrink)
		r.Get("/search", s.handleSearch)
		r.Get("/surprise", s.handleSurprise)
		r.Get("/favorites", s.handleFavorites)
		r.Post("/favorites/{id}", s.handleToggleFavorite)
		r.Get("/recents", s.handleRecents)
		r.Get("/bars", s.handleBars)
		r.Get("/orders", s.handleOrders)
		r.Post("/orders", s.handlePlaceOrder)
		r.Get("/poll", s.handlePoll)
		r.Post("/poll/vote", s.handleVote)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.Info().Msg("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
