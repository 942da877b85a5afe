// Package hostapi is the HTTP/WebSocket surface over the settlement
// shim and simulation core: admin match lifecycle endpoints, a
// read-only spectate feed, and the observability surface an operator
// needs to run this as a long-lived service.
package hostapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/AshFrancis/chickenz/internal/sim"
)

// RouterConfig holds every dependency NewRouter needs. Construction
// opens no listener, so tests can exercise it directly with
// httptest.NewServer.
type RouterConfig struct {
	Contract ContractInterface
	SimMap   *sim.Map
	Spectate *SpectateHub

	// MatchRules seeds the sim.MatchConfig used for ad hoc transcript
	// runs via /api/transcripts/run. Zero-valued fields fall back to
	// sim's own documented defaults.
	MatchRules sim.MatchConfig

	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	CORSOrigins []string

	// TokenIssuer, when non-nil, gates POST /api/matches and
	// POST /api/matches/{id}/settle behind an admin bearer token.
	TokenIssuer *TokenIssuer

	DisableLogging bool
}

// NewRouter builds the HTTP router. It opens no listener. When
// cfg.RateLimiter is nil it creates its own IPRateLimiter, whose cleanup
// goroutine starts immediately and is not stopped by Server.Stop.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rlCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rlCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rlCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"*"},
	}))

	h := &routeHandlers{contract: cfg.Contract, simMap: cfg.SimMap, spectate: cfg.Spectate, matchRules: cfg.MatchRules}

	r.Route("/api", func(r chi.Router) {
		r.Get("/weapons", h.handleGetWeapons)
		r.Post("/transcripts/run", h.handleRunTranscript)
		r.Get("/matches/{id}", h.handleGetMatch)

		adminRoutes := func(r chi.Router) {
			r.Post("/matches", h.handleStartMatch)
			r.Post("/matches/{id}/settle", h.handleSettleMatch)
		}
		if cfg.TokenIssuer != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.TokenIssuer.RequireAdmin)
				adminRoutes(r)
			})
		} else {
			adminRoutes(r)
		}
	})

	if cfg.Spectate != nil {
		r.Get("/ws/spectate/{id}", func(w http.ResponseWriter, req *http.Request) {
			sessionID := chi.URLParam(req, "id")
			cfg.Spectate.HandleSpectate(sessionID)(w, req)
		})
	}

	return r
}
