package hostapi

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server combines the public router with the spectate hub's
// background dispatch loop and an optional loopback-only debug mux.
type Server struct {
	router      *chi.Mux
	spectate    *SpectateHub
	rateLimiter *IPRateLimiter
	debugCfg    DebugConfig
	stop        chan struct{}
}

// NewServer wires a router from cfg. The spectate hub and debug mux do
// not start until Start is called, so constructing a Server and calling
// Router() is safe inside tests; the router's own rate limiter cleanup
// goroutine (see NewRouter) does start here when cfg.RateLimiter is nil.
func NewServer(cfg RouterConfig, debugCfg DebugConfig) *Server {
	if cfg.Spectate == nil {
		cfg.Spectate = NewSpectateHub()
	}
	router := NewRouter(cfg)
	return &Server{
		router:      router,
		spectate:    cfg.Spectate,
		rateLimiter: cfg.RateLimiter,
		debugCfg:    debugCfg,
		stop:        make(chan struct{}),
	}
}

// Router returns the HTTP handler, for use with httptest.
func (s *Server) Router() http.Handler { return s.router }

// Spectate returns the hub so the host's simulation loop can push tick
// broadcasts into it.
func (s *Server) Spectate() *SpectateHub { return s.spectate }

// Start begins serving on addr and starts background workers. This is
// the only method that opens a network listener.
func (s *Server) Start(addr string) error {
	go s.spectate.Run(s.stop)

	if s.debugCfg.Enabled {
		go func() {
			log.Printf("debug server on %s", s.debugCfg.ListenAddr)
			if err := http.ListenAndServe(s.debugCfg.ListenAddr, NewDebugMux()); err != nil {
				log.Printf("debug server error: %v", err)
			}
		}()
	}

	log.Printf("host API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Stop halts the spectate hub and a rate limiter supplied through
// RouterConfig.RateLimiter. It does not close an active listener
// started by Start; the caller is expected to exit the process after
// calling this from a signal handler.
func (s *Server) Stop(ctx context.Context) {
	close(s.stop)
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
