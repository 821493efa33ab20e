// Package web exposes the portal core as a JSON API for a local UI. It is a
// thin adapter: every handler translates a request into one core call and
// the outcome back into JSON, all gating decisions stay in the core.
package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/didip/tollbooth/v8"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/ruraljobs/portal/app/auth"
	"github.com/ruraljobs/portal/app/portal"
)

// rate limit for login and signup attempts
var loginLimiter = tollbooth.NewLimiter(10, nil)

// session represents an active browser session bound to a cookie token
type session struct {
	ses       *portal.Session
	createdAt time.Time
}

// Server represents the web server
type Server struct {
	repo       *portal.Repository
	auth       *auth.Service
	version    string
	loginTTL   time.Duration
	sessions   map[string]session
	sessionsMu sync.Mutex
}

// Config holds server configuration
type Config struct {
	Repo     *portal.Repository
	Auth     *auth.Service
	Version  string
	LoginTTL time.Duration // session TTL, defaults to 24h if not set
}

// New creates a new web server
func New(cfg Config) (*Server, error) {
	if cfg.Repo == nil {
		return nil, fmt.Errorf("web server initialization failed: repository is required")
	}
	if cfg.Auth == nil {
		return nil, fmt.Errorf("web server initialization failed: auth service is required")
	}

	loginTTL := cfg.LoginTTL
	if loginTTL == 0 {
		loginTTL = 24 * time.Hour
	}

	return &Server{
		repo:     cfg.Repo,
		auth:     cfg.Auth,
		version:  cfg.Version,
		loginTTL: loginTTL,
		sessions: make(map[string]session),
	}, nil
}

// Run starts the web server and blocks until the context is canceled
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	// global middleware - applied to all routes
	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(100),
		rest.AppInfo("portal", "ruraljobs", s.version),
		rest.Ping,
		rest.Trace,
		rest.SizeLimit(64*1024), // 64KB max request size
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
	)

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)

		// jobs: listing and search open to everyone, mutations gated by the core
		api.HandleFunc("GET /jobs", s.handleJobsList)
		api.HandleFunc("GET /jobs/saved", s.handleSavedJobs)
		api.HandleFunc("GET /jobs/{id}", s.handleJobGet)
		api.HandleFunc("POST /jobs", s.handleJobPost)
		api.HandleFunc("PUT /jobs/{id}", s.handleJobUpdate)
		api.HandleFunc("DELETE /jobs/{id}", s.handleJobDelete)
		api.HandleFunc("POST /jobs/{id}/apply", s.handleJobApply)
		api.HandleFunc("POST /jobs/{id}/save", s.handleJobSave)

		// read-only reference data
		api.HandleFunc("GET /trainings", s.handleTrainings)
		api.HandleFunc("GET /locations", s.handleLocations)
		api.HandleFunc("GET /guidance", s.handleGuidanceTopics)
		api.HandleFunc("GET /guidance/{topic}", s.handleGuidance)

		// community feed and notifications
		api.HandleFunc("GET /community", s.handleCommunityFeed)
		api.HandleFunc("POST /community", s.handleCommunityPost)
		api.HandleFunc("GET /notifications", s.handleNotifications)

		// settings
		api.HandleFunc("GET /settings", s.handleSettings)
		api.HandleFunc("PUT /settings/language", s.handleLanguage)

		api.HandleFunc("GET /status", s.handleStatus)

		// auth endpoints, login and signup rate-limited
		api.With(tollbooth.HTTPMiddleware(loginLimiter)).HandleFunc("POST /auth/login", s.handleLogin)
		api.With(tollbooth.HTTPMiddleware(loginLimiter)).HandleFunc("POST /auth/signup", s.handleSignup)
		api.HandleFunc("POST /auth/logout", s.handleLogout)
		api.HandleFunc("GET /auth/me", s.handleMe)
	})

	return router
}

// sessionFromRequest resolves the portal session bound to the auth cookie,
// nil for anonymous or expired sessions
func (s *Server) sessionFromRequest(r *http.Request) *portal.Session {
	cookie, err := r.Cookie("portal-auth")
	if err != nil {
		return nil
	}

	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	entry, ok := s.sessions[cookie.Value]
	if !ok {
		return nil
	}
	if time.Since(entry.createdAt) > s.loginTTL {
		delete(s.sessions, cookie.Value)
		return nil
	}
	return entry.ses
}

// bindSession stores the session under a fresh token and returns the token
func (s *Server) bindSession(ses *portal.Session) string {
	token := generateToken()
	s.sessionsMu.Lock()
	s.sessions[token] = session{ses: ses, createdAt: time.Now()}
	s.sessionsMu.Unlock()
	return token
}

// dropSession removes the token binding, no-op for unknown tokens
func (s *Server) dropSession(token string) {
	s.sessionsMu.Lock()
	delete(s.sessions, token)
	s.sessionsMu.Unlock()
}

// generateToken makes a random session token
func generateToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand is not expected to fail
		log.Printf("[WARN] random source failed: %v", err)
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
