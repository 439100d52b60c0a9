// Package server wires the application together: it owns the router, the
// database connection, and the dependency graph from repository up to the
// route handlers. main.go stays minimal; everything testable lives here.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/game-arcade/internal/auth"
	"github.com/sakif/game-arcade/internal/handler"
	"github.com/sakif/game-arcade/internal/middleware"
	sqliteRepo "github.com/sakif/game-arcade/internal/repository/sqlite"
	"github.com/sakif/game-arcade/internal/service"
	"github.com/sakif/game-arcade/internal/session"
)

// Config holds server configuration, assembled in main.go from the
// environment.
//
// SessionSecret is the signing key for session cookies, injected here as an
// explicit value rather than read from a global. main.go generates a fresh
// random secret per process unless SESSION_SECRET pins one, so by default a
// restart invalidates every outstanding session.
type Config struct {
	Port          int
	TemplateDir   string
	DBPath        string
	SessionSecret []byte
}

// Server owns the router and the resources behind it. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates the Server and assembles the whole dependency chain:
// sqlite.DB → services → handlers → routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, mainly for httptest in the flow tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources without going through Start's
// shutdown path. Used by tests; Start handles this itself.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware and the six application routes.
//
//	GET/POST /register           registration form + submit
//	GET/POST /login              login form + submit
//	GET      /home               gated: greets the user
//	GET      /game               gated: game page with cached high score
//	POST     /update_high_score  JSON score submit, bare 204
//	GET      /logout             clears the session cookie
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	sessions, err := session.NewManager(s.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("creating session manager: %w", err)
	}

	templates, err := handler.LoadTemplates(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	accounts := service.NewAccountService(s.db, auth.NewPasswordService(), s.logger)
	scores := service.NewScoreService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(accounts, sessions, templates, s.logger)
	pageHandler := handler.NewPageHandler(templates, s.logger)
	scoreHandler := handler.NewScoreHandler(scores, sessions, s.logger)

	s.router.Get("/register", authHandler.HandleRegisterPage)
	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Get("/login", authHandler.HandleLoginPage)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Get("/logout", authHandler.HandleLogout)

	// The HTML pages gate through the redirecting middleware. The score
	// endpoint checks the session itself: anonymous submits are a silent
	// 204 no-op, not a redirect.
	s.router.Group(func(r chi.Router) {
		r.Use(session.Require(sessions))
		r.Get("/home", pageHandler.HandleHome)
		r.Get("/game", pageHandler.HandleGame)
	})
	s.router.Post("/update_high_score", scoreHandler.HandleUpdateHighScore)

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
