// Package server provides the HTTP REST API for the internship application
// agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/internship-apply/internal/config"
	"github.com/jonathan/internship-apply/internal/db"
	"github.com/jonathan/internship-apply/internal/mail"
	"github.com/jonathan/internship-apply/internal/parsing"
	"github.com/jonathan/internship-apply/internal/rendering"
	"github.com/jonathan/internship-apply/internal/server/middleware"
	"github.com/jonathan/internship-apply/internal/types"
)

// ProfileExtractor turns cleaned document text into structured records.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, sourceText string, defaults parsing.ProfileDefaults) (*types.CandidateProfile, []string, error)
	ExtractTopics(ctx context.Context, sourceText, companyName string) ([]types.OpportunityTopic, error)
}

// Tailorer produces a tailored application for a profile/topic pair.
type Tailorer interface {
	Tailor(ctx context.Context, profile *types.CandidateProfile, topic *types.OpportunityTopic, now time.Time) (*types.TailoredApplication, error)
}

// Sender delivers an assembled message under the user's linked credential.
type Sender interface {
	Dispatch(ctx context.Context, userID string, msg *mail.OutboundMessage) (string, error)
}

// Config holds server configuration.
type Config struct {
	Addr       string
	UseBrowser bool
}

// Deps are the wired services the server routes requests to.
type Deps struct {
	DB         *db.DB
	Extractor  ProfileExtractor
	Tailor     Tailorer
	Renderer   rendering.PDFRenderer
	Dispatcher Sender
	JWT        *JWTService
	Passwords  *config.PasswordConfig
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	cfg        Config

	db         *db.DB
	extractor  ProfileExtractor
	tailor     Tailorer
	renderer   rendering.PDFRenderer
	dispatcher Sender
	jwtService *JWTService
	passwords  *config.PasswordConfig
	validator  *validator.Validate
}

// New creates a server with its routes wired.
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		cfg:        cfg,
		db:         deps.DB,
		extractor:  deps.Extractor,
		tailor:     deps.Tailor,
		renderer:   deps.Renderer,
		dispatcher: deps.Dispatcher,
		jwtService: deps.JWT,
		passwords:  deps.Passwords,
		validator:  validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation and rendering are slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler builds the route tree. Exposed so tests can drive the server
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	authed := http.NewServeMux()
	authed.HandleFunc("POST /profiles/import", s.handleImportProfile)
	authed.HandleFunc("GET /profiles", s.handleListProfiles)
	authed.HandleFunc("GET /profiles/{id}", s.handleGetProfile)
	authed.HandleFunc("PUT /profiles/{id}", s.handleUpdateProfile)

	authed.HandleFunc("POST /books/import", s.handleImportBook)
	authed.HandleFunc("POST /topics/import-url", s.handleImportPostingURL)
	authed.HandleFunc("GET /topics", s.handleListTopics)

	authed.HandleFunc("POST /applications/generate", s.handleGenerateApplication)
	authed.HandleFunc("GET /applications", s.handleListApplications)
	authed.HandleFunc("GET /applications/{id}", s.handleGetApplication)
	authed.HandleFunc("PUT /applications/{id}", s.handleUpdateApplication)
	authed.HandleFunc("POST /applications/{id}/send", s.handleSendApplication)

	authed.HandleFunc("POST /accounts/google", s.handleLinkGoogle)
	authed.HandleFunc("DELETE /accounts/google", s.handleUnlinkGoogle)

	mux.Handle("/", middleware.Auth(s.jwtService.AsTokenValidator())(authed))

	return s.withLogging(s.withCORS(mux))
}

// Start begins listening and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse classifies err and writes the API error payload.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	apiErr := classifyError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	s.jsonResponse(w, apiErr.Status, apiErr)
}

// extractValidationErrors reduces validator errors to one actionable message.
func extractValidationErrors(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid"}
}
