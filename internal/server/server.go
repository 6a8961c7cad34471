package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/ai"
	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/server/middleware"
	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/storage"
	"github.com/jonathan/interview-prep/internal/types"
)

// DataStore is the persistence surface the handlers use directly. Implemented
// by *db.DB; tests substitute fakes.
type DataStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, profile types.Profile) error

	CreateJob(ctx context.Context, job types.Job) (*types.Job, error)
	GetJob(ctx context.Context, userID, jobID uuid.UUID) (*types.Job, error)
	ListJobs(ctx context.Context, userID uuid.UUID) ([]types.Job, error)
	UpdateJob(ctx context.Context, job types.Job) (*types.Job, error)
	DeleteJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error)

	ListAnswers(ctx context.Context, userID uuid.UUID) ([]types.Answer, error)
	ListAnswersByJob(ctx context.Context, userID, jobID uuid.UUID) ([]types.Answer, error)
	GetAnswer(ctx context.Context, userID, answerID uuid.UUID) (*types.Answer, error)
	UpdateAnswer(ctx context.Context, answer types.Answer) (*types.Answer, error)
	DeleteAnswer(ctx context.Context, userID, answerID uuid.UUID) (bool, error)

	ListSessions(ctx context.Context, userID uuid.UUID) ([]types.PracticeSession, error)
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) (bool, error)
}

// AIService is the gateway surface the handlers use directly. Question
// generation and feedback go through the session orchestrator instead.
type AIService interface {
	ExtractResume(ctx context.Context, resumeText string) (types.ExtractedProfile, error)
	BeautifyProfile(ctx context.Context, profile types.Profile) (types.ExtractedProfile, error)
	SuggestTags(ctx context.Context, question, answer string, job *types.Job) ([]string, error)
}

// SessionService drives the practice-session lifecycle.
type SessionService interface {
	Start(ctx context.Context, userID uuid.UUID, jobID *uuid.UUID, categories []types.QuestionCategory) (*types.PracticeSession, error)
	Load(ctx context.Context, userID, sessionID uuid.UUID) (*types.PracticeSession, error)
	Next(ctx context.Context, userID, sessionID uuid.UUID) (*session.NextResult, error)
	SaveAnswer(ctx context.Context, userID, sessionID uuid.UUID, answerText string, tags []string) (*types.Answer, error)
	Feedback(ctx context.Context, userID, sessionID uuid.UUID, answerText string) (string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       DataStore
	ai          AIService
	sessions    SessionService
	blobs       storage.BlobStore
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	llmCfg := llm.DefaultConfig()
	if cfg.ModelLite != "" {
		llmCfg = llmCfg.WithModel(llm.TierLite, cfg.ModelLite)
	}
	if cfg.ModelStandard != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.ModelStandard)
	}
	if cfg.ModelAdvanced != "" {
		llmCfg = llmCfg.WithModel(llm.TierAdvanced, cfg.ModelAdvanced)
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	aiService := ai.NewService(client)

	s := &Server{
		db:       database,
		store:    database,
		ai:       aiService,
		sessions: session.New(database, aiService),
	}

	// Blob storage is optional; without it uploads are disabled but the rest
	// of the API works.
	blobs, err := storage.NewS3Store()
	if err != nil {
		log.Printf("Blob storage disabled: %v", err)
	} else {
		s.blobs = blobs
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything except /auth/register, /auth/login and
// /health sits behind the JWT middleware.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /health", s.handleHealth)

	auth := middleware.Auth(s.jwtService.AsTokenValidator())
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, auth(h))
	}

	protect("PUT /auth/password", s.authHandler.UpdatePassword)

	protect("GET /profile", s.handleGetProfile)
	protect("PUT /profile", s.handleUpdateProfile)
	protect("POST /profile/resume", s.handleImportResume)
	protect("POST /profile/resume/upload", s.handleUploadResume)
	protect("POST /profile/beautify", s.handleBeautifyProfile)

	protect("GET /jobs", s.handleListJobs)
	protect("POST /jobs", s.handleCreateJob)
	protect("GET /jobs/{id}", s.handleGetJob)
	protect("PUT /jobs/{id}", s.handleUpdateJob)
	protect("DELETE /jobs/{id}", s.handleDeleteJob)
	protect("POST /jobs/{id}/cover-letter", s.handleUploadCoverLetter)

	protect("POST /sessions", s.handleCreateSession)
	protect("GET /sessions", s.handleListSessions)
	protect("GET /sessions/{id}", s.handleGetSession)
	protect("DELETE /sessions/{id}", s.handleDeleteSession)
	protect("POST /sessions/{id}/next", s.handleNextQuestion)
	protect("POST /sessions/{id}/answers", s.handleSaveAnswer)
	protect("POST /sessions/{id}/feedback", s.handleFeedback)

	protect("GET /answers", s.handleListAnswers)
	protect("PUT /answers/{id}", s.handleUpdateAnswer)
	protect("DELETE /answers/{id}", s.handleDeleteAnswer)

	return mux
}

// Start begins listening for requests
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

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, code, map[string]string{"status": status})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}
