package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/skillgenome/genome/internal/botfilter"
	"github.com/skillgenome/genome/internal/config"
	"github.com/skillgenome/genome/internal/db"
	"github.com/skillgenome/genome/internal/graph"
	"github.com/skillgenome/genome/internal/ingestion"
	"github.com/skillgenome/genome/internal/server/middleware"
	"github.com/skillgenome/genome/internal/server/ratelimit"
	"github.com/skillgenome/genome/internal/types"
)

// snapshot is one immutable view of the ingested, bot-filtered data.
// Refreshes build a new snapshot and swap the pointer so readers never
// see a half-updated state.
type snapshot struct {
	dataset  *types.Dataset
	summary  *ingestion.Summary
	stats    *types.FilterStats
	graph    *graph.Graph
	loadedAt time.Time
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	db          *db.DB // nil when persistence is not configured
	appConfig   config.Config
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler

	mu   sync.RWMutex
	snap *snapshot
}

// Config holds server configuration.
type Config struct {
	Port        int
	DatabaseURL string
	App         config.Config
}

// New creates a server instance. The configured dataset, if any, is
// ingested before the server starts accepting requests.
func New(cfg Config) (*Server, error) {
	s := &Server{
		appConfig: cfg.App.MergeWithDefaults(config.Defaults()),
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		s.db = database

		passwordConfig, err := config.NewPasswordConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}
		s.userService = NewUserService(database, passwordConfig)

		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
		s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	if s.appConfig.DataPath != "" || s.appConfig.DataURL != "" {
		if err := s.refresh(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to load initial dataset: %w", err)
		}
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for pipeline runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request multiplexer.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /dashboard/overview", s.handleOverview)
	mux.HandleFunc("GET /dashboard/heatmap", s.handleHeatmap)
	mux.HandleFunc("GET /dashboard/bots", s.handleBots)

	mux.HandleFunc("GET /graph/summary", s.handleGraphSummary)
	mux.HandleFunc("GET /graph/skills/{skill}/related", s.handleRelatedSkills)

	mux.HandleFunc("GET /clusters/regions", s.handleRegionClusters)
	mux.HandleFunc("GET /forecast", s.handleForecast)
	mux.HandleFunc("GET /risk-zones", s.handleRiskZones)

	if s.authHandler != nil {
		mux.HandleFunc("POST /auth/register", s.authHandler.Register)
		mux.HandleFunc("POST /auth/login", s.authHandler.Login)

		requireAuth := middleware.Auth(s.jwtService.AsTokenValidator())
		mux.Handle("POST /ingest/refresh", requireAuth(http.HandlerFunc(s.handleIngestRefresh)))
		mux.Handle("DELETE /runs/{id}", requireAuth(http.HandlerFunc(s.handleDeleteRun)))
	} else {
		mux.HandleFunc("POST /ingest/refresh", s.handleIngestRefresh)
		mux.HandleFunc("DELETE /runs/{id}", s.handleDeleteRun)
	}

	mux.HandleFunc("POST /runs", s.handleCreateRun)
	mux.HandleFunc("POST /runs/stream", s.handleRunStream)
	mux.HandleFunc("GET /runs", s.handleListRuns)
	mux.HandleFunc("GET /runs/{id}", s.handleGetRun)
	mux.HandleFunc("GET /runs/{id}/artifacts", s.handleRunArtifacts)
	mux.HandleFunc("GET /artifacts/{id}", s.handleGetArtifact)

	return mux
}

// refresh re-ingests the configured dataset, applies the bot filter,
// rebuilds the skill graph, and swaps the snapshot.
func (s *Server) refresh(ctx context.Context) error {
	var (
		ds      *types.Dataset
		summary *ingestion.Summary
		err     error
	)
	switch {
	case s.appConfig.DataPath != "":
		ds, summary, err = ingestion.IngestCSVFile(s.appConfig.DataPath)
	case s.appConfig.DataURL != "":
		ds, summary, err = ingestion.IngestFromURL(ctx, s.appConfig.DataURL)
	default:
		return fmt.Errorf("no data source configured")
	}
	if err != nil {
		return err
	}

	cleaned, stats := botfilter.Apply(ds, botfilter.Options{
		PostsPerDayThreshold:   s.appConfig.BotPostsPerDayThreshold,
		DuplicateTextThreshold: s.appConfig.BotDuplicateTextThreshold,
	})

	s.mu.Lock()
	s.snap = &snapshot{
		dataset:  cleaned,
		summary:  summary,
		stats:    stats,
		graph:    graph.Build(cleaned),
		loadedAt: time.Now().UTC(),
	}
	s.mu.Unlock()

	log.Printf("Dataset refreshed: %d records from %s (%d bot users removed)",
		cleaned.Len(), summary.Source, stats.BotsDetected)
	return nil
}

// current returns the active snapshot, or an error when nothing has
// been ingested yet.
func (s *Server) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, &ErrDatasetNotLoaded{}
	}
	return s.snap, nil
}

// Start begins listening for requests and blocks until shutdown.
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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the client by IP address.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
