// Package server provides the HTTP API for the assistant's task modes.
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
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/gemini-assistant/internal/assistant"
	"github.com/jonathan/gemini-assistant/internal/server/ratelimit"
)

// defaultMaxUploadBytes bounds multipart uploads
const defaultMaxUploadBytes = 20 << 20

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	assistant      *assistant.Service
	rateLimiter    *ratelimit.Limiter
	metrics        *httpMetrics
	registry       *prometheus.Registry
	workDir        string
	maxUploadBytes int64
}

// Config holds server configuration
type Config struct {
	Port int
	// WorkDir receives per-request scratch directories; empty means the OS temp directory
	WorkDir        string
	MaxUploadBytes int64
	// RateLimit defaults to ratelimit.LoadConfig()
	RateLimit *ratelimit.Config
	// Registry receives HTTP metrics; a new one is created when nil
	Registry *prometheus.Registry
}

// New creates a new server instance
func New(svc *assistant.Service, cfg Config) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("assistant service is required")
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	metrics, err := newHTTPMetrics(cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register HTTP metrics: %w", err)
	}

	s := &Server{
		assistant:      svc,
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		metrics:        metrics,
		registry:       cfg.Registry,
		workDir:        cfg.WorkDir,
		maxUploadBytes: cfg.MaxUploadBytes,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Remote generation can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler wrapped in middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// Task modes
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("POST /ask/voice", s.handleAskVoice)
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("POST /resume/extras", s.handleResumeExtras)
	mux.HandleFunc("POST /resume", s.handleResume)
	mux.HandleFunc("POST /cover-letter", s.handleCoverLetter)
	mux.HandleFunc("POST /describe-image", s.handleDescribeImage)

	return s.withMetrics(s.withRateLimit(s.withLogging(s.withCORS(mux))))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed the generation quota
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			retry := int(info.RetryAfter.Seconds() + 0.5)
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			log.Printf("[rate-limit] Rate limit exceeded: %s %s Limit=%d", r.Method, r.URL.Path, info.Limit)
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate_limit_exceeded",
				"message":     "Rate limit exceeded. Please try again later.",
				"retry_after": retry,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging with a request id
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		log.Printf("[%s] %s %s %s", r.Method, r.URL.Path, r.RemoteAddr, id)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withMetrics records request counts and latency
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.metrics.observe(r, rec.status, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failResponse maps err to a status code and writes it
func (s *Server) failResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] request failed: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier (IP address) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
