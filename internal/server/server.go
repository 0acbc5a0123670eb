package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/entroverse/entroverse-api/internal/database"
	"github.com/entroverse/entroverse-api/internal/economy"
	"github.com/entroverse/entroverse-api/internal/handler"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/metrics"
	"github.com/entroverse/entroverse-api/internal/middleware"
	"github.com/entroverse/entroverse-api/internal/modifier"
	"github.com/entroverse/entroverse-api/internal/profile"
	"github.com/entroverse/entroverse-api/internal/quest"
	"github.com/entroverse/entroverse-api/internal/repository"
	"github.com/entroverse/entroverse-api/internal/sse"
	"github.com/entroverse/entroverse-api/internal/state"
)

// Services bundles everything the router serves
type Services struct {
	Engine   state.Engine
	Quests   quest.Service
	Economy  economy.Service
	Modifier modifier.Service
	Profile  profile.Service
	Ledger   repository.Ledger
	Sessions repository.Session
	Hub      *sse.Hub
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, services Services) *Server {
	r := chi.NewRouter()

	// Middleware executes in order defined, outermost first
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Session(services.Sessions))

	// Unversioned operational routes
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	// SSE push: snapshot invalidations and reward notifications
	r.Get("/events", sse.Handler(services.Hub, func(req *http.Request) string {
		if session := middleware.SessionFromContext(req.Context()); session != nil {
			return session.UserID
		}
		return ""
	}))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", handler.HandleGetState(services.Engine))

		r.Route("/quests", func(r chi.Router) {
			r.Get("/", handler.HandleGetQuests(services.Quests))
			r.Post("/start", handler.HandleStartQuest(services.Quests))
			r.Post("/increment", handler.HandleIncrementQuest(services.Quests))
			r.Post("/complete", handler.HandleCompleteQuest(services.Quests))
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/", handler.HandleGetShop(services.Economy))
			r.Post("/buy", handler.HandleBuyItem(services.Economy))
		})

		r.Route("/modifiers", func(r chi.Router) {
			r.Post("/use", handler.HandleUseModifier(services.Modifier))
		})
		r.Post("/minigame/pong/win", handler.HandlePongWin(services.Modifier))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", handler.HandleGetProfile(services.Profile))
			r.Post("/equip", handler.HandleEquip(services.Profile))
			r.Post("/unequip", handler.HandleUnequip(services.Profile))
		})
		r.Post("/sets/claim", handler.HandleClaimSet(services.Profile))

		// Admin surface, API-key gated
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(apiKey, trustedProxies, detector))
			r.Get("/ledger", handler.HandleListLedger(services.Ledger))
			r.Post("/entrobucks/grant", handler.HandleGrantEntrobucks(services.Economy))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets the SSE handler stream through the wrapper
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health checks and metrics scrapes would drown the log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
