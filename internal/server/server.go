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

	"github.com/surgearcade/portal/internal/challenge"
	"github.com/surgearcade/portal/internal/database"
	"github.com/surgearcade/portal/internal/games"
	"github.com/surgearcade/portal/internal/handler"
	"github.com/surgearcade/portal/internal/logger"
	"github.com/surgearcade/portal/internal/metrics"
	"github.com/surgearcade/portal/internal/profile"
	"github.com/surgearcade/portal/internal/rotation"
	"github.com/surgearcade/portal/internal/shop"
	"github.com/surgearcade/portal/internal/wallet"
)

// Services bundles everything the router needs.
type Services struct {
	Rotation  rotation.Service
	Shop      shop.Service
	Wallet    wallet.Service
	Profile   profile.Service
	Challenge challenge.Service
	Games     games.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost to innermost
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/shop", func(r chi.Router) {
			r.Get("/rotation", handler.HandleGetRotation(svcs.Rotation))
			r.Get("/catalog", handler.HandleGetCatalog(svcs.Rotation))
			r.Post("/purchase", handler.HandlePurchase(svcs.Shop))
			r.Post("/equip", handler.HandleEquip(svcs.Shop))
			r.Post("/unequip", handler.HandleUnequip(svcs.Shop))
			r.Get("/entitlements", handler.HandleGetEntitlements(svcs.Shop))
			r.Get("/equipped", handler.HandleGetEquipped(svcs.Shop))
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", handler.HandleGetWallet(svcs.Wallet))
			r.Post("/credit", handler.HandleCreditWallet(svcs.Wallet))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", handler.HandleGetProfile(svcs.Profile))
			r.Patch("/", handler.HandleUpdateProfile(svcs.Profile))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", handler.HandleGetSettings(svcs.Profile))
			r.Put("/", handler.HandleUpdateSettings(svcs.Profile))
		})

		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", handler.HandleGetChallenges(svcs.Challenge))
			r.Post("/progress", handler.HandleRecordProgress(svcs.Challenge))
			r.Post("/claim", handler.HandleClaimReward(svcs.Challenge))
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", handler.HandleGetGameRecords(svcs.Games))
			r.Post("/favorite", handler.HandleToggleFavorite(svcs.Games))
			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", handler.HandleStartSession(svcs.Games))
				r.Post("/end", handler.HandleEndSession(svcs.Games))
			})
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

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes are noise in the request log.
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
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

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
