package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/HabitQuest_Go/internal/catalog"
	"github.com/osse101/HabitQuest_Go/internal/clock"
	"github.com/osse101/HabitQuest_Go/internal/directory"
	"github.com/osse101/HabitQuest_Go/internal/game"
	"github.com/osse101/HabitQuest_Go/internal/handler"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/metrics"
	"github.com/osse101/HabitQuest_Go/internal/sse"
)

// Options carries what the router needs
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	RateLimit      int

	Store     handler.Pinger // nil for the memory store
	Directory directory.Service
	Game      game.Service
	Catalog   *catalog.Catalog
	Clock     clock.Clock
	Hub       *sse.Hub
}

// Server is the HTTP front of the game
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and the http.Server
func NewServer(opts Options) *Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: ReadHeaderTimeout,
		IdleTimeout:       IdleTimeout,
		// no WriteTimeout, event streams stay open
	}
	if opts.Hub != nil {
		// open streams would otherwise hold Shutdown until its deadline
		srv.RegisterOnShutdown(opts.Hub.Stop)
	}
	return &Server{httpServer: srv}
}

// NewRouter wires middleware and routes
func NewRouter(opts Options) http.Handler {
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultRateLimit
	}
	limiter := NewRateLimiter(opts.RateLimit, DefaultRateWindow)

	r := chi.NewRouter()

	// outermost first
	r.Use(chimw.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(RateLimitMiddleware(opts.TrustedProxies, limiter))
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, limiter))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.Store))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	profiles := handler.NewProfileHandler(opts.Directory, opts.Catalog.HasAvatar)
	games := handler.NewGameHandler(opts.Game)
	catalogs := handler.NewCatalogHandler(opts.Catalog, opts.Clock)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", profiles.HandleList)
			r.Post("/", profiles.HandleCreate)

			r.Route("/{"+handler.ParamProfileID+"}", func(r chi.Router) {
				r.Delete("/", profiles.HandleDelete)
				r.Post("/login", profiles.HandleLogin)

				r.Get("/state", games.HandleState)
				r.Get("/radar", games.HandleRadar)
				r.Get("/events", sse.Handler(opts.Hub, streamSource{opts.Game}, profileParam, handler.RespondServiceError))

				r.Post("/quests", games.HandleAddQuest)
				r.Post("/quests/reset", games.HandleResetPeriodic)
				r.Route("/quests/{"+handler.ParamQuestID+"}", func(r chi.Router) {
					r.Delete("/", games.HandleDeleteQuest)
					r.Post("/toggle", games.HandleToggleQuest)
					r.Post("/advance", games.HandleAdvanceQuest)
				})

				r.Post("/daily-gift", games.HandleDailyGift)
				r.Post("/boxes/open", games.HandleOpenBox)
				r.Post("/shop/{"+handler.ParamItemID+"}", games.HandleBuyItem)
				r.Post("/minigames/win", games.HandleMinigameWin)
			})
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/shop", catalogs.HandleShop)
			r.Get("/avatars", catalogs.HandleAvatars)
			r.Get("/presets", catalogs.HandlePresets)
		})
		r.Get("/season", catalogs.HandleSeason)
	})

	return r
}

func profileParam(r *http.Request) string {
	return chi.URLParam(r, handler.ParamProfileID)
}

// streamSource feeds the event stream from the game service
type streamSource struct {
	svc game.Service
}

func (s streamSource) Snapshot(ctx context.Context, profileID string) (interface{}, error) {
	return s.svc.State(ctx, profileID)
}

func (s streamSource) Watch(ctx context.Context, profileID string) func() {
	return s.svc.Watch(ctx, profileID)
}

// responseWriter captures the status code for the request log
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
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

// Flush lets event streams through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, logger.GetRequestID(ctx))
		log := logger.FromContext(ctx)

		log.Debug(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		level := log.Info
		if strings.HasSuffix(r.URL.Path, "/events") {
			level = log.Debug
		}
		level(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
