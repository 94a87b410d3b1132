// Package api provides the HTTP API server and handlers for ClarityOS.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/clarityos/clarity-server/internal/backup"
	"github.com/clarityos/clarity-server/internal/backup/export"
	"github.com/clarityos/clarity-server/internal/config"
	"github.com/clarityos/clarity-server/internal/http/response"
	"github.com/clarityos/clarity-server/internal/ratelimit"
	"github.com/clarityos/clarity-server/internal/service"
	"github.com/clarityos/clarity-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         *store.Store
	diaryService  *service.DiaryService
	wellness      *service.WellnessService
	analytics     *service.AnalyticsService
	money         *service.MoneyService
	backupService *backup.Service
	exporter      *export.Exporter
	limiter       *ratelimit.KeyedRateLimiter
	router        *chi.Mux
	api           huma.API
	logger        *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	st *store.Store,
	diaryService *service.DiaryService,
	wellness *service.WellnessService,
	analytics *service.AnalyticsService,
	money *service.MoneyService,
	backupService *backup.Service,
	limiter *ratelimit.KeyedRateLimiter,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:         st,
		diaryService:  diaryService,
		wellness:      wellness,
		analytics:     analytics,
		money:         money,
		backupService: backupService,
		exporter:      export.New(st),
		limiter:       limiter,
		router:        chi.NewRouter(),
		logger:        logger,
	}

	s.setupMiddleware()

	RegisterErrorHandler()
	s.api = humachi.New(s.router, huma.DefaultConfig("ClarityOS API", config.Version))

	s.setupRoutes()
	s.registerAdminBackupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		// The web client is served from its own origin on the LAN.
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
}

// setupRoutes configures the chi-served routes. The admin surface is
// registered separately through huma.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Diary entries, one collection per kind.
		r.Route("/entries/{kind}", func(r chi.Router) {
			r.Get("/", s.handleListEntries)
			r.Post("/", s.handleCreateEntry)
			r.Get("/period", s.handleFindEntryForPeriod)
			r.Get("/streak", s.handleEntryStreak)
			r.Patch("/{id}", s.handleUpdateEntry)
			r.Delete("/{id}", s.handleDeleteEntry)
		})

		// Wellness check-ins.
		r.Route("/wellness", func(r chi.Router) {
			r.Get("/", s.handleListCheckIns)
			r.Post("/", s.handleCheckIn)
			r.Get("/today", s.handleTodayCheckIn)
			r.Get("/streak", s.handleWellnessStreak)
			r.Get("/analytics", s.handleWellnessAnalytics)
		})

		// Diary analytics.
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/emotions", s.handleEmotionHistogram)
			r.Get("/words", s.handleWordFrequency)
			r.Get("/activities", s.handleMoodActivityCorrelation)
			r.Get("/time-patterns", s.handleMoodTimePatterns)
			r.Get("/writing", s.handleWritingInsights)
			r.Get("/goals", s.handleGoalProgress)
			r.Get("/insights", s.handleGrowthInsights)
		})

		// Money manager.
		r.Route("/money", func(r chi.Router) {
			r.Get("/transactions", s.handleListTransactions)
			r.Post("/transactions", s.handleCreateTransaction)
			r.Delete("/transactions/{id}", s.handleDeleteTransaction)
			r.Get("/budgets", s.handleListBudgets)
			r.Put("/budgets/{category}", s.handleSetBudget)
			r.Get("/summary", s.handleMonthSummary)
		})

		// Notifications.
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.handleListNotifications)
			r.Post("/{id}/read", s.handleMarkNotificationRead)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status":  "healthy",
		"version": config.Version,
	}, s.logger)
}
