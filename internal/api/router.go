package api

import (
	"net/http"

	"github.com/fundboard/fundboard/internal/api/handler"
	customMiddleware "github.com/fundboard/fundboard/internal/api/middleware"
	"github.com/fundboard/fundboard/internal/config"
	"github.com/fundboard/fundboard/internal/ocr"
	"github.com/fundboard/fundboard/internal/ocr/gemini"
	"github.com/fundboard/fundboard/internal/repository/postgres"
	"github.com/fundboard/fundboard/internal/repository/redis"
	"github.com/fundboard/fundboard/internal/security"
	"github.com/fundboard/fundboard/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)

	// Initialize rate limiter and analytics cache
	rateLimiter := redis.NewRateLimiter(redisClient, cfg.Security.RateLimit)
	analyticsCache := redis.NewAnalyticsCache(redisClient)

	// Receipt OCR provider
	var ocrProvider ocr.Provider
	if cfg.OCR.GeminiAPIKey != "" {
		log.Info().Str("model", cfg.OCR.GeminiModel).Msg("Registering Gemini receipt provider")
		ocrProvider = gemini.NewProvider(cfg.OCR)
	} else {
		log.Warn().Msg("Gemini API key is empty, receipt scanning disabled")
	}

	// Initialize services
	guard := service.NewAccessGuard(workspaceRepo)
	authService := service.NewAuthService(userRepo, workspaceRepo, jwtManager)
	workspaceService := service.NewWorkspaceService(workspaceRepo, userRepo, guard)
	planService := service.NewPlanService(planRepo, guard)
	expenseService := service.NewExpenseService(expenseRepo, planRepo, guard)
	analyticsService := service.NewAnalyticsService(planRepo, expenseRepo, guard)
	receiptService := service.NewReceiptService(ocrProvider, planRepo, guard)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	memberHandler := handler.NewMemberHandler(workspaceService)
	planHandler := handler.NewPlanHandler(planService, analyticsCache)
	expenseHandler := handler.NewExpenseHandler(expenseService, analyticsCache)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, analyticsCache)
	receiptHandler := handler.NewReceiptHandler(receiptService)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	// Public routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db, redisClient))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/auth/me", authHandler.Me)

			// Workspace routes
			r.Route("/workspaces", func(r chi.Router) {
				r.Get("/", workspaceHandler.List)
				r.Post("/", workspaceHandler.Create)

				r.Route("/{workspaceID}", func(r chi.Router) {
					r.Use(customMiddleware.WorkspaceContext)

					r.Get("/", workspaceHandler.Get)
					r.Patch("/", workspaceHandler.Update)
					r.Delete("/", workspaceHandler.Delete)

					// Membership routes
					r.Route("/members", func(r chi.Router) {
						r.Get("/", memberHandler.List)
						r.Post("/", memberHandler.Invite)
						r.Delete("/{userID}", memberHandler.Remove)
					})

					// Plan routes
					r.Route("/plans", func(r chi.Router) {
						r.Get("/", planHandler.List)
						r.Post("/", planHandler.Create)
						r.Get("/types", planHandler.ListTypes)

						r.Route("/{planID}", func(r chi.Router) {
							r.Get("/", planHandler.Get)
							r.Patch("/", planHandler.Update)
							r.Delete("/", planHandler.Delete)
						})
					})

					// Expense routes
					r.Route("/expenses", func(r chi.Router) {
						r.Get("/", expenseHandler.List)
						r.Post("/", expenseHandler.Create)
						r.Get("/summary", expenseHandler.Summary)
						r.Post("/scan-receipt", receiptHandler.Scan)

						r.Route("/{expenseID}", func(r chi.Router) {
							r.Get("/", expenseHandler.Get)
							r.Patch("/", expenseHandler.Update)
							r.Delete("/", expenseHandler.Delete)
						})
					})

					// Analytics
					r.Get("/analytics", analyticsHandler.Get)
				})
			})
		})
	})

	return r
}
