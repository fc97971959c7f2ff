package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/config"
	"github.com/sahilchouksey/internship-simulator/database"
	"github.com/sahilchouksey/internship-simulator/handlers"
	admin_handlers "github.com/sahilchouksey/internship-simulator/handlers/admin"
	auth_handlers "github.com/sahilchouksey/internship-simulator/handlers/auth"
	certificate_handlers "github.com/sahilchouksey/internship-simulator/handlers/certificate"
	industry_handlers "github.com/sahilchouksey/internship-simulator/handlers/industry"
	internal_handlers "github.com/sahilchouksey/internship-simulator/handlers/internalapi"
	internship_handlers "github.com/sahilchouksey/internship-simulator/handlers/internship"
	supervisor_handlers "github.com/sahilchouksey/internship-simulator/handlers/supervisor"
	task_handlers "github.com/sahilchouksey/internship-simulator/handlers/task"
	"github.com/sahilchouksey/internship-simulator/services"
	"github.com/sahilchouksey/internship-simulator/services/openai"
	"github.com/sahilchouksey/internship-simulator/services/spaces"
	"github.com/sahilchouksey/internship-simulator/services/supervisor"
	"github.com/sahilchouksey/internship-simulator/utils/auth"
	"github.com/sahilchouksey/internship-simulator/utils/cache"
	"github.com/sahilchouksey/internship-simulator/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage, env *config.EnviornmentVariable) {
	if env.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "internship-simulator-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        env.JWT_SECRET,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for brute force protection and locks
	redisURL := env.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	// Initialize brute force protection
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// AI gateway shared by the domain services
	chatClient := openai.NewChatClient(openai.Config{
		APIKey:  env.OPENAI_API_KEY,
		BaseURL: env.OPENAI_ENDPOINT,
		Model:   env.OPENAI_MODEL,
	})
	gateway := supervisor.NewGateway(chatClient)

	// File storage is optional; submissions degrade to text-only
	var spacesClient *spaces.Client
	if env.DO_SPACES_KEY != "" && env.DO_SPACES_SECRET != "" {
		spacesClient, err = spaces.NewClient(spaces.Config{
			AccessKey: env.DO_SPACES_KEY,
			SecretKey: env.DO_SPACES_SECRET,
			Bucket:    env.DO_SPACES_BUCKET,
			Region:    env.DO_SPACES_REGION,
			Endpoint:  env.DO_SPACES_ENDPOINT,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize file storage: %v. Submissions will be text-only.", err)
		}
	}

	// Domain services
	internshipService := services.NewInternshipService(db, gateway)
	evaluationService := services.NewEvaluationService(db, gateway, redisCache, env.EVALUATOR_ENDPOINT, env.INTERNAL_API_KEY)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	internshipHandler := internship_handlers.NewInternshipHandler(db, internshipService, evaluationService)
	taskHandler := task_handlers.NewTaskHandler(db, evaluationService, gateway, spacesClient)
	supervisorHandler := supervisor_handlers.NewSupervisorHandler(db, gateway)
	dataHandler := admin_handlers.NewDataHandler(db, gateway)
	internalHandler := internal_handlers.NewInternalHandler(db, evaluationService)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error { return handlers.HandleCheckHealth(c, store) })

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Industry catalog (public)
	industries := api.Group("/industries")
	industries.Get("/", func(c *fiber.Ctx) error { return industry_handlers.ListIndustries(c, store) })
	industries.Get("/:id", func(c *fiber.Ctx) error { return industry_handlers.GetIndustry(c, store) })
	industries.Get("/:id/companies", func(c *fiber.Ctx) error { return industry_handlers.ListCompanies(c, store) })
	industries.Get("/:id/roles", func(c *fiber.Ctx) error { return industry_handlers.ListRoles(c, store) })

	// Student dashboard (protected)
	api.Get("/dashboard", authMiddleware.Required(), internshipHandler.Dashboard)

	// Internship lifecycle (protected)
	internships := api.Group("/internships", authMiddleware.Required())
	internships.Post("/", internshipHandler.Start)
	internships.Get("/", internshipHandler.List)
	internships.Get("/:id", internshipHandler.Get)
	internships.Delete("/:id", internshipHandler.Delete)

	// Tasks and submissions (protected)
	tasks := api.Group("/tasks", authMiddleware.Required())
	tasks.Get("/:id", taskHandler.Get)
	tasks.Post("/:id/submit", taskHandler.Submit)
	tasks.Get("/:id/resources", taskHandler.Resources)

	api.Get("/submissions/:id", authMiddleware.Required(), taskHandler.GetSubmission)

	// AI supervisor Q&A (protected)
	api.Post("/supervisor/ask", authMiddleware.Required(), supervisorHandler.Ask)

	// Certificates (protected)
	certificates := api.Group("/certificates", authMiddleware.Required())
	certificates.Get("/", func(c *fiber.Ctx) error { return certificate_handlers.ListCertificates(c, store) })
	certificates.Get("/:id", func(c *fiber.Ctx) error { return certificate_handlers.GetCertificate(c, store) })

	// Admin routes
	admin := api.Group("/admin", authMiddleware.RequireAdmin())

	// Admin user management
	admin.Get("/users", func(c *fiber.Ctx) error { return admin_handlers.ListUsers(c, store) })
	admin.Get("/users/:id", func(c *fiber.Ctx) error { return admin_handlers.GetUser(c, store) })
	admin.Put("/users/:id", middleware.AdminAuditLog(store, "user_update", "users"), func(c *fiber.Ctx) error { return admin_handlers.UpdateUser(c, store) })
	admin.Delete("/users/:id", middleware.AdminAuditLog(store, "user_delete", "users"), func(c *fiber.Ctx) error { return admin_handlers.DeleteUser(c, store) })
	admin.Post("/users/:id/reset-password", middleware.AdminAuditLog(store, "password_reset", "users"), func(c *fiber.Ctx) error { return admin_handlers.ResetUserPassword(c, store) })

	// Admin internship oversight
	admin.Get("/internships", func(c *fiber.Ctx) error { return admin_handlers.ListInternships(c, store) })

	// Admin analytics
	admin.Get("/analytics/overview", func(c *fiber.Ctx) error { return admin_handlers.GetOverviewAnalytics(c, store) })
	admin.Get("/analytics/users", func(c *fiber.Ctx) error { return admin_handlers.GetUserAnalytics(c, store) })
	admin.Get("/analytics/internships", func(c *fiber.Ctx) error { return admin_handlers.GetInternshipAnalytics(c, store) })
	admin.Get("/analytics/cron", func(c *fiber.Ctx) error { return admin_handlers.GetCronAnalytics(c, store) })

	// Admin audit logs
	admin.Get("/audit", func(c *fiber.Ctx) error { return admin_handlers.ListAuditLogs(c, store) })
	admin.Get("/audit/:id", func(c *fiber.Ctx) error { return admin_handlers.GetAuditLog(c, store) })

	// Admin data management
	admin.Post("/initialize-data", middleware.AdminAuditLog(store, "data_initialize", "industries"), dataHandler.InitializeData)
	admin.Post("/industries/:id/generate", middleware.AdminAuditLog(store, "catalog_generate", "industries"), dataHandler.GenerateCompaniesRoles)

	// Internal service-to-service API, guarded by shared key
	internal := api.Group("/internal", middleware.InternalAPIKey(env.INTERNAL_API_KEY))
	internal.Get("/submission/:id", internalHandler.GetSubmission)
	internal.Post("/submission/:id/update", internalHandler.UpdateSubmission)
	internal.Post("/task/:id/update", internalHandler.UpdateTask)
	internal.Post("/internship/:id/update-progress", internalHandler.UpdateProgress)
	internal.Post("/internship/:id/check-completion", internalHandler.CheckCompletion)
}
