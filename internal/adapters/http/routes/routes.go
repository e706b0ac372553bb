package routes

import (
	"pharmadz/internal/adapters/http/handlers"
	"pharmadz/internal/adapters/http/middleware"
	"pharmadz/internal/adapters/persistence/repositories"
	"pharmadz/internal/config"
	"pharmadz/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	sessionTokenRepo := repositories.NewSessionTokenRepository(db)
	pharmacyRepo := repositories.NewPharmacyRepository(db)
	prescriptionRepo := repositories.NewPrescriptionRepository(db)
	chatRepo := repositories.NewChatMessageRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, sessionTokenRepo, pharmacyRepo, cfg)
	oauthService := services.NewOAuthService(userRepo, sessionTokenRepo, cfg)
	pharmacyService := services.NewPharmacyService(pharmacyRepo)
	stockService := services.NewStockService(pharmacyRepo)
	dashboardService := services.NewDashboardService(db, pharmacyRepo, prescriptionRepo)
	adminService := services.NewAdminService(db, pharmacyRepo)
	chatService := services.NewChatService(pharmacyRepo, chatRepo, cfg.Assistant)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, oauthService, cfg)
	pharmacyHandler := handlers.NewPharmacyHandler(pharmacyService)
	stockHandler := handlers.NewStockHandler(stockService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminHandler := handlers.NewAdminHandler(adminService)
	chatHandler := handlers.NewChatHandler(chatService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionRepo, pharmacyRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Public search surface
	api.Get("/pharmacies", pharmacyHandler.List)
	api.Get("/pharmacies/:id", pharmacyHandler.Get)
	api.Post("/search-medication", pharmacyHandler.SearchMedication)
	api.Get("/regions/wilayas", pharmacyHandler.Wilayas)
	api.Get("/regions/wilayas/:wilaya/communes", pharmacyHandler.Communes)

	// Prescriptions
	api.Post("/prescriptions", prescriptionHandler.Create)
	api.Get("/prescriptions/:userId", prescriptionHandler.ListByUser)

	// Public assistant (scoped to one pharmacy)
	api.Post("/chat/:pharmacyId", chatHandler.AskPublic)

	// Auth routes (rate limited)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Get("/session-data", middleware.AuthRateLimiter(), authHandler.SessionData)
	auth.Get("/oauth/callback", middleware.AuthRateLimiter(), authHandler.OAuthCallback)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Pharmacy staff surface
	pharmacy := api.Group("/pharmacy", middleware.AuthMiddleware(cfg), middleware.PharmacyStaffOnly())
	pharmacy.Get("/dashboard", dashboardHandler.Get)
	pharmacy.Get("/stock", stockHandler.List)
	pharmacy.Put("/stock", stockHandler.Replace)
	pharmacy.Post("/stock/items", stockHandler.AppendItem)
	pharmacy.Patch("/stock/items/:index", stockHandler.UpdateItem)
	pharmacy.Delete("/stock/items/:index", stockHandler.RemoveItem)
	pharmacy.Post("/stock/upload-excel", middleware.UploadRateLimiter(), stockHandler.Upload)
	pharmacy.Get("/stock/template", stockHandler.Template)
	pharmacy.Post("/chat", chatHandler.Ask)
	pharmacy.Get("/chat", chatHandler.History)

	// Admin back office
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/pharmacies", adminHandler.ListPharmacies)
	admin.Post("/pharmacies", adminHandler.CreatePharmacy)
	admin.Put("/pharmacies/:id", adminHandler.UpdatePharmacy)
	admin.Delete("/pharmacies/:id", adminHandler.DeletePharmacy)
}
