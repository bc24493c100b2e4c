package routes

import (
	"log"

	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/api/middleware"
	"referral-network-api/internal/app"
	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	api := router.Group("/api")

	//Create handlers
	svc := app.Services
	profileHandler := handlers.NewProfileHandler(svc.Profiles, app.Validator)
	devHandler := handlers.NewDevHandler(svc.Dev, app.Validator)
	jobHandler := handlers.NewJobHandler(svc.Jobs, app.Validator)
	referralHandler := handlers.NewReferralHandler(svc.Referrals, app.Validator)
	aiHandler := handlers.NewAIHandler(svc.Matches, svc.Suggestions, app.Validator)
	resumeHandler := handlers.NewResumeHandler(svc.Resumes, app.Validator)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	realtimeHandler := handlers.NewRealtimeHandler(app.Hub)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Sessions)
	require := func(caps ...models.Capability) gin.HandlerFunc {
		return middleware.RequireCapability(svc.Profiles, caps...)
	}

	// --- Register Resource Routes ---
	RegisterProfileRoutes(api, profileHandler, authMiddleware)
	RegisterDevRoutes(api, devHandler, authMiddleware)
	RegisterJobRoutes(api, jobHandler, authMiddleware, require)
	RegisterReferralRoutes(api, referralHandler, authMiddleware, require)
	RegisterAIRoutes(api, aiHandler, authMiddleware, require)
	RegisterStorageRoutes(api, resumeHandler, authMiddleware, require)
	RegisterDashboardRoutes(api, dashboardHandler, authMiddleware, require)
	RegisterRealtimeRoutes(api, realtimeHandler, authMiddleware)

	// --- Page Routes ---
	RegisterPageRoutes(router, dashboardHandler, profileHandler, PageGates{
		Auth: func() gin.HandlerFunc { return middleware.RequireAuth(app.Sessions) },
		Role: func(redirectPath string, roles ...models.Role) gin.HandlerFunc {
			return middleware.RequireRole(app.Sessions, svc.Profiles, redirectPath, roles...)
		},
	})

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)
	if app.DBPool != nil {
		router.GET("/ready", handlers.Readiness(app.DBPool))
	}

	log.Println("Configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
