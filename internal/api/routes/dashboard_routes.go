package routes

import (
	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes registers the JSON dashboard endpoint.
func RegisterDashboardRoutes(
	rg *gin.RouterGroup,
	dashboardHandler handlers.DashboardHandlerInterface,
	authMiddleware gin.HandlerFunc,
	require CapabilityGate,
) {
	rg.GET("/dashboard", authMiddleware, require(models.CapViewDashboard), dashboardHandler.GetDashboard)
}

// PageGates builds the redirecting gates used by page routes.
type PageGates struct {
	Auth func() gin.HandlerFunc
	Role func(redirectPath string, roles ...models.Role) gin.HandlerFunc
}

// RegisterPageRoutes registers browser-facing routes that redirect instead of
// answering 401/403.
func RegisterPageRoutes(
	router gin.IRouter,
	dashboardHandler handlers.DashboardHandlerInterface,
	profileHandler handlers.ProfileHandlerInterface,
	gates PageGates,
) {
	router.GET("/profile", gates.Auth(), profileHandler.GetProfile)
	router.GET("/dashboard", gates.Role("/profile", models.AllRoles...), dashboardHandler.GetDashboard)

	pages := router.Group("/dashboard")
	{
		pages.GET("/client", gates.Role("", models.RoleClient), dashboardHandler.GetDashboard)
		pages.GET("/network", gates.Role("", models.RoleFoundingCircle, models.RoleSelectCircle), dashboardHandler.GetDashboard)
		pages.GET("/candidate", gates.Role("", models.RoleCandidate), dashboardHandler.GetDashboard)
	}
}
