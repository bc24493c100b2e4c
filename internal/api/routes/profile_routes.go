package routes

import (
	"referral-network-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterProfileRoutes registers the caller's own profile routes. They need
// only a session since the profile may not exist yet.
func RegisterProfileRoutes(rg *gin.RouterGroup, profileHandler handlers.ProfileHandlerInterface, authMiddleware gin.HandlerFunc) {
	profile := rg.Group("/profile")
	profile.Use(authMiddleware)
	{
		profile.GET("", profileHandler.GetProfile)
		profile.POST("", profileHandler.CreateProfile)
		profile.PATCH("", profileHandler.UpdateProfile)
	}
}

// RegisterDevRoutes registers the development-only role tooling.
func RegisterDevRoutes(rg *gin.RouterGroup, devHandler handlers.DevHandlerInterface, authMiddleware gin.HandlerFunc) {
	dev := rg.Group("/dev")
	dev.Use(authMiddleware)
	{
		dev.POST("/role", devHandler.SwitchRole)
		dev.POST("/test-users", devHandler.SeedTestUsers)
	}
}
