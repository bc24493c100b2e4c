package routes

import (
	"referral-network-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRealtimeRoutes registers the websocket endpoint.
func RegisterRealtimeRoutes(rg *gin.RouterGroup, realtimeHandler handlers.RealtimeHandlerInterface, authMiddleware gin.HandlerFunc) {
	rg.GET("/ws", authMiddleware, realtimeHandler.Connect)
}
