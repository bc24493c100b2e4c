package routes

import (
	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterAIRoutes registers the match scoring and suggestion routes.
func RegisterAIRoutes(
	rg *gin.RouterGroup,
	aiHandler handlers.AIHandlerInterface,
	authMiddleware gin.HandlerFunc,
	require CapabilityGate,
) {
	ai := rg.Group("/ai")
	ai.Use(authMiddleware)

	match := ai.Group("/match", require(models.CapRunMatching))
	{
		match.POST("", aiHandler.AnalyzeMatch)
		match.GET("", aiHandler.ListMatches)
	}

	suggestions := ai.Group("/suggestions", require(models.CapRequestSuggestions))
	{
		suggestions.POST("", aiHandler.Suggest)
		suggestions.GET("", aiHandler.ListSuggestions)
		suggestions.PATCH("/:id", aiHandler.UpdateSuggestionStatus)
	}
}
