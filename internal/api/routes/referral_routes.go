package routes

import (
	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterReferralRoutes registers the referral submission and listing routes.
func RegisterReferralRoutes(
	rg *gin.RouterGroup,
	referralHandler handlers.ReferralHandlerInterface,
	authMiddleware gin.HandlerFunc,
	require CapabilityGate,
) {
	referrals := rg.Group("/referrals")
	referrals.Use(authMiddleware)
	{
		referrals.POST("", require(models.CapSubmitReferrals), referralHandler.CreateReferral)
		referrals.GET("", require(models.CapSubmitReferrals, models.CapViewOwnReferrals), referralHandler.ListReferrals)
	}
}
