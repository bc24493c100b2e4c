package routes

import (
	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterStorageRoutes registers resume upload routes. The PUT is
// authorized by its signed token rather than the session.
func RegisterStorageRoutes(
	rg *gin.RouterGroup,
	resumeHandler handlers.ResumeHandlerInterface,
	authMiddleware gin.HandlerFunc,
	require CapabilityGate,
) {
	resumes := rg.Group("/storage/resumes")
	resumes.POST("", authMiddleware, require(models.CapSubmitReferrals), resumeHandler.CreateUpload)
	resumes.PUT("/upload", resumeHandler.Upload)
}
