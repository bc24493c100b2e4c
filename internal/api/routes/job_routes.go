package routes

import (
	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to jobs.
// It applies the provided authentication middleware to all job routes.
func RegisterJobRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api)
	jobHandler handlers.JobHandlerInterface, // Use interface
	authMiddleware gin.HandlerFunc,
	require CapabilityGate,
) {
	jobs := rg.Group("/jobs")
	jobs.Use(authMiddleware) // Apply auth middleware to all job routes
	{
		jobs.POST("", require(models.CapPostJobs), jobHandler.CreateJob)
		jobs.GET("", require(models.CapPostJobs, models.CapBrowseJobs), jobHandler.ListJobs)
		jobs.GET("/:id", require(models.CapPostJobs, models.CapBrowseJobs), jobHandler.GetJobByID)
		jobs.PATCH("/:id", require(models.CapPostJobs), jobHandler.PatchJob)
		jobs.GET("/:id/changes", require(models.CapPostJobs), jobHandler.ListJobChanges)
	}
}
