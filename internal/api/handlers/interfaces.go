// internal/api/handlers/interfaces.go
package handlers

import "github.com/gin-gonic/gin"

// ProfileHandlerInterface defines the methods needed by the profile routes.
type ProfileHandlerInterface interface {
	GetProfile(c *gin.Context)
	CreateProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
}

// DevHandlerInterface defines the methods needed by the dev routes.
type DevHandlerInterface interface {
	SwitchRole(c *gin.Context)
	SeedTestUsers(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	CreateJob(c *gin.Context)
	ListJobs(c *gin.Context)
	GetJobByID(c *gin.Context)
	PatchJob(c *gin.Context)
	ListJobChanges(c *gin.Context)
}

// ReferralHandlerInterface defines the methods needed by the referral routes.
type ReferralHandlerInterface interface {
	CreateReferral(c *gin.Context)
	ListReferrals(c *gin.Context)
}

// AIHandlerInterface defines the methods needed by the AI routes.
type AIHandlerInterface interface {
	AnalyzeMatch(c *gin.Context)
	ListMatches(c *gin.Context)
	Suggest(c *gin.Context)
	ListSuggestions(c *gin.Context)
	UpdateSuggestionStatus(c *gin.Context)
}

// ResumeHandlerInterface defines the methods needed by the storage routes.
type ResumeHandlerInterface interface {
	CreateUpload(c *gin.Context)
	Upload(c *gin.Context)
}

// DashboardHandlerInterface defines the methods needed by the dashboard routes.
type DashboardHandlerInterface interface {
	GetDashboard(c *gin.Context)
}

// RealtimeHandlerInterface defines the methods needed by the websocket route.
type RealtimeHandlerInterface interface {
	Connect(c *gin.Context)
}

// Ensure handlers implements the interface (compile-time check)
var _ ProfileHandlerInterface = (*ProfileHandler)(nil)
var _ DevHandlerInterface = (*DevHandler)(nil)
var _ JobHandlerInterface = (*JobHandler)(nil)
var _ ReferralHandlerInterface = (*ReferralHandler)(nil)
var _ AIHandlerInterface = (*AIHandler)(nil)
var _ ResumeHandlerInterface = (*ResumeHandler)(nil)
var _ DashboardHandlerInterface = (*DashboardHandler)(nil)
var _ RealtimeHandlerInterface = (*RealtimeHandler)(nil)
