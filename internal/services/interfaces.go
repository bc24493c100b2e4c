package services

import (
	"context"
	"io"

	"referral-network-api/internal/models"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
)

// ProfileService defines the interface for profile-related business logic.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	CreateProfile(ctx context.Context, actor Actor, req *dto.CreateProfileRequest) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error)
}

// DevService defines the development-only role tooling.
type DevService interface {
	SwitchRole(ctx context.Context, actor Actor, role models.Role) (*models.Profile, error)
	SeedTestUsers(ctx context.Context, actor Actor) ([]models.Profile, error)
}

// JobService defines the interface for job-related business logic.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetJob(ctx context.Context, actor Actor, jobID uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, actor Actor, req *dto.ListJobsRequest) (*dto.JobListResponse, error)
	PatchJob(ctx context.Context, req *dto.PatchJobRequest) (*models.Job, error)
	ListJobChanges(ctx context.Context, actor Actor, jobID uuid.UUID) ([]models.JobChange, error)
}

// ReferralService defines the interface for referral business logic.
type ReferralService interface {
	CreateReferral(ctx context.Context, req *dto.CreateReferralRequest) (*models.Referral, error)
	ListReferrals(ctx context.Context, actor Actor, req *dto.ListReferralsRequest) (*dto.ReferralListResponse, error)
}

// MatchService scores resumes against jobs with the language model.
type MatchService interface {
	Analyze(ctx context.Context, actor Actor, req *dto.MatchRequest) (*dto.MatchResponse, error)
	ListAnalyses(ctx context.Context, actor Actor, jobID uuid.UUID, minScore int) ([]models.MatchAnalysis, error)
}

// SuggestionService ranks network candidates for a job with the language model.
type SuggestionService interface {
	Suggest(ctx context.Context, actor Actor, req *dto.SuggestRequest) (*dto.SuggestResponse, error)
	ListSuggestions(ctx context.Context, actor Actor, jobID uuid.UUID) ([]models.SuggestionWithCandidate, error)
	UpdateStatus(ctx context.Context, actor Actor, suggestionID uuid.UUID, status models.SuggestionStatus) (*models.CandidateSuggestion, error)
}

// ResumeService issues signed upload URLs and stores resume blobs.
type ResumeService interface {
	CreateUpload(ctx context.Context, actor Actor, req *dto.CreateUploadRequest) (*dto.CreateUploadResponse, error)
	Upload(ctx context.Context, token, contentType string, body io.Reader) (*dto.UploadCompleteResponse, error)
	CleanupStale(ctx context.Context) (int, error)
}

// DashboardService computes role-specific aggregates.
type DashboardService interface {
	GetDashboard(ctx context.Context, actor Actor) (*models.Dashboard, error)
}
