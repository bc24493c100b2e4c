package storage

import (
	"context"
	"time"

	"referral-network-api/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobFilter narrows a job listing. A nil ClientID lists across clients.
type JobFilter struct {
	ClientID *uuid.UUID
	Status   *models.JobStatus
	Search   string
	Offset   int
	Limit    int
}

// ReferralFilter narrows a referral listing. ReferrerID and ClientID scope
// the rows to what the caller may see.
type ReferralFilter struct {
	ReferrerID *uuid.UUID
	ClientID   *uuid.UUID
	JobID      *uuid.UUID
	Offset     int
	Limit      int
}

// ProfileUpdate carries the display fields a user may edit on their own profile.
type ProfileUpdate struct {
	ID              uuid.UUID
	FullName        *string
	Company         *string
	Headline        *string
	Skills          []string
	YearsExperience *int
}

// ProfileRepository defines the interface for profile data operations.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error)
	Update(ctx context.Context, upd *ProfileUpdate) (*models.Profile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.Profile, error)
	ListCandidatePool(ctx context.Context, limit int) ([]models.Profile, error)
}

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, f JobFilter) ([]models.Job, int, error)
	Update(ctx context.Context, job *models.Job) (*models.Job, error)
	AddChange(ctx context.Context, change *models.JobChange) error
	ListChanges(ctx context.Context, jobID uuid.UUID) ([]models.JobChange, error)
	WithTx(tx pgx.Tx) JobRepository
}

// ReferralRepository defines the interface for referral data operations.
type ReferralRepository interface {
	Create(ctx context.Context, r *models.Referral) (*models.Referral, error)
	List(ctx context.Context, f ReferralFilter) ([]models.Referral, int, error)
}

// MatchAnalysisRepository defines the interface for stored match scorings.
type MatchAnalysisRepository interface {
	Create(ctx context.Context, a *models.MatchAnalysis) (*models.MatchAnalysis, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, minScore int) ([]models.MatchAnalysis, error)
}

// SuggestionRepository defines the interface for stored candidate suggestions.
type SuggestionRepository interface {
	BulkCreate(ctx context.Context, suggestions []models.CandidateSuggestion) (int64, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.SuggestionWithCandidate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.CandidateSuggestion, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.SuggestionStatus) (*models.CandidateSuggestion, error)
}

// ResumeUploadRepository tracks signed resume uploads.
type ResumeUploadRepository interface {
	Create(ctx context.Context, u *models.ResumeUpload) (*models.ResumeUpload, error)
	GetByPath(ctx context.Context, storagePath string) (*models.ResumeUpload, error)
	MarkUploaded(ctx context.Context, id uuid.UUID, size int64) error
	DeletePendingBefore(ctx context.Context, cutoff time.Time) ([]models.ResumeUpload, error)
}

// DashboardRepository computes the per-role aggregates.
type DashboardRepository interface {
	ClientStats(ctx context.Context, clientID uuid.UUID) (*models.ClientDashboard, error)
	ReferrerStats(ctx context.Context, referrerID uuid.UUID) (*models.ReferrerDashboard, error)
	CandidateStats(ctx context.Context, candidateID uuid.UUID) (*models.CandidateDashboard, error)
}
