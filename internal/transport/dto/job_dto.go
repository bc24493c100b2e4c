// internal/transport/dto/job_dto.go
package dto

import (
	"referral-network-api/internal/models" // Import models for enums

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// CreateJobRequest defines the structure for creating a new job posting.
// Content rules live in jobform; tags here only check shape.
type CreateJobRequest struct {
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	Requirements     []models.Requirement    `json:"requirements"`
	Skills           []string                `json:"skills"`
	SalaryMin        *int64                  `json:"salary_min,omitempty"`
	SalaryMax        *int64                  `json:"salary_max,omitempty"`
	LocationType     models.LocationType     `json:"location_type"`
	LocationCity     *string                 `json:"location_city,omitempty"`
	ExperienceLevel  models.ExperienceLevel  `json:"experience_level"`
	JobType          models.JobType          `json:"job_type"`
	SubscriptionTier models.SubscriptionTier `json:"subscription_tier"`
	Status           models.JobStatus        `json:"status" validate:"omitempty,oneof=draft active"`
	ClientID         uuid.UUID               `json:"-"` // Set internally by handler from auth context
}

// PatchJobRequest carries a partial update. Nil fields are left unchanged.
type PatchJobRequest struct {
	Title            *string                  `json:"title,omitempty"`
	Description      *string                  `json:"description,omitempty"`
	Requirements     *[]models.Requirement    `json:"requirements,omitempty"`
	Skills           *[]string                `json:"skills,omitempty"`
	SalaryMin        *int64                   `json:"salary_min,omitempty"`
	SalaryMax        *int64                   `json:"salary_max,omitempty"`
	LocationType     *models.LocationType     `json:"location_type,omitempty"`
	LocationCity     *string                  `json:"location_city,omitempty"`
	ExperienceLevel  *models.ExperienceLevel  `json:"experience_level,omitempty"`
	JobType          *models.JobType          `json:"job_type,omitempty"`
	SubscriptionTier *models.SubscriptionTier `json:"subscription_tier,omitempty"`
	Status           *models.JobStatus        `json:"status,omitempty" validate:"omitempty,oneof=draft active paused filled"`
	JobID            uuid.UUID                `json:"-"` // From URL path
	UserID           uuid.UUID                `json:"-"`
}

// IsEmpty reports whether the patch changes nothing.
func (r *PatchJobRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Requirements == nil && r.Skills == nil &&
		r.SalaryMin == nil && r.SalaryMax == nil && r.LocationType == nil && r.LocationCity == nil &&
		r.ExperienceLevel == nil && r.JobType == nil && r.SubscriptionTier == nil && r.Status == nil
}

// ListJobsRequest defines parameters for listing jobs.
type ListJobsRequest struct {
	PageQuery
	Search string `form:"search" validate:"omitempty,max=200"`
	Status string `form:"status" validate:"omitempty,oneof=draft active paused filled"`
}

// --- Job Response DTOs ---

// JobListResponse is the paginated job envelope.
type JobListResponse struct {
	Jobs  []models.Job `json:"jobs"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int          `json:"total"`
}

// JobChangesResponse lists a job's change log.
type JobChangesResponse struct {
	Changes []models.JobChange `json:"changes"`
}
