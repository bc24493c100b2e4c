package services

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"strings"

	"referral-network-api/internal/jobform"
	"referral-network-api/internal/models"
	"referral-network-api/internal/storage"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
)

type jobService struct {
	jobRepo storage.JobRepository
	db      TxBeginner // For the patch + change log transaction
}

// NewJobService creates a new instance of JobService.
func NewJobService(jobRepo storage.JobRepository, db TxBeginner) JobService {
	return &jobService{jobRepo: jobRepo, db: db}
}

func formFromJob(j *models.Job) jobform.JobForm {
	f := jobform.JobForm{
		Title:            j.Title,
		Description:      j.Description,
		Requirements:     j.Requirements,
		Skills:           j.Skills,
		SalaryMin:        j.SalaryMin,
		SalaryMax:        j.SalaryMax,
		LocationType:     j.LocationType,
		ExperienceLevel:  j.ExperienceLevel,
		JobType:          j.JobType,
		SubscriptionTier: j.SubscriptionTier,
	}
	if j.LocationCity != nil {
		f.LocationCity = *j.LocationCity
	}
	return f
}

// validateForStatus applies the draft rules to drafts and the publish rules otherwise.
func validateForStatus(j *models.Job) error {
	form := formFromJob(j)
	if j.Status == models.JobStatusDraft {
		if jobform.CanSaveAsDraft(form) {
			return nil
		}
		fields := make(map[string]string)
		if strings.TrimSpace(form.Title) == "" {
			fields[jobform.FieldTitle] = "Title is required"
		}
		if strings.TrimSpace(form.Description) == "" {
			fields[jobform.FieldDescription] = "Description is required"
		}
		return newValidationError(fields)
	}
	if res := jobform.ValidateJobForm(form); !res.IsValid {
		return newValidationError(res.Errors)
	}
	return nil
}

// applyDraftDefaults fills enum columns a draft may leave blank.
func applyDraftDefaults(j *models.Job) {
	if j.LocationType == "" {
		j.LocationType = models.LocationRemote
	}
	if j.ExperienceLevel == "" {
		j.ExperienceLevel = models.ExperienceMid
	}
	if j.JobType == "" {
		j.JobType = models.JobTypeFullTime
	}
	if j.SubscriptionTier == "" {
		j.SubscriptionTier = models.TierConnect
	}
}

func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	status := req.Status
	if status == "" {
		status = models.JobStatusActive
	}
	job := &models.Job{
		ClientID:         req.ClientID,
		Title:            strings.TrimSpace(req.Title),
		Description:      strings.TrimSpace(req.Description),
		Requirements:     req.Requirements,
		Skills:           req.Skills,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		LocationType:     req.LocationType,
		LocationCity:     req.LocationCity,
		ExperienceLevel:  req.ExperienceLevel,
		JobType:          req.JobType,
		SubscriptionTier: req.SubscriptionTier,
		Status:           status,
	}
	if err := validateForStatus(job); err != nil {
		return nil, err
	}
	job.Skills = jobform.DedupeSkills(job.Skills)
	applyDraftDefaults(job)

	created, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		log.Printf("JobService: Error creating job: %v", err)
		return nil, MapRepoError(err, "creating job")
	}
	return created, nil
}

// GetJob returns a job the actor may see: its owner sees any status, everyone
// else only active postings.
func (s *jobService) GetJob(ctx context.Context, actor Actor, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, MapRepoError(err, "getting job by ID")
	}
	if job.ClientID == actor.ID {
		return job, nil
	}
	if actor.Role == models.RoleClient || job.Status != models.JobStatusActive {
		return nil, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, actor Actor, req *dto.ListJobsRequest) (*dto.JobListResponse, error) {
	req.Normalize()
	filter := storage.JobFilter{
		Search: strings.TrimSpace(req.Search),
		Offset: req.Offset(),
		Limit:  req.Limit,
	}
	if actor.Role == models.RoleClient {
		filter.ClientID = &actor.ID
		if req.Status != "" {
			st := models.JobStatus(req.Status)
			filter.Status = &st
		}
	} else {
		// Only published postings are browsable.
		active := models.JobStatusActive
		filter.Status = &active
	}

	jobs, total, err := s.jobRepo.List(ctx, filter)
	if err != nil {
		log.Printf("JobService: Error listing jobs for %s: %v", actor.ID, err)
		return nil, fmt.Errorf("internal error listing jobs: %w", err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return &dto.JobListResponse{Jobs: jobs, Page: req.Page, Limit: req.Limit, Total: total}, nil
}

// mergePatch applies the non-nil fields of req onto a copy of job.
func mergePatch(job *models.Job, req *dto.PatchJobRequest) *models.Job {
	next := *job
	if req.Title != nil {
		next.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		next.Description = strings.TrimSpace(*req.Description)
	}
	if req.Requirements != nil {
		next.Requirements = *req.Requirements
	}
	if req.Skills != nil {
		next.Skills = *req.Skills
	}
	if req.SalaryMin != nil {
		next.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		next.SalaryMax = req.SalaryMax
	}
	if req.LocationType != nil {
		next.LocationType = *req.LocationType
	}
	if req.LocationCity != nil {
		next.LocationCity = req.LocationCity
	}
	if req.ExperienceLevel != nil {
		next.ExperienceLevel = *req.ExperienceLevel
	}
	if req.JobType != nil {
		next.JobType = *req.JobType
	}
	if req.SubscriptionTier != nil {
		next.SubscriptionTier = *req.SubscriptionTier
	}
	if req.Status != nil {
		next.Status = *req.Status
	}
	return &next
}

func derefForLog(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	return v
}

// diffJobs lists the editable fields that differ between before and after.
func diffJobs(before, after *models.Job) map[string]models.FieldChange {
	fields := []struct {
		key      string
		from, to interface{}
	}{
		{"title", before.Title, after.Title},
		{"description", before.Description, after.Description},
		{"requirements", before.Requirements, after.Requirements},
		{"skills", before.Skills, after.Skills},
		{"salary_min", before.SalaryMin, after.SalaryMin},
		{"salary_max", before.SalaryMax, after.SalaryMax},
		{"location_type", before.LocationType, after.LocationType},
		{"location_city", before.LocationCity, after.LocationCity},
		{"experience_level", before.ExperienceLevel, after.ExperienceLevel},
		{"job_type", before.JobType, after.JobType},
		{"subscription_tier", before.SubscriptionTier, after.SubscriptionTier},
		{"status", before.Status, after.Status},
	}
	changes := make(map[string]models.FieldChange)
	for _, f := range fields {
		from, to := derefForLog(f.from), derefForLog(f.to)
		if !reflect.DeepEqual(from, to) {
			changes[f.key] = models.FieldChange{From: from, To: to}
		}
	}
	return changes
}

// PatchJob merges a partial update, re-validates the result and writes the
// update together with its change-log entry.
func (s *jobService) PatchJob(ctx context.Context, req *dto.PatchJobRequest) (*models.Job, error) {
	// --- Transaction Start ---
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("PatchJob: Error beginning transaction: %v", err)
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if anything fails

	txJobRepo := s.jobRepo.WithTx(tx)

	existingJob, err := txJobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		log.Printf("PatchJob: Error fetching job %s: %v", req.JobID, err)
		return nil, MapRepoError(err, "fetching job for update")
	}

	if existingJob.ClientID != req.UserID {
		log.Printf("PatchJob: Forbidden attempt on job %s by user %s", req.JobID, req.UserID)
		return nil, ErrForbidden
	}

	if req.Status != nil && !models.CanTransitionJob(existingJob.Status, *req.Status) {
		return nil, fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, existingJob.Status, *req.Status)
	}

	next := mergePatch(existingJob, req)
	if err := validateForStatus(next); err != nil {
		return nil, err
	}
	next.Skills = jobform.DedupeSkills(next.Skills)
	applyDraftDefaults(next)

	changes := diffJobs(existingJob, next)
	if len(changes) == 0 {
		return existingJob, nil
	}

	updatedJob, err := txJobRepo.Update(ctx, next)
	if err != nil {
		log.Printf("PatchJob: Error updating job %s in repo: %v", req.JobID, err)
		return nil, MapRepoError(err, "updating job")
	}

	if err := txJobRepo.AddChange(ctx, &models.JobChange{
		JobID:     req.JobID,
		ChangedBy: req.UserID,
		Changes:   changes,
	}); err != nil {
		log.Printf("PatchJob: Error recording change for job %s: %v", req.JobID, err)
		return nil, MapRepoError(err, "recording job change")
	}

	// --- Commit Transaction ---
	if err := tx.Commit(ctx); err != nil {
		log.Printf("PatchJob: Error committing transaction: %v", err)
		return nil, fmt.Errorf("internal error committing changes: %w", err)
	}
	return updatedJob, nil
}

func (s *jobService) ListJobChanges(ctx context.Context, actor Actor, jobID uuid.UUID) ([]models.JobChange, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, MapRepoError(err, "getting job for change log")
	}
	if job.ClientID != actor.ID {
		return nil, ErrForbidden
	}
	changes, err := s.jobRepo.ListChanges(ctx, jobID)
	if err != nil {
		return nil, MapRepoError(err, "listing job changes")
	}
	if changes == nil {
		changes = []models.JobChange{}
	}
	return changes, nil
}
