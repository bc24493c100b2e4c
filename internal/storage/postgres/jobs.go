package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"referral-network-api/internal/models"
	"referral-network-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, client_id, title, description, requirements, skills, salary_min, salary_max,
	location_type, location_city, experience_level, job_type, subscription_tier, status, created_at, updated_at`

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db Querier) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo with the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) storage.JobRepository {
	return &JobRepo{db: tx}
}

var _ storage.JobRepository = (*JobRepo)(nil)

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID,
		&j.ClientID,
		&j.Title,
		&j.Description,
		&j.Requirements,
		&j.Skills,
		&j.SalaryMin,
		&j.SalaryMax,
		&j.LocationType,
		&j.LocationCity,
		&j.ExperienceLevel,
		&j.JobType,
		&j.SubscriptionTier,
		&j.Status,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	normalizeJob(&j)
	return &j, nil
}

func normalizeJob(j *models.Job) {
	if j.Requirements == nil {
		j.Requirements = []models.Requirement{}
	}
	if j.Skills == nil {
		j.Skills = []string{}
	}
}

// Create saves a new job posting.
func (r *JobRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	normalizeJob(job)

	query := `
		INSERT INTO jobs (id, client_id, title, description, requirements, skills, salary_min, salary_max,
			location_type, location_city, experience_level, job_type, subscription_tier, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING ` + jobColumns

	created, err := scanJob(r.db.QueryRow(ctx, query,
		job.ID,
		job.ClientID,
		job.Title,
		job.Description,
		job.Requirements,
		job.Skills,
		job.SalaryMin,
		job.SalaryMax,
		job.LocationType,
		job.LocationCity,
		job.ExperienceLevel,
		job.JobType,
		job.SubscriptionTier,
		job.Status,
	))
	if err != nil {
		log.Printf("Error creating job: %v\n", err)
		return nil, mapPgError(err, "failed to create job")
	}

	log.Printf("Job created successfully with ID: %s", created.ID)
	return created, nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Job not found with ID: %s\n", id)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}
	return job, nil
}

// List returns one page of jobs, newest first, plus the total matching count.
func (r *JobRepo) List(ctx context.Context, f storage.JobFilter) ([]models.Job, int, error) {
	var conditions []string
	var args []interface{}

	if f.ClientID != nil {
		args = append(args, *f.ClientID)
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM jobs` + whereClause(conditions)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Printf("Error counting jobs: %v\n", err)
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := buildListQuery(`SELECT `+jobColumns+` FROM jobs`, conditions, "created_at DESC", &args, f.Offset, f.Limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying jobs: %v\n", err)
		return nil, 0, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning jobs: %v\n", err)
		return nil, 0, fmt.Errorf("failed to scan jobs: %w", err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	for i := range jobs {
		normalizeJob(&jobs[i])
	}
	return jobs, total, nil
}

// Update overwrites every editable column of the job.
func (r *JobRepo) Update(ctx context.Context, job *models.Job) (*models.Job, error) {
	normalizeJob(job)
	query := `
		UPDATE jobs SET
			title = $2, description = $3, requirements = $4, skills = $5, salary_min = $6, salary_max = $7,
			location_type = $8, location_city = $9, experience_level = $10, job_type = $11,
			subscription_tier = $12, status = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + jobColumns

	updated, err := scanJob(r.db.QueryRow(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Requirements,
		job.Skills,
		job.SalaryMin,
		job.SalaryMax,
		job.LocationType,
		job.LocationCity,
		job.ExperienceLevel,
		job.JobType,
		job.SubscriptionTier,
		job.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating job %s: %v\n", job.ID, err)
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return updated, nil
}

// AddChange appends a change-log entry for a job.
func (r *JobRepo) AddChange(ctx context.Context, change *models.JobChange) error {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	query := `
		INSERT INTO job_changes (id, job_id, changed_by, changes, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at`
	if err := r.db.QueryRow(ctx, query, change.ID, change.JobID, change.ChangedBy, change.Changes).Scan(&change.CreatedAt); err != nil {
		log.Printf("Error writing change log for job %s: %v\n", change.JobID, err)
		return mapPgError(err, "failed to write job change")
	}
	return nil
}

// ListChanges returns a job's change log, newest first.
func (r *JobRepo) ListChanges(ctx context.Context, jobID uuid.UUID) ([]models.JobChange, error) {
	query := `
		SELECT id, job_id, changed_by, changes, created_at
		FROM job_changes
		WHERE job_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		log.Printf("Error querying changes for job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to query job changes: %w", err)
	}
	defer rows.Close()

	changes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JobChange])
	if err != nil {
		return nil, fmt.Errorf("failed to scan job changes: %w", err)
	}
	if changes == nil {
		changes = []models.JobChange{}
	}
	return changes, nil
}

// escapeLike escapes the ILIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
