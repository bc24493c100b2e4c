package postgres

import (
	"context"
	"fmt"
	"log"

	"referral-network-api/internal/models"
	"referral-network-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const matchAnalysisColumns = `id, job_id, candidate_email, overall_score, skills_match, experience_match, education_match,
	key_strengths, potential_concerns, reasoning, analyzed_by, created_at`

// MatchAnalysisRepo implements storage.MatchAnalysisRepository using PostgreSQL.
type MatchAnalysisRepo struct {
	db Querier
}

// NewMatchAnalysisRepo creates a new MatchAnalysisRepo.
func NewMatchAnalysisRepo(db Querier) *MatchAnalysisRepo {
	return &MatchAnalysisRepo{db: db}
}

var _ storage.MatchAnalysisRepository = (*MatchAnalysisRepo)(nil)

// Create stores an analysis. Rows are never updated afterwards.
func (r *MatchAnalysisRepo) Create(ctx context.Context, a *models.MatchAnalysis) (*models.MatchAnalysis, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	query := `
		INSERT INTO match_analyses (id, job_id, candidate_email, overall_score, skills_match, experience_match,
			education_match, key_strengths, potential_concerns, reasoning, analyzed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING ` + matchAnalysisColumns
	rows, err := r.db.Query(ctx, query,
		a.ID, a.JobID, a.CandidateEmail, a.OverallScore, a.SkillsMatch, a.ExperienceMatch,
		a.EducationMatch, skillsOrEmpty(a.KeyStrengths), skillsOrEmpty(a.PotentialConcerns), a.Reasoning, a.AnalyzedBy,
	)
	if err != nil {
		return nil, mapPgError(err, "failed to store match analysis")
	}
	stored, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.MatchAnalysis])
	if err != nil {
		log.Printf("Error storing match analysis for job %s: %v\n", a.JobID, err)
		return nil, mapPgError(err, "failed to store match analysis")
	}
	return &stored, nil
}

// ListByJob returns analyses for a job at or above minScore, best first.
func (r *MatchAnalysisRepo) ListByJob(ctx context.Context, jobID uuid.UUID, minScore int) ([]models.MatchAnalysis, error) {
	query := `
		SELECT ` + matchAnalysisColumns + `
		FROM match_analyses
		WHERE job_id = $1 AND overall_score >= $2
		ORDER BY overall_score DESC, created_at DESC`
	rows, err := r.db.Query(ctx, query, jobID, minScore)
	if err != nil {
		log.Printf("Error querying match analyses for job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to query match analyses: %w", err)
	}
	defer rows.Close()

	analyses, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MatchAnalysis])
	if err != nil {
		return nil, fmt.Errorf("failed to scan match analyses: %w", err)
	}
	if analyses == nil {
		analyses = []models.MatchAnalysis{}
	}
	return analyses, nil
}
