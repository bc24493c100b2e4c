package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"referral-network-api/internal/models"
	"referral-network-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const suggestionColumns = `s.id, s.job_id, s.candidate_id, s.match_score, s.reasoning, s.key_match_points,
	s.suggested_approach, s.rank, s.status, s.suggested_by, s.created_at`

var suggestionCopyColumns = []string{
	"id", "job_id", "candidate_id", "match_score", "reasoning", "key_match_points",
	"suggested_approach", "rank", "status", "suggested_by", "created_at",
}

// SuggestionRepo implements storage.SuggestionRepository using PostgreSQL.
type SuggestionRepo struct {
	db Querier
}

// NewSuggestionRepo creates a new SuggestionRepo.
func NewSuggestionRepo(db Querier) *SuggestionRepo {
	return &SuggestionRepo{db: db}
}

var _ storage.SuggestionRepository = (*SuggestionRepo)(nil)

// BulkCreate writes a whole ranked batch with COPY. All rows share one created_at.
func (r *SuggestionRepo) BulkCreate(ctx context.Context, suggestions []models.CandidateSuggestion) (int64, error) {
	if len(suggestions) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	rows := make([][]interface{}, 0, len(suggestions))
	for i := range suggestions {
		s := &suggestions[i]
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if s.Status == "" {
			s.Status = models.SuggestionSuggested
		}
		s.CreatedAt = now
		rows = append(rows, []interface{}{
			s.ID, s.JobID, s.CandidateID, s.MatchScore, s.Reasoning, skillsOrEmpty(s.KeyMatchPoints),
			s.SuggestedApproach, s.Rank, string(s.Status), s.SuggestedBy, s.CreatedAt,
		})
	}

	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"candidate_suggestions"}, suggestionCopyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		log.Printf("Error bulk inserting %d suggestions: %v\n", len(suggestions), err)
		return 0, mapPgError(err, "failed to store suggestions")
	}
	return n, nil
}

// ListByJob returns stored suggestions with candidate fields, newest batch
// first and in ranked order within a batch.
func (r *SuggestionRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.SuggestionWithCandidate, error) {
	query := `
		SELECT ` + suggestionColumns + `,
			p.full_name AS candidate_name,
			p.email AS candidate_email,
			p.headline AS candidate_headline,
			p.skills AS candidate_skills
		FROM candidate_suggestions s
		JOIN profiles p ON p.id = s.candidate_id
		WHERE s.job_id = $1
		ORDER BY s.created_at DESC, s.rank ASC`
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		log.Printf("Error querying suggestions for job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SuggestionWithCandidate])
	if err != nil {
		log.Printf("Error scanning suggestions for job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to scan suggestions: %w", err)
	}
	if out == nil {
		out = []models.SuggestionWithCandidate{}
	}
	return out, nil
}

// GetByID retrieves a single stored suggestion.
func (r *SuggestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CandidateSuggestion, error) {
	rows, err := r.db.Query(ctx, `SELECT `+suggestionColumns+` FROM candidate_suggestions s WHERE s.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion %s: %w", id, err)
	}
	s, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CandidateSuggestion])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan suggestion %s: %w", id, err)
	}
	return &s, nil
}

// UpdateStatus sets the follow-up status of a suggestion.
func (r *SuggestionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SuggestionStatus) (*models.CandidateSuggestion, error) {
	query := `UPDATE candidate_suggestions s SET status = $2 WHERE s.id = $1 RETURNING ` + suggestionColumns
	rows, err := r.db.Query(ctx, query, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update suggestion %s: %w", id, err)
	}
	s, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CandidateSuggestion])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update suggestion %s: %w", id, err)
	}
	return &s, nil
}
