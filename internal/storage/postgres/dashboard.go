package postgres

import (
	"context"
	"fmt"

	"referral-network-api/internal/models"
	"referral-network-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DashboardRepo computes role dashboards with count queries at request time.
type DashboardRepo struct {
	db Querier
}

// NewDashboardRepo creates a new DashboardRepo.
func NewDashboardRepo(db Querier) *DashboardRepo {
	return &DashboardRepo{db: db}
}

var _ storage.DashboardRepository = (*DashboardRepo)(nil)

func (r *DashboardRepo) ClientStats(ctx context.Context, clientID uuid.UUID) (*models.ClientDashboard, error) {
	d := &models.ClientDashboard{JobsByStatus: map[models.JobStatus]int{
		models.JobStatusDraft: 0, models.JobStatusActive: 0, models.JobStatusPaused: 0, models.JobStatusFilled: 0,
	}}

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM jobs WHERE client_id = $1 GROUP BY status`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs by status: %w", err)
	}
	var status models.JobStatus
	var count int
	_, err = pgx.ForEachRow(rows, []any{&status, &count}, func() error {
		d.JobsByStatus[status] = count
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan job counts: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM referrals r JOIN jobs j ON j.id = r.job_id WHERE j.client_id = $1),
			(SELECT COUNT(*) FROM referrals r JOIN jobs j ON j.id = r.job_id
				WHERE j.client_id = $1 AND r.created_at >= NOW() - INTERVAL '7 days'),
			(SELECT COUNT(*) FROM match_analyses m JOIN jobs j ON j.id = m.job_id WHERE j.client_id = $1),
			(SELECT COUNT(*) FROM candidate_suggestions s JOIN jobs j ON j.id = s.job_id
				WHERE j.client_id = $1 AND s.status IN ('suggested', 'contacted'))`,
		clientID,
	).Scan(&d.TotalReferrals, &d.ReferralsLast7Days, &d.MatchAnalyses, &d.OpenSuggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate client dashboard: %w", err)
	}
	return d, nil
}

func (r *DashboardRepo) ReferrerStats(ctx context.Context, referrerID uuid.UUID) (*models.ReferrerDashboard, error) {
	d := &models.ReferrerDashboard{}
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days'),
			COUNT(DISTINCT job_id),
			(SELECT COUNT(*) FROM jobs WHERE status = 'active')
		FROM referrals
		WHERE referrer_id = $1`,
		referrerID,
	).Scan(&d.ReferralsSubmitted, &d.ReferralsLast30Days, &d.JobsReferredTo, &d.ActiveJobs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate referrer dashboard: %w", err)
	}
	return d, nil
}

func (r *DashboardRepo) CandidateStats(ctx context.Context, candidateID uuid.UUID) (*models.CandidateDashboard, error) {
	d := &models.CandidateDashboard{}
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM candidate_suggestions WHERE candidate_id = $1),
			(SELECT COUNT(*) FROM jobs WHERE status = 'active')`,
		candidateID,
	).Scan(&d.TimesSuggested, &d.ActiveJobs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate candidate dashboard: %w", err)
	}
	return d, nil
}
