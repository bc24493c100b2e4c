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

const referralColumns = `r.id, r.job_id, r.referrer_id, r.candidate_name, r.candidate_email, r.candidate_phone,
	r.candidate_linkedin, r.resume_storage_path, r.referrer_notes, r.expected_salary, r.availability,
	r.consent_given, r.consent_timestamp, r.created_at`

// ReferralRepo implements storage.ReferralRepository using PostgreSQL.
type ReferralRepo struct {
	db Querier
}

// NewReferralRepo creates a new ReferralRepo.
func NewReferralRepo(db Querier) *ReferralRepo {
	return &ReferralRepo{db: db}
}

var _ storage.ReferralRepository = (*ReferralRepo)(nil)

// Create inserts a referral. Duplicate (job, candidate) pairs are allowed.
func (r *ReferralRepo) Create(ctx context.Context, ref *models.Referral) (*models.Referral, error) {
	if ref.ID == uuid.Nil {
		ref.ID = uuid.New()
	}
	query := `
		INSERT INTO referrals AS r (id, job_id, referrer_id, candidate_name, candidate_email, candidate_phone,
			candidate_linkedin, resume_storage_path, referrer_notes, expected_salary, availability,
			consent_given, consent_timestamp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING ` + referralColumns

	rows, err := r.db.Query(ctx, query,
		ref.ID,
		ref.JobID,
		ref.ReferrerID,
		ref.CandidateName,
		ref.CandidateEmail,
		ref.CandidatePhone,
		ref.CandidateLinkedIn,
		ref.ResumeStoragePath,
		ref.ReferrerNotes,
		ref.ExpectedSalary,
		ref.Availability,
		ref.ConsentGiven,
		ref.ConsentTimestamp,
	)
	if err != nil {
		log.Printf("Error creating referral: %v\n", err)
		return nil, mapPgError(err, "failed to create referral")
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Referral])
	if err != nil {
		log.Printf("Error creating referral: %v\n", err)
		return nil, mapPgError(err, "failed to create referral")
	}

	log.Printf("Referral %s created for job %s by %s", created.ID, created.JobID, created.ReferrerID)
	return &created, nil
}

// List returns one page of referrals, newest first, plus the total count.
func (r *ReferralRepo) List(ctx context.Context, f storage.ReferralFilter) ([]models.Referral, int, error) {
	from := ` FROM referrals r`
	var conditions []string
	var args []interface{}

	if f.ClientID != nil {
		from += ` JOIN jobs j ON j.id = r.job_id`
		args = append(args, *f.ClientID)
		conditions = append(conditions, fmt.Sprintf("j.client_id = $%d", len(args)))
	}
	if f.ReferrerID != nil {
		args = append(args, *f.ReferrerID)
		conditions = append(conditions, fmt.Sprintf("r.referrer_id = $%d", len(args)))
	}
	if f.JobID != nil {
		args = append(args, *f.JobID)
		conditions = append(conditions, fmt.Sprintf("r.job_id = $%d", len(args)))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+from+whereClause(conditions), args...).Scan(&total); err != nil {
		log.Printf("Error counting referrals: %v\n", err)
		return nil, 0, fmt.Errorf("failed to count referrals: %w", err)
	}

	query := buildListQuery(`SELECT `+referralColumns+from, conditions, "r.created_at DESC", &args, f.Offset, f.Limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying referrals: %v\n", err)
		return nil, 0, fmt.Errorf("failed to query referrals: %w", err)
	}
	defer rows.Close()

	referrals, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Referral])
	if err != nil {
		log.Printf("Error scanning referrals: %v\n", err)
		return nil, 0, fmt.Errorf("failed to scan referrals: %w", err)
	}
	if referrals == nil {
		referrals = []models.Referral{}
	}
	return referrals, total, nil
}
