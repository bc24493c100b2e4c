package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"referral-network-api/internal/models"
	"referral-network-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, email, role, full_name, company, headline, skills, years_experience, created_at, updated_at, deleted_at`

// ProfileRepo implements storage.ProfileRepository using PostgreSQL.
type ProfileRepo struct {
	db Querier
}

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(db Querier) *ProfileRepo {
	return &ProfileRepo{db: db}
}

var _ storage.ProfileRepository = (*ProfileRepo)(nil)

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.Role,
		&p.FullName,
		&p.Company,
		&p.Headline,
		&p.Skills,
		&p.YearsExperience,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}

// GetByID returns a live (not soft-deleted) profile.
func (r *ProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 AND deleted_at IS NULL`
	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning profile by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get profile by ID %s: %w", id, err)
	}
	return p, nil
}

// Create inserts a new profile. The id must be the identity-provider user id.
func (r *ProfileRepo) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (id, email, role, full_name, company, headline, skills, years_experience, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + profileColumns
	created, err := scanProfile(r.db.QueryRow(ctx, query,
		p.ID, models.NormalizeEmail(p.Email), p.Role, p.FullName, p.Company, p.Headline, skillsOrEmpty(p.Skills), p.YearsExperience,
	))
	if err != nil {
		log.Printf("Error creating profile %s: %v\n", p.ID, err)
		return nil, mapPgError(err, "failed to create profile")
	}
	return created, nil
}

// Upsert creates the profile or overwrites its role and display fields.
func (r *ProfileRepo) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (id, email, role, full_name, company, headline, skills, years_experience, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			role = EXCLUDED.role,
			full_name = EXCLUDED.full_name,
			company = EXCLUDED.company,
			headline = EXCLUDED.headline,
			skills = EXCLUDED.skills,
			years_experience = EXCLUDED.years_experience,
			deleted_at = NULL,
			updated_at = NOW()
		RETURNING ` + profileColumns
	saved, err := scanProfile(r.db.QueryRow(ctx, query,
		p.ID, models.NormalizeEmail(p.Email), p.Role, p.FullName, p.Company, p.Headline, skillsOrEmpty(p.Skills), p.YearsExperience,
	))
	if err != nil {
		log.Printf("Error upserting profile %s: %v\n", p.ID, err)
		return nil, mapPgError(err, "failed to upsert profile")
	}
	return saved, nil
}

// Update changes only the display fields that are set.
func (r *ProfileRepo) Update(ctx context.Context, upd *storage.ProfileUpdate) (*models.Profile, error) {
	query := `
		UPDATE profiles SET
			full_name = COALESCE($2, full_name),
			company = COALESCE($3, company),
			headline = COALESCE($4, headline),
			skills = COALESCE($5, skills),
			years_experience = COALESCE($6, years_experience),
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + profileColumns
	var skills interface{}
	if upd.Skills != nil {
		skills = upd.Skills
	}
	p, err := scanProfile(r.db.QueryRow(ctx, query,
		upd.ID, upd.FullName, upd.Company, upd.Headline, skills, upd.YearsExperience,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating profile %s: %v\n", upd.ID, err)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}

// UpdateRole is the only write path for a profile's role.
func (r *ProfileRepo) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.Profile, error) {
	query := `UPDATE profiles SET role = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL RETURNING ` + profileColumns
	p, err := scanProfile(r.db.QueryRow(ctx, query, id, role))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating role for profile %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	log.Printf("Profile %s role set to %s", id, role)
	return p, nil
}

// ListCandidatePool returns non-client profiles that can be suggested for a job.
func (r *ProfileRepo) ListCandidatePool(ctx context.Context, limit int) ([]models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE role <> 'client' AND deleted_at IS NULL
		ORDER BY updated_at DESC
		LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		log.Printf("Error querying candidate pool: %v\n", err)
		return nil, fmt.Errorf("failed to query candidate pool: %w", err)
	}
	defer rows.Close()

	profiles, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Profile])
	if err != nil {
		log.Printf("Error scanning candidate pool: %v\n", err)
		return nil, fmt.Errorf("failed to scan candidate pool: %w", err)
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return profiles, nil
}

func skillsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
