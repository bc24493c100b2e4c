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

const resumeUploadColumns = `id, owner_id, storage_path, file_name, content_type, size_bytes, status, created_at, uploaded_at`

// ResumeUploadRepo implements storage.ResumeUploadRepository using PostgreSQL.
type ResumeUploadRepo struct {
	db Querier
}

// NewResumeUploadRepo creates a new ResumeUploadRepo.
func NewResumeUploadRepo(db Querier) *ResumeUploadRepo {
	return &ResumeUploadRepo{db: db}
}

var _ storage.ResumeUploadRepository = (*ResumeUploadRepo)(nil)

// Create records a pending upload.
func (r *ResumeUploadRepo) Create(ctx context.Context, u *models.ResumeUpload) (*models.ResumeUpload, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	query := `
		INSERT INTO resume_uploads (id, owner_id, storage_path, file_name, content_type, size_bytes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', NOW())
		RETURNING ` + resumeUploadColumns
	rows, err := r.db.Query(ctx, query, u.ID, u.OwnerID, u.StoragePath, u.FileName, u.ContentType, u.SizeBytes)
	if err != nil {
		return nil, mapPgError(err, "failed to record resume upload")
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ResumeUpload])
	if err != nil {
		log.Printf("Error recording resume upload %s: %v\n", u.StoragePath, err)
		return nil, mapPgError(err, "failed to record resume upload")
	}
	return &created, nil
}

// GetByPath looks an upload up by its storage path.
func (r *ResumeUploadRepo) GetByPath(ctx context.Context, storagePath string) (*models.ResumeUpload, error) {
	rows, err := r.db.Query(ctx, `SELECT `+resumeUploadColumns+` FROM resume_uploads WHERE storage_path = $1`, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to query resume upload: %w", err)
	}
	u, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ResumeUpload])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan resume upload: %w", err)
	}
	return &u, nil
}

// MarkUploaded flips a pending upload to uploaded with its final size.
func (r *ResumeUploadRepo) MarkUploaded(ctx context.Context, id uuid.UUID, size int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE resume_uploads SET status = 'uploaded', size_bytes = $2, uploaded_at = NOW()
		WHERE id = $1 AND status = 'pending'`, id, size)
	if err != nil {
		return fmt.Errorf("failed to mark upload %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeletePendingBefore removes uploads that never completed and returns them so
// their blobs can be cleaned up.
func (r *ResumeUploadRepo) DeletePendingBefore(ctx context.Context, cutoff time.Time) ([]models.ResumeUpload, error) {
	rows, err := r.db.Query(ctx, `
		DELETE FROM resume_uploads
		WHERE status = 'pending' AND created_at < $1
		RETURNING `+resumeUploadColumns, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to delete stale uploads: %w", err)
	}
	deleted, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ResumeUpload])
	if err != nil {
		return nil, fmt.Errorf("failed to scan stale uploads: %w", err)
	}
	return deleted, nil
}
