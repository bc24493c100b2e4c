package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"referral-network-api/config"
	"referral-network-api/internal/models"
	"referral-network-api/internal/referralform"
	"referral-network-api/internal/storage"
	"referral-network-api/internal/storage/blob"
	"referral-network-api/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UploadPath is where signed upload URLs point.
const UploadPath = "/api/storage/resumes/upload"

const uploadTokenAudience = "resume-upload"

// uploadClaims authorize a single PUT of one resume.
type uploadClaims struct {
	Path        string `json:"path"`
	MaxBytes    int64  `json:"max_bytes"`
	ContentType string `json:"content_type"`
	jwt.RegisteredClaims
}

type resumeService struct {
	uploadRepo storage.ResumeUploadRepository
	blobs      blob.Store
	cfg        config.StorageConfig
	pendingTTL time.Duration
	now        func() time.Time
}

// NewResumeService creates a new instance of ResumeService.
func NewResumeService(uploadRepo storage.ResumeUploadRepository, blobs blob.Store, cfg config.StorageConfig, sched config.SchedulerConfig) ResumeService {
	if cfg.MaxResumeBytes <= 0 {
		cfg.MaxResumeBytes = config.DefaultMaxResumeBytes
	}
	return &resumeService{
		uploadRepo: uploadRepo,
		blobs:      blobs,
		cfg:        cfg,
		pendingTTL: sched.PendingUploadTTL,
		now:        time.Now,
	}
}

// CreateUpload validates the file description, records a pending upload and
// returns a URL signed for exactly that file.
func (s *resumeService) CreateUpload(ctx context.Context, actor Actor, req *dto.CreateUploadRequest) (*dto.CreateUploadResponse, error) {
	file := referralform.ResumeFile{Name: req.FileName, ContentType: req.ContentType, Size: req.SizeBytes}
	if err := referralform.ValidateResume(file, s.cfg.MaxResumeBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadRejected, err)
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	path := fmt.Sprintf("%s/%s%s", actor.ID, uuid.New(), ext)
	now := s.now().UTC()
	expiresAt := now.Add(s.cfg.UploadURLTTL)

	if _, err := s.uploadRepo.Create(ctx, &models.ResumeUpload{
		OwnerID:     actor.ID,
		StoragePath: path,
		FileName:    filepath.Base(req.FileName),
		ContentType: req.ContentType,
		Status:      models.UploadPending,
	}); err != nil {
		log.Printf("ResumeService: Error recording upload for %s: %v", actor.ID, err)
		return nil, MapRepoError(err, "recording resume upload")
	}

	claims := uploadClaims{
		Path:        path,
		MaxBytes:    req.SizeBytes,
		ContentType: req.ContentType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			Audience:  jwt.ClaimStrings{uploadTokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SigningSecret))
	if err != nil {
		return nil, fmt.Errorf("internal error signing upload url: %w", err)
	}

	uploadURL := strings.TrimRight(s.cfg.PublicBaseURL, "/") + UploadPath + "?token=" + url.QueryEscape(token)
	return &dto.CreateUploadResponse{UploadURL: uploadURL, StoragePath: path, ExpiresAt: expiresAt}, nil
}

func (s *resumeService) parseToken(token string) (*uploadClaims, error) {
	claims := &uploadClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(uploadTokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SigningSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid upload token: %v", ErrForbidden, err)
	}
	return claims, nil
}

// Upload stores the body for the upload named by a signed token.
func (s *resumeService) Upload(ctx context.Context, token, contentType string, body io.Reader) (*dto.UploadCompleteResponse, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if contentType != "" && !strings.EqualFold(strings.TrimSpace(strings.Split(contentType, ";")[0]), claims.ContentType) {
		return nil, fmt.Errorf("%w: content type %q does not match %q", ErrUploadRejected, contentType, claims.ContentType)
	}

	upload, err := s.uploadRepo.GetByPath(ctx, claims.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: upload no longer exists", ErrForbidden)
		}
		return nil, MapRepoError(err, "loading resume upload")
	}
	if upload.OwnerID.String() != claims.Subject {
		return nil, fmt.Errorf("%w: token subject mismatch", ErrForbidden)
	}
	if upload.Status == models.UploadComplete {
		return nil, fmt.Errorf("%w: resume already uploaded", ErrConflict)
	}

	limit := claims.MaxBytes
	if limit <= 0 || limit > s.cfg.MaxResumeBytes {
		limit = s.cfg.MaxResumeBytes
	}
	n, err := s.blobs.Put(ctx, claims.Path, body, limit)
	if err != nil {
		if errors.Is(err, blob.ErrTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrUploadRejected, err)
		}
		log.Printf("ResumeService: Error storing blob %s: %v", claims.Path, err)
		return nil, fmt.Errorf("internal error storing resume: %w", err)
	}
	if n == 0 {
		_ = s.blobs.Delete(ctx, claims.Path)
		return nil, fmt.Errorf("%w: file is empty", ErrUploadRejected)
	}

	if err := s.uploadRepo.MarkUploaded(ctx, upload.ID, n); err != nil {
		return nil, MapRepoError(err, "completing resume upload")
	}
	return &dto.UploadCompleteResponse{StoragePath: claims.Path, SizeBytes: n}, nil
}

// CleanupStale removes pending uploads older than the configured TTL and any
// partial blobs they left behind.
func (s *resumeService) CleanupStale(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.pendingTTL)
	stale, err := s.uploadRepo.DeletePendingBefore(ctx, cutoff)
	if err != nil {
		return 0, MapRepoError(err, "purging pending uploads")
	}
	for _, u := range stale {
		if err := s.blobs.Delete(ctx, u.StoragePath); err != nil {
			log.Printf("ResumeService: Failed to delete blob %s: %v", u.StoragePath, err)
		}
	}
	return len(stale), nil
}
