// Package mocks holds testify mocks shared by the service and handler tests.
package mocks

import (
	"context"
	"time"

	"referral-network-api/internal/models"
	"referral-network-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- ProfileRepository ---

type MockProfileRepository struct {
	mock.Mock
}

var _ storage.ProfileRepository = (*MockProfileRepository)(nil)

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, upd *storage.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(ctx, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.Profile, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListCandidatePool(ctx context.Context, limit int) ([]models.Profile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

// --- JobRepository ---

type MockJobRepository struct {
	mock.Mock
}

var _ storage.JobRepository = (*MockJobRepository)(nil)

func (m *MockJobRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) List(ctx context.Context, f storage.JobFilter) ([]models.Job, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Job), args.Int(1), args.Error(2)
}

func (m *MockJobRepository) Update(ctx context.Context, job *models.Job) (*models.Job, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) AddChange(ctx context.Context, change *models.JobChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockJobRepository) ListChanges(ctx context.Context, jobID uuid.UUID) ([]models.JobChange, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JobChange), args.Error(1)
}

// WithTx returns the same mock so expectations cover both paths.
func (m *MockJobRepository) WithTx(tx pgx.Tx) storage.JobRepository {
	return m
}

// --- ReferralRepository ---

type MockReferralRepository struct {
	mock.Mock
}

var _ storage.ReferralRepository = (*MockReferralRepository)(nil)

func (m *MockReferralRepository) Create(ctx context.Context, r *models.Referral) (*models.Referral, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Referral), args.Error(1)
}

func (m *MockReferralRepository) List(ctx context.Context, f storage.ReferralFilter) ([]models.Referral, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Referral), args.Int(1), args.Error(2)
}

// --- MatchAnalysisRepository ---

type MockMatchAnalysisRepository struct {
	mock.Mock
}

var _ storage.MatchAnalysisRepository = (*MockMatchAnalysisRepository)(nil)

func (m *MockMatchAnalysisRepository) Create(ctx context.Context, a *models.MatchAnalysis) (*models.MatchAnalysis, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchAnalysis), args.Error(1)
}

func (m *MockMatchAnalysisRepository) ListByJob(ctx context.Context, jobID uuid.UUID, minScore int) ([]models.MatchAnalysis, error) {
	args := m.Called(ctx, jobID, minScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MatchAnalysis), args.Error(1)
}

// --- SuggestionRepository ---

type MockSuggestionRepository struct {
	mock.Mock
}

var _ storage.SuggestionRepository = (*MockSuggestionRepository)(nil)

func (m *MockSuggestionRepository) BulkCreate(ctx context.Context, suggestions []models.CandidateSuggestion) (int64, error) {
	args := m.Called(ctx, suggestions)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockSuggestionRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.SuggestionWithCandidate, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SuggestionWithCandidate), args.Error(1)
}

func (m *MockSuggestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CandidateSuggestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CandidateSuggestion), args.Error(1)
}

func (m *MockSuggestionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SuggestionStatus) (*models.CandidateSuggestion, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CandidateSuggestion), args.Error(1)
}

// --- ResumeUploadRepository ---

type MockResumeUploadRepository struct {
	mock.Mock
}

var _ storage.ResumeUploadRepository = (*MockResumeUploadRepository)(nil)

func (m *MockResumeUploadRepository) Create(ctx context.Context, u *models.ResumeUpload) (*models.ResumeUpload, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResumeUpload), args.Error(1)
}

func (m *MockResumeUploadRepository) GetByPath(ctx context.Context, storagePath string) (*models.ResumeUpload, error) {
	args := m.Called(ctx, storagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResumeUpload), args.Error(1)
}

func (m *MockResumeUploadRepository) MarkUploaded(ctx context.Context, id uuid.UUID, size int64) error {
	args := m.Called(ctx, id, size)
	return args.Error(0)
}

func (m *MockResumeUploadRepository) DeletePendingBefore(ctx context.Context, cutoff time.Time) ([]models.ResumeUpload, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ResumeUpload), args.Error(1)
}

// --- DashboardRepository ---

type MockDashboardRepository struct {
	mock.Mock
}

var _ storage.DashboardRepository = (*MockDashboardRepository)(nil)

func (m *MockDashboardRepository) ClientStats(ctx context.Context, clientID uuid.UUID) (*models.ClientDashboard, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientDashboard), args.Error(1)
}

func (m *MockDashboardRepository) ReferrerStats(ctx context.Context, referrerID uuid.UUID) (*models.ReferrerDashboard, error) {
	args := m.Called(ctx, referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReferrerDashboard), args.Error(1)
}

func (m *MockDashboardRepository) CandidateStats(ctx context.Context, candidateID uuid.UUID) (*models.CandidateDashboard, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CandidateDashboard), args.Error(1)
}
