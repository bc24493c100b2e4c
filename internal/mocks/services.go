package mocks

import (
	"context"
	"io"

	"referral-network-api/internal/models"
	"referral-network-api/internal/services"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- ProfileService ---

type MockProfileService struct {
	mock.Mock
}

var _ services.ProfileService = (*MockProfileService)(nil)

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) CreateProfile(ctx context.Context, actor services.Actor, req *dto.CreateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// --- DevService ---

type MockDevService struct {
	mock.Mock
}

var _ services.DevService = (*MockDevService)(nil)

func (m *MockDevService) SwitchRole(ctx context.Context, actor services.Actor, role models.Role) (*models.Profile, error) {
	args := m.Called(ctx, actor, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockDevService) SeedTestUsers(ctx context.Context, actor services.Actor) ([]models.Profile, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

// --- JobService ---

type MockJobService struct {
	mock.Mock
}

var _ services.JobService = (*MockJobService)(nil)

func (m *MockJobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) GetJob(ctx context.Context, actor services.Actor, jobID uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, actor, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) ListJobs(ctx context.Context, actor services.Actor, req *dto.ListJobsRequest) (*dto.JobListResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobListResponse), args.Error(1)
}

func (m *MockJobService) PatchJob(ctx context.Context, req *dto.PatchJobRequest) (*models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) ListJobChanges(ctx context.Context, actor services.Actor, jobID uuid.UUID) ([]models.JobChange, error) {
	args := m.Called(ctx, actor, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JobChange), args.Error(1)
}

// --- ReferralService ---

type MockReferralService struct {
	mock.Mock
}

var _ services.ReferralService = (*MockReferralService)(nil)

func (m *MockReferralService) CreateReferral(ctx context.Context, req *dto.CreateReferralRequest) (*models.Referral, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Referral), args.Error(1)
}

func (m *MockReferralService) ListReferrals(ctx context.Context, actor services.Actor, req *dto.ListReferralsRequest) (*dto.ReferralListResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReferralListResponse), args.Error(1)
}

// --- MatchService ---

type MockMatchService struct {
	mock.Mock
}

var _ services.MatchService = (*MockMatchService)(nil)

func (m *MockMatchService) Analyze(ctx context.Context, actor services.Actor, req *dto.MatchRequest) (*dto.MatchResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MatchResponse), args.Error(1)
}

func (m *MockMatchService) ListAnalyses(ctx context.Context, actor services.Actor, jobID uuid.UUID, minScore int) ([]models.MatchAnalysis, error) {
	args := m.Called(ctx, actor, jobID, minScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MatchAnalysis), args.Error(1)
}

// --- SuggestionService ---

type MockSuggestionService struct {
	mock.Mock
}

var _ services.SuggestionService = (*MockSuggestionService)(nil)

func (m *MockSuggestionService) Suggest(ctx context.Context, actor services.Actor, req *dto.SuggestRequest) (*dto.SuggestResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SuggestResponse), args.Error(1)
}

func (m *MockSuggestionService) ListSuggestions(ctx context.Context, actor services.Actor, jobID uuid.UUID) ([]models.SuggestionWithCandidate, error) {
	args := m.Called(ctx, actor, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SuggestionWithCandidate), args.Error(1)
}

func (m *MockSuggestionService) UpdateStatus(ctx context.Context, actor services.Actor, suggestionID uuid.UUID, status models.SuggestionStatus) (*models.CandidateSuggestion, error) {
	args := m.Called(ctx, actor, suggestionID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CandidateSuggestion), args.Error(1)
}

// --- ResumeService ---

type MockResumeService struct {
	mock.Mock
}

var _ services.ResumeService = (*MockResumeService)(nil)

func (m *MockResumeService) CreateUpload(ctx context.Context, actor services.Actor, req *dto.CreateUploadRequest) (*dto.CreateUploadResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateUploadResponse), args.Error(1)
}

func (m *MockResumeService) Upload(ctx context.Context, token, contentType string, body io.Reader) (*dto.UploadCompleteResponse, error) {
	args := m.Called(ctx, token, contentType, mock.Anything)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadCompleteResponse), args.Error(1)
}

func (m *MockResumeService) CleanupStale(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// --- DashboardService ---

type MockDashboardService struct {
	mock.Mock
}

var _ services.DashboardService = (*MockDashboardService)(nil)

func (m *MockDashboardService) GetDashboard(ctx context.Context, actor services.Actor) (*models.Dashboard, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dashboard), args.Error(1)
}
