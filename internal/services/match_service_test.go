package services_test

import (
	"context"
	"errors"
	"testing"

	"referral-network-api/internal/ai"
	"referral-network-api/internal/mocks"
	"referral-network-api/internal/models"
	"referral-network-api/internal/services"
	"referral-network-api/internal/storage"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validMatchReply = "```json\n" + `{"overall_score": 82, "skills_match": 90, "experience_match": 75, "education_match": 60,
 "key_strengths": ["Go"], "potential_concerns": [], "reasoning": "Strong backend background."}` + "\n```"

func setupMatchServiceTest() (context.Context, services.MatchService, *mocks.MockJobRepository, *mocks.MockMatchAnalysisRepository, *mocks.MockCompleter) {
	jobs := new(mocks.MockJobRepository)
	analyses := new(mocks.MockMatchAnalysisRepository)
	completer := new(mocks.MockCompleter)
	return context.Background(), services.NewMatchService(jobs, analyses, completer), jobs, analyses, completer
}

func TestMatchService_Analyze(t *testing.T) {
	t.Run("Success stores the analysis", func(t *testing.T) {
		ctx, svc, jobs, analyses, completer := setupMatchServiceTest()
		owner := uuid.New()
		job := existingJob(owner, models.JobStatusActive)
		jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		completer.On("Complete", ctx, mock.MatchedBy(func(r ai.CompletionRequest) bool {
			return r.Temperature == 0.3 && r.MaxTokens == 1500 && r.System == ai.SystemJSONOnly
		})).Return(validMatchReply, nil).Once()
		analyses.On("Create", ctx, mock.MatchedBy(func(a *models.MatchAnalysis) bool {
			return a.OverallScore == 82 && a.AnalyzedBy == owner && a.CandidateEmail != nil && *a.CandidateEmail == "pat@example.com"
		})).Return(&models.MatchAnalysis{ID: uuid.New(), OverallScore: 82}, nil).Once()

		resp, err := svc.Analyze(ctx, services.Actor{ID: owner, Role: models.RoleClient}, &dto.MatchRequest{
			JobID: job.ID, CandidateResume: "Ten years of Go.", CandidateEmail: ptr(" Pat@Example.com "),
		})

		require.NoError(t, err)
		assert.True(t, resp.Stored)
		assert.Equal(t, 82, resp.Analysis.OverallScore)
		analyses.AssertExpectations(t)
	})

	t.Run("Store failure still returns the analysis", func(t *testing.T) {
		ctx, svc, jobs, analyses, completer := setupMatchServiceTest()
		owner := uuid.New()
		job := existingJob(owner, models.JobStatusActive)
		jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		completer.On("Complete", ctx, mock.Anything).Return(validMatchReply, nil).Once()
		analyses.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()

		resp, err := svc.Analyze(ctx, services.Actor{ID: owner, Role: models.RoleClient}, &dto.MatchRequest{JobID: job.ID, CandidateResume: "r"})

		require.NoError(t, err)
		assert.False(t, resp.Stored)
		assert.Equal(t, 90, resp.Analysis.SkillsMatch)
	})

	t.Run("Missing job", func(t *testing.T) {
		ctx, svc, jobs, _, completer := setupMatchServiceTest()
		id := uuid.New()
		jobs.On("GetByID", ctx, id).Return(nil, storage.ErrNotFound).Once()

		_, err := svc.Analyze(ctx, services.Actor{ID: uuid.New(), Role: models.RoleClient}, &dto.MatchRequest{JobID: id, CandidateResume: "r"})

		assert.ErrorIs(t, err, services.ErrNotFound)
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("Job lookup error is reported as not found", func(t *testing.T) {
		ctx, svc, jobs, _, completer := setupMatchServiceTest()
		id := uuid.New()
		jobs.On("GetByID", ctx, id).Return(nil, errors.New("connection refused")).Once()

		_, err := svc.Analyze(ctx, services.Actor{ID: uuid.New(), Role: models.RoleClient}, &dto.MatchRequest{JobID: id, CandidateResume: "r"})

		assert.ErrorIs(t, err, services.ErrNotFound)
		assert.Contains(t, err.Error(), "connection refused")
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("Non-JSON reply is malformed and nothing is stored", func(t *testing.T) {
		ctx, svc, jobs, analyses, completer := setupMatchServiceTest()
		owner := uuid.New()
		job := existingJob(owner, models.JobStatusActive)
		jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		completer.On("Complete", ctx, mock.Anything).Return("I think this candidate is great!", nil).Once()

		_, err := svc.Analyze(ctx, services.Actor{ID: owner, Role: models.RoleClient}, &dto.MatchRequest{JobID: job.ID, CandidateResume: "r"})

		assert.ErrorIs(t, err, services.ErrMalformedModelOutput)
		analyses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Model failure", func(t *testing.T) {
		ctx, svc, jobs, _, completer := setupMatchServiceTest()
		owner := uuid.New()
		job := existingJob(owner, models.JobStatusActive)
		jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		completer.On("Complete", ctx, mock.Anything).Return("", ai.ErrModelUnavailable).Once()

		_, err := svc.Analyze(ctx, services.Actor{ID: owner, Role: models.RoleClient}, &dto.MatchRequest{JobID: job.ID, CandidateResume: "r"})

		assert.ErrorIs(t, err, services.ErrModelUnavailable)
	})

	t.Run("Clients cannot score other clients' jobs", func(t *testing.T) {
		ctx, svc, jobs, _, _ := setupMatchServiceTest()
		job := existingJob(uuid.New(), models.JobStatusActive)
		jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()

		_, err := svc.Analyze(ctx, services.Actor{ID: uuid.New(), Role: models.RoleClient}, &dto.MatchRequest{JobID: job.ID, CandidateResume: "r"})

		assert.ErrorIs(t, err, services.ErrForbidden)
	})
}

func TestMatchService_ListAnalyses(t *testing.T) {
	ctx, svc, jobs, analyses, _ := setupMatchServiceTest()
	job := existingJob(uuid.New(), models.JobStatusActive)
	jobs.On("GetByID", ctx, job.ID).Return(job, nil)
	analyses.On("ListByJob", ctx, job.ID, 70).Return([]models.MatchAnalysis{{OverallScore: 90}, {OverallScore: 71}}, nil).Once()

	got, err := svc.ListAnalyses(ctx, services.Actor{ID: uuid.New(), Role: models.RoleFoundingCircle}, job.ID, 70)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	analyses.AssertExpectations(t)
}
