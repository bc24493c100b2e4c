package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"referral-network-api/internal/ai"
	"referral-network-api/internal/mocks"
	"referral-network-api/internal/models"
	"referral-network-api/internal/realtime"
	"referral-network-api/internal/services"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type suggestionFixture struct {
	svc         services.SuggestionService
	jobs        *mocks.MockJobRepository
	profiles    *mocks.MockProfileRepository
	suggestions *mocks.MockSuggestionRepository
	completer   *mocks.MockCompleter
	notifier    *mocks.RecordingNotifier
}

func setupSuggestionServiceTest() (context.Context, *suggestionFixture) {
	f := &suggestionFixture{
		jobs:        new(mocks.MockJobRepository),
		profiles:    new(mocks.MockProfileRepository),
		suggestions: new(mocks.MockSuggestionRepository),
		completer:   new(mocks.MockCompleter),
		notifier:    &mocks.RecordingNotifier{},
	}
	f.svc = services.NewSuggestionService(f.jobs, f.profiles, f.suggestions, f.completer, f.notifier)
	return context.Background(), f
}

func suggestionEntry(id uuid.UUID, score int) string {
	return fmt.Sprintf(`{"candidate_id": %q, "match_score": %d, "reasoning": "fit", "key_match_points": ["Go"], "suggested_approach": "Reach out"}`, id, score)
}

func TestSuggestionService_Suggest(t *testing.T) {
	t.Run("Empty pool short-circuits without a model call", func(t *testing.T) {
		ctx, f := setupSuggestionServiceTest()
		owner := uuid.New()
		job := existingJob(owner, models.JobStatusActive)
		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		f.profiles.On("ListCandidatePool", ctx, services.CandidatePoolLimit).Return([]models.Profile{}, nil).Once()

		resp, err := f.svc.Suggest(ctx, services.Actor{ID: owner, Role: models.RoleClient}, &dto.SuggestRequest{JobID: job.ID})

		require.NoError(t, err)
		assert.Equal(t, 0, resp.Count)
		assert.NotNil(t, resp.Suggestions)
		assert.Empty(t, resp.Suggestions)
		assert.Equal(t, "No candidates available in the network", resp.Message)
		f.completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("Ranks pool members and drops strangers", func(t *testing.T) {
		ctx, f := setupSuggestionServiceTest()
		owner := uuid.New()
		job := existingJob(owner, models.JobStatusActive)
		a, b, c := uuid.New(), uuid.New(), uuid.New()
		stranger := uuid.New()
		pool := []models.Profile{{ID: a, FullName: "A"}, {ID: b, FullName: "B"}, {ID: c, FullName: "C"}}
		reply := "[" + suggestionEntry(a, 60) + "," + suggestionEntry(stranger, 99) + "," +
			suggestionEntry(b, 85) + "," + suggestionEntry(c, 70) + "]"

		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		f.profiles.On("ListCandidatePool", ctx, 50).Return(pool, nil).Once()
		f.completer.On("Complete", ctx, mock.MatchedBy(func(r ai.CompletionRequest) bool {
			return r.MaxTokens == 3000
		})).Return(reply, nil).Once()
		f.suggestions.On("BulkCreate", ctx, mock.MatchedBy(func(batch []models.CandidateSuggestion) bool {
			return len(batch) == 2 && batch[0].CandidateID == b && batch[0].Rank == 0 &&
				batch[1].CandidateID == c && batch[1].Rank == 1 && batch[1].Status == models.SuggestionSuggested
		})).Return(2, nil).Once()

		resp, err := f.svc.Suggest(ctx, services.Actor{ID: owner, Role: models.RoleClient},
			&dto.SuggestRequest{JobID: job.ID, MaxSuggestions: ptr(2)})

		require.NoError(t, err)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, 85, resp.Suggestions[0].MatchScore)
		assert.Equal(t, 70, resp.Suggestions[1].MatchScore)
		events := f.notifier.For(owner)
		require.Len(t, events, 1)
		assert.Equal(t, realtime.EventSuggestionsGenerated, events[0].Type)
		f.suggestions.AssertExpectations(t)
	})

	t.Run("Uppercase ids match and garbage ids are dropped", func(t *testing.T) {
		ctx, f := setupSuggestionServiceTest()
		owner := uuid.New()
		job := existingJob(owner, models.JobStatusActive)
		a := uuid.New()
		upper := strings.Replace(suggestionEntry(a, 80), a.String(), strings.ToUpper(a.String()), 1)
		garbage := `{"candidate_id": "candidate-7", "match_score": 95, "reasoning": "fit"}`

		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		f.profiles.On("ListCandidatePool", ctx, 50).Return([]models.Profile{{ID: a}}, nil).Once()
		f.completer.On("Complete", ctx, mock.Anything).Return("["+garbage+","+upper+"]", nil).Once()
		f.suggestions.On("BulkCreate", ctx, mock.MatchedBy(func(batch []models.CandidateSuggestion) bool {
			return len(batch) == 1 && batch[0].CandidateID == a
		})).Return(1, nil).Once()

		resp, err := f.svc.Suggest(ctx, services.Actor{ID: owner, Role: models.RoleClient}, &dto.SuggestRequest{JobID: job.ID})

		require.NoError(t, err)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, 80, resp.Suggestions[0].MatchScore)
		f.suggestions.AssertExpectations(t)
	})

	t.Run("Insert failure does not change the response", func(t *testing.T) {
		ctx, f := setupSuggestionServiceTest()
		owner := uuid.New()
		job := existingJob(owner, models.JobStatusActive)
		a := uuid.New()
		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		f.profiles.On("ListCandidatePool", ctx, 50).Return([]models.Profile{{ID: a}}, nil).Once()
		f.completer.On("Complete", ctx, mock.Anything).Return(`{"suggestions": [`+suggestionEntry(a, 77)+`]}`, nil).Once()
		f.suggestions.On("BulkCreate", ctx, mock.Anything).Return(0, errors.New("copy failed")).Once()

		resp, err := f.svc.Suggest(ctx, services.Actor{ID: owner, Role: models.RoleClient}, &dto.SuggestRequest{JobID: job.ID})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("Malformed model output", func(t *testing.T) {
		ctx, f := setupSuggestionServiceTest()
		owner := uuid.New()
		job := existingJob(owner, models.JobStatusActive)
		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		f.profiles.On("ListCandidatePool", ctx, 50).Return([]models.Profile{{ID: uuid.New()}}, nil).Once()
		f.completer.On("Complete", ctx, mock.Anything).Return(`[{"candidate_id": "nope"}]`, nil).Once()

		_, err := f.svc.Suggest(ctx, services.Actor{ID: owner, Role: models.RoleClient}, &dto.SuggestRequest{JobID: job.ID})

		assert.ErrorIs(t, err, services.ErrMalformedModelOutput)
		f.suggestions.AssertNotCalled(t, "BulkCreate", mock.Anything, mock.Anything)
	})
}

func TestSuggestionService_UpdateStatus(t *testing.T) {
	ctx, f := setupSuggestionServiceTest()
	owner := uuid.New()
	job := existingJob(owner, models.JobStatusActive)
	actor := services.Actor{ID: owner, Role: models.RoleClient}
	f.jobs.On("GetByID", ctx, job.ID).Return(job, nil)

	t.Run("Suggested to contacted", func(t *testing.T) {
		id := uuid.New()
		f.suggestions.On("GetByID", ctx, id).Return(&models.CandidateSuggestion{ID: id, JobID: job.ID, Status: models.SuggestionSuggested}, nil).Once()
		f.suggestions.On("UpdateStatus", ctx, id, models.SuggestionContacted).
			Return(&models.CandidateSuggestion{ID: id, Status: models.SuggestionContacted}, nil).Once()

		got, err := f.svc.UpdateStatus(ctx, actor, id, models.SuggestionContacted)

		require.NoError(t, err)
		assert.Equal(t, models.SuggestionContacted, got.Status)
	})

	t.Run("Dismissed is terminal", func(t *testing.T) {
		id := uuid.New()
		f.suggestions.On("GetByID", ctx, id).Return(&models.CandidateSuggestion{ID: id, JobID: job.ID, Status: models.SuggestionDismissed}, nil).Once()

		_, err := f.svc.UpdateStatus(ctx, actor, id, models.SuggestionReferred)

		assert.ErrorIs(t, err, services.ErrInvalidTransition)
	})
}
