package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"referral-network-api/internal/ai"
	"referral-network-api/internal/models"
	"referral-network-api/internal/realtime"
	"referral-network-api/internal/storage"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
)

// CandidatePoolLimit caps how many profiles are sent to the model.
const CandidatePoolLimit = 50

// EmptyPoolMessage is returned when there is nobody to rank.
const EmptyPoolMessage = "No candidates available in the network"

type suggestionService struct {
	jobRepo        storage.JobRepository
	profileRepo    storage.ProfileRepository
	suggestionRepo storage.SuggestionRepository
	completer      ai.Completer
	notifier       Notifier
}

// NewSuggestionService creates a new instance of SuggestionService.
func NewSuggestionService(
	jobRepo storage.JobRepository,
	profileRepo storage.ProfileRepository,
	suggestionRepo storage.SuggestionRepository,
	completer ai.Completer,
	notifier Notifier,
) SuggestionService {
	return &suggestionService{
		jobRepo:        jobRepo,
		profileRepo:    profileRepo,
		suggestionRepo: suggestionRepo,
		completer:      completer,
		notifier:       notifierOrNoop(notifier),
	}
}

// rankSuggestions keeps entries naming pool members (first mention wins;
// uuid.Nil from an unparseable id never matches),
// orders them by score and truncates to max.
func rankSuggestions(raw []ai.Suggestion, pool []models.Profile, max int) []ai.Suggestion {
	inPool := make(map[uuid.UUID]bool, len(pool))
	for _, p := range pool {
		inPool[p.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(raw))
	kept := make([]ai.Suggestion, 0, len(raw))
	for _, sg := range raw {
		if !inPool[sg.CandidateID] || seen[sg.CandidateID] {
			continue
		}
		seen[sg.CandidateID] = true
		kept = append(kept, sg)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].MatchScore > kept[j].MatchScore
	})
	if len(kept) > max {
		kept = kept[:max]
	}
	return kept
}

// Suggest asks the model to rank the candidate pool for a job. Storage of the
// batch is best effort; the ranked list is returned either way.
func (s *suggestionService) Suggest(ctx context.Context, actor Actor, req *dto.SuggestRequest) (*dto.SuggestResponse, error) {
	job, err := jobForActor(ctx, s.jobRepo, actor, req.JobID)
	if err != nil {
		return nil, err
	}

	pool, err := s.profileRepo.ListCandidatePool(ctx, CandidatePoolLimit)
	if err != nil {
		log.Printf("SuggestionService: Error loading candidate pool: %v", err)
		return nil, fmt.Errorf("internal error loading candidate pool: %w", err)
	}
	if len(pool) == 0 {
		return &dto.SuggestResponse{
			Suggestions: []models.CandidateSuggestion{},
			Count:       0,
			Message:     EmptyPoolMessage,
		}, nil
	}

	max := req.Max()
	reply, err := s.completer.Complete(ctx, ai.CompletionRequest{
		System:      ai.SystemJSONOnly,
		Prompt:      ai.BuildSuggestionPrompt(job, pool, max),
		Temperature: ai.SuggestionTemperature,
		MaxTokens:   ai.SuggestionMaxTokens,
	})
	if err != nil {
		log.Printf("SuggestionService: Model call failed for job %s: %v", job.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	parsed, err := ai.ParseSuggestions(reply)
	if err != nil {
		log.Printf("SuggestionService: Unparseable model reply for job %s: %v", job.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}

	ranked := rankSuggestions(parsed, pool, max)
	batch := make([]models.CandidateSuggestion, 0, len(ranked))
	for i, sg := range ranked {
		batch = append(batch, models.CandidateSuggestion{
			ID:                uuid.New(),
			JobID:             job.ID,
			CandidateID:       sg.CandidateID,
			MatchScore:        sg.MatchScore,
			Reasoning:         sg.Reasoning,
			KeyMatchPoints:    sg.KeyMatchPoints,
			SuggestedApproach: sg.SuggestedApproach,
			Rank:              i,
			Status:            models.SuggestionSuggested,
			SuggestedBy:       actor.ID,
		})
	}

	if _, err := s.suggestionRepo.BulkCreate(ctx, batch); err != nil {
		log.Printf("SuggestionService: Failed to store %d suggestions for job %s: %v", len(batch), job.ID, err)
	}

	if len(batch) > 0 {
		s.notifier.Notify(job.ClientID, realtime.Event{
			Type:    realtime.EventSuggestionsGenerated,
			JobID:   job.ID,
			Payload: map[string]int{"count": len(batch)},
		})
	}
	return &dto.SuggestResponse{Suggestions: batch, Count: len(batch)}, nil
}

func (s *suggestionService) ListSuggestions(ctx context.Context, actor Actor, jobID uuid.UUID) ([]models.SuggestionWithCandidate, error) {
	if _, err := jobForActor(ctx, s.jobRepo, actor, jobID); err != nil {
		return nil, err
	}
	out, err := s.suggestionRepo.ListByJob(ctx, jobID)
	if err != nil {
		log.Printf("SuggestionService: Error listing suggestions for job %s: %v", jobID, err)
		return nil, fmt.Errorf("internal error listing suggestions: %w", err)
	}
	if out == nil {
		out = []models.SuggestionWithCandidate{}
	}
	return out, nil
}

func (s *suggestionService) UpdateStatus(ctx context.Context, actor Actor, suggestionID uuid.UUID, status models.SuggestionStatus) (*models.CandidateSuggestion, error) {
	current, err := s.suggestionRepo.GetByID(ctx, suggestionID)
	if err != nil {
		return nil, MapRepoError(err, "getting suggestion")
	}
	if _, err := jobForActor(ctx, s.jobRepo, actor, current.JobID); err != nil {
		return nil, err
	}
	if !models.CanTransitionSuggestion(current.Status, status) {
		return nil, fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, current.Status, status)
	}
	updated, err := s.suggestionRepo.UpdateStatus(ctx, suggestionID, status)
	if err != nil {
		return nil, MapRepoError(err, "updating suggestion status")
	}
	return updated, nil
}
