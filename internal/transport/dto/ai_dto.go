package dto

import (
	"referral-network-api/internal/models"

	"github.com/google/uuid"
)

// Suggestion batch bounds.
const (
	DefaultMaxSuggestions = 10
	MaxSuggestionsLimit   = 20
)

// MatchRequest is the body of POST /api/ai/match.
type MatchRequest struct {
	JobID           uuid.UUID `json:"job_id" validate:"required"`
	CandidateResume string    `json:"candidate_resume" validate:"required"`
	CandidateEmail  *string   `json:"candidate_email,omitempty" validate:"omitempty,email"`
	UserID          uuid.UUID `json:"-"`
}

// MatchResponse returns the computed analysis and whether it was persisted.
type MatchResponse struct {
	Analysis *models.MatchAnalysis `json:"analysis"`
	Stored   bool                  `json:"stored"`
}

// ListMatchesRequest defines parameters for listing stored analyses.
type ListMatchesRequest struct {
	JobID    string `form:"job_id" validate:"required,uuid"`
	MinScore *int   `form:"min_score" validate:"omitempty,min=0,max=100"`
}

// MatchListResponse lists stored analyses for a job.
type MatchListResponse struct {
	Analyses []models.MatchAnalysis `json:"analyses"`
	Count    int                    `json:"count"`
}

// SuggestRequest is the body of POST /api/ai/suggestions.
type SuggestRequest struct {
	JobID          uuid.UUID `json:"job_id" validate:"required"`
	MaxSuggestions *int      `json:"max_suggestions,omitempty" validate:"omitempty,min=1,max=20"`
	UserID         uuid.UUID `json:"-"`
}

// Max returns the requested batch size or the default.
func (r *SuggestRequest) Max() int {
	if r.MaxSuggestions == nil {
		return DefaultMaxSuggestions
	}
	return *r.MaxSuggestions
}

// SuggestResponse is returned by POST /api/ai/suggestions.
type SuggestResponse struct {
	Suggestions []models.CandidateSuggestion `json:"suggestions"`
	Count       int                          `json:"count"`
	Message     string                       `json:"message,omitempty"`
}

// ListSuggestionsRequest defines parameters for listing stored suggestions.
type ListSuggestionsRequest struct {
	JobID string `form:"job_id" validate:"required,uuid"`
}

// SuggestionListResponse lists stored suggestions with candidate details.
type SuggestionListResponse struct {
	Suggestions []models.SuggestionWithCandidate `json:"suggestions"`
	Count       int                              `json:"count"`
}

// UpdateSuggestionStatusRequest is the body of PATCH /api/ai/suggestions/:id.
type UpdateSuggestionStatusRequest struct {
	Status models.SuggestionStatus `json:"status" validate:"required,oneof=contacted dismissed referred"`
}
