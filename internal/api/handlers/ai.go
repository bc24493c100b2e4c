package handlers

import (
	"errors"
	"log"
	"net/http"

	"referral-network-api/internal/models"
	"referral-network-api/internal/services"
	"referral-network-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AIHandler serves the language-model backed routes.
type AIHandler struct {
	matches     services.MatchService
	suggestions services.SuggestionService
	validator   *validator.Validate
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(matches services.MatchService, suggestions services.SuggestionService, validate *validator.Validate) *AIHandler {
	return &AIHandler{matches: matches, suggestions: suggestions, validator: validate}
}

// jobAccessError writes the lookup/ownership responses shared by the AI routes.
func jobAccessError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		return false
	}
	return true
}

// AnalyzeMatch godoc
// @Summary      Score a candidate against a job
// @Description  Asks the language model for a structured fit analysis and stores it when possible.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body dto.MatchRequest true "Job and resume"
// @Success      200 {object}  dto.MatchResponse
// @Failure      400 {object}  map[string]interface{} "Missing fields"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job not found"
// @Failure      500 {object}  map[string]string "Model or parse failure"
// @Router       /ai/match [post]
// @Security     BearerAuth
func (h *AIHandler) AnalyzeMatch(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.MatchRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = actor.ID

	resp, err := h.matches.Analyze(c.Request.Context(), actor, &req)
	if err != nil {
		if jobAccessError(c, err) {
			return
		}
		log.Printf("Error analyzing match for job %s: %v", req.JobID, err)
		if errors.Is(err, services.ErrMalformedModelOutput) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse AI analysis"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze candidate match"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMatches godoc
// @Summary      List stored match analyses
// @Description  Highest overall score first, optionally above a minimum score.
// @Tags         ai
// @Produce      json
// @Param        job_id    query string true  "Job ID" Format(uuid)
// @Param        min_score query int    false "Minimum overall score (0-100)"
// @Success      200 {object}  dto.MatchListResponse
// @Failure      400 {object}  map[string]interface{} "Missing or invalid parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job not found"
// @Router       /ai/match [get]
// @Security     BearerAuth
func (h *AIHandler) ListMatches(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.ListMatchesRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	jobID := uuid.MustParse(req.JobID) // validated above
	minScore := 0
	if req.MinScore != nil {
		minScore = *req.MinScore
	}

	analyses, err := h.matches.ListAnalyses(c.Request.Context(), actor, jobID, minScore)
	if err != nil {
		if jobAccessError(c, err) {
			return
		}
		log.Printf("Error listing analyses for job %s: %v", jobID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve match analyses"})
		return
	}
	if analyses == nil {
		analyses = []models.MatchAnalysis{}
	}

	c.JSON(http.StatusOK, dto.MatchListResponse{Analyses: analyses, Count: len(analyses)})
}

// Suggest godoc
// @Summary      Suggest candidates for a job
// @Description  Ranks up to 50 network candidates with the language model and stores the batch.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body dto.SuggestRequest true "Job and batch size"
// @Success      200 {object}  dto.SuggestResponse
// @Failure      400 {object}  map[string]interface{} "Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job not found"
// @Failure      500 {object}  map[string]string "Model or parse failure"
// @Router       /ai/suggestions [post]
// @Security     BearerAuth
func (h *AIHandler) Suggest(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.SuggestRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = actor.ID

	resp, err := h.suggestions.Suggest(c.Request.Context(), actor, &req)
	if err != nil {
		if jobAccessError(c, err) {
			return
		}
		log.Printf("Error generating suggestions for job %s: %v", req.JobID, err)
		if errors.Is(err, services.ErrMalformedModelOutput) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse AI suggestions"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate candidate suggestions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListSuggestions godoc
// @Summary      List stored suggestions for a job
// @Description  Newest batch first, in ranked order, with candidate profile fields.
// @Tags         ai
// @Produce      json
// @Param        job_id query string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.SuggestionListResponse
// @Failure      400 {object}  map[string]interface{} "Missing job_id"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job not found"
// @Router       /ai/suggestions [get]
// @Security     BearerAuth
func (h *AIHandler) ListSuggestions(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.ListSuggestionsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	jobID := uuid.MustParse(req.JobID)

	list, err := h.suggestions.ListSuggestions(c.Request.Context(), actor, jobID)
	if err != nil {
		if jobAccessError(c, err) {
			return
		}
		log.Printf("Error listing suggestions for job %s: %v", jobID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve suggestions"})
		return
	}
	if list == nil {
		list = []models.SuggestionWithCandidate{}
	}

	c.JSON(http.StatusOK, dto.SuggestionListResponse{Suggestions: list, Count: len(list)})
}

// UpdateSuggestionStatus godoc
// @Summary      Move a suggestion along its lifecycle
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        id      path string                            true "Suggestion ID" Format(uuid)
// @Param        request body dto.UpdateSuggestionStatusRequest true "New status"
// @Success      200 {object}  models.CandidateSuggestion
// @Failure      400 {object}  map[string]interface{} "Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Suggestion not found"
// @Failure      409 {object}  map[string]string "Invalid state transition"
// @Router       /ai/suggestions/{id} [patch]
// @Security     BearerAuth
func (h *AIHandler) UpdateSuggestionStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	suggestionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid suggestion ID format"})
		return
	}

	var req dto.UpdateSuggestionStatusRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	updated, err := h.suggestions.UpdateStatus(c.Request.Context(), actor, suggestionID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": services.ErrInvalidTransition.Error()})
		default:
			log.Printf("Error updating suggestion %s: %v", suggestionID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}
