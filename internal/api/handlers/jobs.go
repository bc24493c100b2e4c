package handlers

import (
	"errors"
	"log"
	"net/http"

	"referral-network-api/internal/models"
	"referral-network-api/internal/services"
	"referral-network-api/internal/transport/dto" // Import DTOs

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate) *JobHandler {
	return &JobHandler{
		service:   service,
		validator: validate,
	}
}

func parseJobID(c *gin.Context) (uuid.UUID, bool) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return uuid.Nil, false
	}
	return jobID, true
}

// CreateJob godoc
// @Summary      Create a new job posting
// @Description  Creates a job owned by the caller. Drafts need a title and description; anything else must pass the full publish rules.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobRequest true  "Job details"
// @Success      201 {object}  models.Job "Job created successfully"
// @Failure      400 {object}  map[string]interface{} "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.ClientID = actor.ID

	createdJob, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		if writeFieldErrors(c, err) {
			return
		}
		log.Printf("Error creating job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, createdJob)
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Clients list their own postings; everyone else lists active jobs.
// @Tags         jobs
// @Produce      json
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Page size (max 100)" default(20)
// @Param        search query string false "Case-insensitive match on title or description"
// @Param        status query string false "Status filter (clients only)" Enums(draft, active, paused, filled)
// @Success      200 {object}  dto.JobListResponse
// @Failure      400 {object}  map[string]interface{} "Invalid query"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListJobs(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.ListJobsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	resp, err := h.service.ListJobs(c.Request.Context(), actor, &req)
	if err != nil {
		log.Printf("Error listing jobs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Description  Owners see any status; other callers only see active jobs.
// @Tags         jobs
// @Produce      json
// @Param        id path      string true  "Job ID" Format(uuid)
// @Success      200 {object}  models.Job "Successfully retrieved job"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetJobByID(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	jobID, ok := parseJobID(c)
	if !ok {
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), actor, jobID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			log.Printf("Error fetching job by ID %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, job)
}

// PatchJob godoc
// @Summary      Update a job posting
// @Description  Merges the given fields into the job, re-validates it and records a change entry. Status moves follow the job lifecycle.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id  path string              true "Job ID" Format(uuid)
// @Param        job body dto.PatchJobRequest true "Fields to change"
// @Success      200 {object}  models.Job
// @Failure      400 {object}  map[string]interface{} "Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Not the job owner"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      409 {object}  map[string]string "Invalid state transition"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) PatchJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	jobID, ok := parseJobID(c)
	if !ok {
		return
	}

	var req dto.PatchJobRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.JobID = jobID
	req.UserID = actor.ID

	updatedJob, err := h.service.PatchJob(c.Request.Context(), &req)
	if err != nil {
		switch {
		case writeFieldErrors(c, err):
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: you do not own this job"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": services.ErrInvalidTransition.Error()})
		default:
			log.Printf("Error updating job %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, updatedJob)
}

// ListJobChanges godoc
// @Summary      List a job's change log
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobChangesResponse
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Not the job owner"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id}/changes [get]
// @Security     BearerAuth
func (h *JobHandler) ListJobChanges(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	jobID, ok := parseJobID(c)
	if !ok {
		return
	}

	changes, err := h.service.ListJobChanges(c.Request.Context(), actor, jobID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: you do not own this job"})
		default:
			log.Printf("Error listing changes for job %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	if changes == nil {
		changes = []models.JobChange{}
	}

	c.JSON(http.StatusOK, dto.JobChangesResponse{Changes: changes})
}
