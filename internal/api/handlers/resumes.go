package handlers

import (
	"errors"
	"log"
	"net/http"

	"referral-network-api/internal/services"
	"referral-network-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ResumeHandler issues signed upload URLs and receives the uploads.
type ResumeHandler struct {
	service   services.ResumeService
	validator *validator.Validate
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(service services.ResumeService, validate *validator.Validate) *ResumeHandler {
	return &ResumeHandler{service: service, validator: validate}
}

// CreateUpload godoc
// @Summary      Request a signed resume upload URL
// @Description  Checks file type and size, records a pending upload and returns a short-lived URL to PUT the file to.
// @Tags         storage
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUploadRequest true "File metadata"
// @Success      201 {object}  dto.CreateUploadResponse
// @Failure      400 {object}  map[string]interface{} "Rejected file"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /storage/resumes [post]
// @Security     BearerAuth
func (h *ResumeHandler) CreateUpload(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.CreateUploadRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.service.CreateUpload(c.Request.Context(), actor, &req)
	if err != nil {
		if errors.Is(err, services.ErrUploadRejected) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error creating resume upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Upload godoc
// @Summary      Upload a resume with a signed token
// @Description  Streams the request body into storage. The token comes from the upload URL; no session is needed.
// @Tags         storage
// @Accept       application/pdf
// @Produce      json
// @Param        token query string true "Signed upload token"
// @Success      200 {object}  dto.UploadCompleteResponse
// @Failure      400 {object}  map[string]string "Rejected file"
// @Failure      403 {object}  map[string]string "Invalid or expired token"
// @Failure      409 {object}  map[string]string "Already uploaded"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /storage/resumes/upload [put]
func (h *ResumeHandler) Upload(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Missing upload token"})
		return
	}

	resp, err := h.service.Upload(c.Request.Context(), token, c.ContentType(), c.Request.Body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired upload token"})
		case errors.Is(err, services.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUploadRejected):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error storing resume upload: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
