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

// ReferralHandler holds dependencies for referral operations.
type ReferralHandler struct {
	service   services.ReferralService
	validator *validator.Validate
}

// NewReferralHandler creates a new ReferralHandler.
func NewReferralHandler(service services.ReferralService, validate *validator.Validate) *ReferralHandler {
	return &ReferralHandler{service: service, validator: validate}
}

// CreateReferral godoc
// @Summary      Refer a candidate to a job
// @Description  Stores a referral for the caller. The referrer and the consent time are assigned by the server; consent_given must be true.
// @Tags         referrals
// @Accept       json
// @Produce      json
// @Param        referral body dto.CreateReferralRequest true "Referral details"
// @Success      201 {object}  dto.ReferralResponse
// @Failure      400 {object}  map[string]interface{} "Invalid input or missing consent"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job not found"
// @Failure      500 {object}  map[string]string "Insert failed"
// @Router       /referrals [post]
// @Security     BearerAuth
func (h *ReferralHandler) CreateReferral(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.CreateReferralRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.ReferrerID = actor.ID

	referral, err := h.service.CreateReferral(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConsentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Consent is required"})
		case writeFieldErrors(c, err):
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case errors.Is(err, services.ErrUploadRejected):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error creating referral: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewReferralResponse(referral))
}

// ListReferrals godoc
// @Summary      List referrals
// @Description  Network members see what they submitted; clients see referrals on their jobs. Newest first.
// @Tags         referrals
// @Produce      json
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Page size (max 100)" default(20)
// @Param        job_id query string false "Restrict to one job" Format(uuid)
// @Success      200 {object}  dto.ReferralListResponse
// @Failure      400 {object}  map[string]interface{} "Invalid query"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      500 {object}  map[string]string "Query failed"
// @Router       /referrals [get]
// @Security     BearerAuth
func (h *ReferralHandler) ListReferrals(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.ListReferralsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	resp, err := h.service.ListReferrals(c.Request.Context(), actor, &req)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		log.Printf("Error listing referrals: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
