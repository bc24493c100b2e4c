package handlers

import (
	"errors" // Import errors for checking specific service errors
	"log"
	"net/http"

	"referral-network-api/internal/services"
	"referral-network-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ProfileHandler holds the service dependency for the caller's own profile.
type ProfileHandler struct {
	service   services.ProfileService
	validator *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler with the given service
func NewProfileHandler(service services.ProfileService, validate *validator.Validate) *ProfileHandler {
	return &ProfileHandler{service: service, validator: validate}
}

// GetProfile godoc
// @Summary      Get the caller's profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  models.Profile
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      404  {object}  map[string]string "Profile Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		log.Printf("Error fetching profile %s: %v", actor.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CreateProfile godoc
// @Summary      Create the caller's profile
// @Description  Called once at signup. Only the client and candidate roles can be chosen here.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile body dto.CreateProfileRequest true "Profile details"
// @Success      201  {object}  models.Profile
// @Failure      400  {object}  map[string]interface{} "Invalid input"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      409  {object}  map[string]string "Profile already exists"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /profile [post]
// @Security     BearerAuth
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	profile, err := h.service.CreateProfile(c.Request.Context(), actor, &req)
	if err != nil {
		switch {
		case writeFieldErrors(c, err):
		case errors.Is(err, services.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Profile already exists"})
		default:
			log.Printf("Error creating profile %s: %v", actor.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// UpdateProfile godoc
// @Summary      Update the caller's display fields
// @Description  The role is never changed through this route.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile body dto.UpdateProfileRequest true "Fields to change"
// @Success      200  {object}  models.Profile
// @Failure      400  {object}  map[string]interface{} "Invalid input"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      404  {object}  map[string]string "Profile Not Found"
// @Router       /profile [patch]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), actor.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		log.Printf("Error updating profile %s: %v", actor.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
