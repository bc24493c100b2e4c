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

// DevHandler exposes role tooling for local environments. Outside them,
// or for anyone but the configured superuser, every route answers 404.
type DevHandler struct {
	service   services.DevService
	validator *validator.Validate
}

func NewDevHandler(service services.DevService, validate *validator.Validate) *DevHandler {
	return &DevHandler{service: service, validator: validate}
}

func devNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

// SwitchRole godoc
// @Summary      Switch the caller's role (development only)
// @Tags         dev
// @Accept       json
// @Produce      json
// @Param        request body dto.SwitchRoleRequest true "Target role"
// @Success      200  {object}  models.Profile
// @Failure      400  {object}  map[string]interface{} "Invalid role"
// @Failure      404  {object}  map[string]string "Not found"
// @Router       /dev/role [post]
// @Security     BearerAuth
func (h *DevHandler) SwitchRole(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.SwitchRoleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	profile, err := h.service.SwitchRole(c.Request.Context(), actor, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			devNotFound(c)
		case writeFieldErrors(c, err):
		default:
			log.Printf("DevHandler: Error switching role for %s: %v", actor.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	log.Printf("DevHandler: %s switched to %s", actor.ID, profile.Role)
	c.JSON(http.StatusOK, profile)
}

// SeedTestUsers godoc
// @Summary      Create one test profile per role (development only)
// @Tags         dev
// @Produce      json
// @Success      201  {object}  dto.SeedUsersResponse
// @Failure      404  {object}  map[string]string "Not found"
// @Router       /dev/test-users [post]
// @Security     BearerAuth
func (h *DevHandler) SeedTestUsers(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	profiles, err := h.service.SeedTestUsers(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			devNotFound(c)
			return
		}
		log.Printf("DevHandler: Error seeding test users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.SeedUsersResponse{Profiles: profiles})
}
