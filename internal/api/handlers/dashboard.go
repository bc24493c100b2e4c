package handlers

import (
	"log"
	"net/http"

	"referral-network-api/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard godoc
// @Summary      Role-specific dashboard aggregates
// @Description  Exactly one of client, referrer or candidate is set, matching the caller's role.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      403  {object}  map[string]string "Forbidden"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /dashboard [get]
// @Security     BearerAuth
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), actor)
	if err != nil {
		log.Printf("Error computing dashboard for %s: %v", actor.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
