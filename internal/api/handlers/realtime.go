package handlers

import (
	"log"

	"referral-network-api/internal/realtime"

	"github.com/gin-gonic/gin"
)

// RealtimeHandler upgrades authenticated requests to event streams.
type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Connect godoc
// @Summary      Subscribe to realtime events
// @Description  Upgrades to a websocket that receives referral.created and suggestions.generated events for the caller.
// @Tags         realtime
// @Success      101
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Router       /ws [get]
// @Security     BearerAuth
func (h *RealtimeHandler) Connect(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	conn, err := realtime.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.Printf("Realtime: upgrade failed for %s: %v", actor.ID, err)
		return
	}
	h.hub.Serve(conn, actor.ID)
}
