package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/models"
	"referral-network-api/internal/realtime"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealtimeHandler_Connect(t *testing.T) {
	env := newTestEnv(t, models.RoleClient)
	hub := realtime.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	env.router.GET("/ws", handlers.NewRealtimeHandler(hub).Connect)

	srv := httptest.NewServer(env.router)
	defer srv.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+env.token)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ConnectedUsers() == 1 }, time.Second, 10*time.Millisecond)

	jobID := uuid.New()
	hub.Notify(uuid.New(), realtime.Event{Type: realtime.EventReferralCreated, JobID: uuid.New()})
	hub.Notify(env.userID, realtime.Event{Type: realtime.EventReferralCreated, JobID: jobID})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt realtime.Event
	require.NoError(t, json.Unmarshal(msg, &evt))
	assert.Equal(t, realtime.EventReferralCreated, evt.Type)
	assert.Equal(t, jobID, evt.JobID)
	assert.NotEmpty(t, evt.Timestamp)
}

func TestRealtimeHandler_RequiresSession(t *testing.T) {
	env := newTestEnv(t, models.RoleClient)
	env.router.GET("/ws", handlers.NewRealtimeHandler(realtime.NewHub()).Connect)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
