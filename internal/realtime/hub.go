// Package realtime pushes per-user events over websockets.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types sent to clients.
const (
	EventReferralCreated      = "referral.created"
	EventSuggestionsGenerated = "suggestions.generated"
)

// Event is the JSON frame delivered to a connected user.
type Event struct {
	Type      string      `json:"type"`
	JobID     uuid.UUID   `json:"job_id"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type delivery struct {
	userID  uuid.UUID
	message []byte
}

// Hub tracks connected clients by user and fans events out to them.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	done       chan struct{} // closed when Run returns
	mutex      sync.RWMutex
}

// NewHub creates an idle hub; call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		deliver:    make(chan delivery, 1024),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and deliveries until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mutex.Unlock()
			close(h.done)
			log.Println("[realtime] Hub stopped")
			return

		case c := <-h.register:
			h.mutex.Lock()
			if h.clients[c.userID] == nil {
				h.clients[c.userID] = make(map[*Client]bool)
			}
			h.clients[c.userID][c] = true
			h.mutex.Unlock()
			log.Printf("[realtime] User %s connected", c.userID)

		case c := <-h.unregister:
			h.remove(c)

		case d := <-h.deliver:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[d.userID]))
			for c := range h.clients[d.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, c := range targets {
				select {
				case c.send <- d.message:
				default:
					// Slow consumer.
					h.remove(c)
				}
			}
		}
	}
}

// join hands c to Run. It reports false once the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// leave hands c to Run for removal; after the hub stops there is nothing to remove.
func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) remove(c *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[c.userID]
	if !ok || !set[c] {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	log.Printf("[realtime] User %s disconnected", c.userID)
}

// Notify queues evt for every connection of userID. It never blocks.
func (h *Hub) Notify(userID uuid.UUID, evt Event) {
	if h == nil {
		return
	}
	if evt.Timestamp == "" {
		evt.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	b, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[realtime] Failed to encode %s event: %v", evt.Type, err)
		return
	}
	select {
	case h.deliver <- delivery{userID: userID, message: b}:
	default:
		log.Printf("[realtime] Dropped %s event for %s: buffer full", evt.Type, userID)
	}
}

// ConnectedUsers returns how many distinct users are connected.
func (h *Hub) ConnectedUsers() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
