package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains the set of active clients keyed by user ID. A user may be
// connected from several devices at once; every connection gets the feed.
type Hub struct {
	// Registered clients map: UserID -> connections
	clients map[string]map[*Client]bool

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			conns, ok := h.clients[client.UserID]
			if !ok {
				conns = make(map[*Client]bool)
				h.clients[client.UserID] = conns
			}
			conns[client] = true
			h.mu.Unlock()
			log.Printf("🔔 Notification feed connected: user %s", client.UserID)

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.UserID]; ok {
				if conns[client] {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.UserID)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToUser delivers a message to every live connection of the user.
// Returns false when the user has no reachable connection; callers treat
// delivery as best-effort either way.
func (h *Hub) SendToUser(userID string, message interface{}) bool {
	h.mu.RLock()
	conns := h.clients[userID]
	h.mu.RUnlock()

	if len(conns) == 0 {
		return false
	}

	jsonMsg, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return false
	}

	delivered := false
	for client := range conns {
		select {
		case client.send <- jsonMsg:
			delivered = true
		default:
			// Buffer full or client dead
		}
	}
	return delivered
}
