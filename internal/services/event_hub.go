package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event types pushed to a user's connected clients.
const (
	EventSessionChanged = "session_changed"
	EventProfileUpdated = "profile_updated"
	EventGearChanged    = "gear_changed"
	EventSessionLogged  = "session_logged"
)

// Event is a change notification delivered over WebSocket. Auth transitions
// produce session_changed events; entity mutations produce the rest.
type Event struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// EventHub fans events out to every open connection a user has. A user may
// be connected from several tabs; each gets every event.
type EventHub struct {
	mu          sync.RWMutex
	connections map[string]map[*websocket.Conn]struct{}
}

// NewEventHub creates a new event hub
func NewEventHub() *EventHub {
	return &EventHub{
		connections: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// Register adds a connection for a user
func (h *EventHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.connections[userID] == nil {
		h.connections[userID] = make(map[*websocket.Conn]struct{})
	}
	h.connections[userID][conn] = struct{}{}

	log.Info().Str("user_id", userID).Msg("Event stream connected")
}

// Unregister removes a connection for a user
func (h *EventHub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.connections[userID]; ok {
		if _, ok := conns[conn]; ok {
			conn.Close()
			delete(conns, conn)
			if len(conns) == 0 {
				delete(h.connections, userID)
			}
			log.Info().Str("user_id", userID).Msg("Event stream disconnected")
		}
	}
}

// Publish sends an event to all of a user's connections. A user with no
// open connections is a no-op; a failed write drops that connection.
func (h *EventHub) Publish(userID string, eventType string, data interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to marshal event")
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections[userID]))
	for conn := range h.connections[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Dropping broken event stream connection")
			h.Unregister(userID, conn)
		}
	}
}

// Connected reports whether the user has at least one open connection.
func (h *EventHub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[userID]) > 0
}
