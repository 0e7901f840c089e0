// internal/websocket/hub.go
// WebSocket hub manages client connections and save-scoped broadcasting.

package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"tournament-planner/internal/models"
	"tournament-planner/internal/services"
)

// Hub maintains active websocket connections and broadcasts messages about
// save progress (match results, phase transitions, draft/transfer/ladder
// events) to every client watching that save.
type Hub struct {
	// Registered clients by save ID
	saves map[models.ID]map[*Client]bool

	// Registered clients by user ID
	users map[models.ID]*Client

	// Register client
	register chan *Client

	// Unregister client
	unregister chan *Client

	// Broadcast messages to a save's subscribers
	broadcast chan *Message

	// Services
	services *services.Container
	logger   *log.Logger

	// Mutex for concurrent access
	mu sync.RWMutex
}

// Message represents a WebSocket message pushed to clients.
type Message struct {
	Type   string      `json:"type"`
	SaveID models.ID   `json:"save_id,omitempty"`
	UserID models.ID   `json:"user_id,omitempty"`
	Data   interface{} `json:"data"`
}

// NewHub creates a new WebSocket hub.
func NewHub(services *services.Container, logger *log.Logger) *Hub {
	return &Hub{
		saves:      make(map[models.ID]map[*Client]bool),
		users:      make(map[models.ID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		services:   services,
		logger:     logger,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// registerClient adds a new client to the hub.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.userID != 0 {
		if existing, exists := h.users[client.userID]; exists {
			existing.close()
			h.removeClient(existing)
		}
		h.users[client.userID] = client
	}

	for _, saveID := range client.saves {
		if h.saves[saveID] == nil {
			h.saves[saveID] = make(map[*Client]bool)
		}
		h.saves[saveID][client] = true
	}

	h.logger.Printf("client registered: user=%d saves=%v", client.userID, client.saves)
}

// unregisterClient removes a client from the hub.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeClient(client)
	client.close()

	h.logger.Printf("client unregistered: user=%d", client.userID)
}

// removeClient removes a client from all registrations.
func (h *Hub) removeClient(client *Client) {
	if client.userID != 0 {
		delete(h.users, client.userID)
	}

	for _, saveID := range client.saves {
		if clients, exists := h.saves[saveID]; exists {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.saves, saveID)
			}
		}
	}
}

// broadcastMessage sends a message to every relevant client.
func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Printf("failed to marshal message: %v", err)
		return
	}

	if message.SaveID != 0 {
		if clients, exists := h.saves[message.SaveID]; exists {
			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.removeClient(client)
					client.close()
				}
			}
		}
	}

	if message.UserID != 0 {
		if client, exists := h.users[message.UserID]; exists {
			select {
			case client.send <- data:
			default:
				h.removeClient(client)
				client.close()
			}
		}
	}
}

// BroadcastSaveUpdate broadcasts an update to every client watching a save
// (match results, phase transitions, draft/transfer/ladder progress).
func (h *Hub) BroadcastSaveUpdate(saveID models.ID, updateType string, data interface{}) {
	h.broadcast <- &Message{Type: updateType, SaveID: saveID, Data: data}
}

// SendToUser sends a message to one specific user regardless of save
// subscription (e.g. auction outbid notifications).
func (h *Hub) SendToUser(userID models.ID, messageType string, data interface{}) {
	h.broadcast <- &Message{Type: messageType, UserID: userID, Data: data}
}

// SubscribeToSave subscribes a client to a save's update stream.
func (h *Hub) SubscribeToSave(client *Client, saveID models.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.saves = append(client.saves, saveID)

	if h.saves[saveID] == nil {
		h.saves[saveID] = make(map[*Client]bool)
	}
	h.saves[saveID][client] = true

	h.logger.Printf("client %d subscribed to save %d", client.userID, saveID)
}

// UnsubscribeFromSave unsubscribes a client from a save's update stream.
func (h *Hub) UnsubscribeFromSave(client *Client, saveID models.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, id := range client.saves {
		if id == saveID {
			client.saves = append(client.saves[:i], client.saves[i+1:]...)
			break
		}
	}

	if clients, exists := h.saves[saveID]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.saves, saveID)
		}
	}

	h.logger.Printf("client %d unsubscribed from save %d", client.userID, saveID)
}
