// internal/websocket/handlers.go
// WebSocket connection upgrade handler and push message type constants.

package websocket

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tournament-planner/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, implement proper origin checking
		return true
	},
}

// HandleConnection upgrades an HTTP request to a WebSocket connection and
// registers the resulting client with the hub.
func HandleConnection(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID models.ID
		if raw, exists := c.Get("user_id"); exists {
			if id, ok := raw.(models.ID); ok {
				userID = id
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("failed to upgrade connection: %v", err)
			return
		}

		client := &Client{
			hub:    hub,
			conn:   conn,
			send:   make(chan []byte, 256),
			userID: userID,
			saves:  make([]models.ID, 0),
		}

		hub.register <- client

		welcomeMsg := Message{
			Type: "welcome",
			Data: map[string]interface{}{
				"message": "connected",
				"user_id": userID,
			},
		}
		if data, err := json.Marshal(welcomeMsg); err == nil {
			client.send <- data
		}

		go client.writePump()
		go client.readPump()
	}
}

// Message types pushed over a save's WebSocket stream.
const (
	// Phase/time progression
	MessagePhaseInitialized = "phase_initialized"
	MessagePhaseCompleted   = "phase_completed"
	MessageSeasonStarted    = "season_started"

	// Simulation
	MessageMatchSimulated  = "match_simulated"
	MessageBracketAdvanced = "bracket_advanced"

	// Draft and transfers
	MessageDraftPickMade     = "draft_pick_made"
	MessageAuctionRoundDone  = "auction_round_done"
	MessageTransferRoundDone = "transfer_round_done"

	// Ladder
	MessageLadderRoundSimulated = "ladder_round_simulated"
	MessageLadderCompleted      = "ladder_completed"

	// Honors and finance
	MessageAnnualAwardsReady = "annual_awards_ready"
	MessageSalariesPaid      = "salaries_paid"

	// Generic
	MessageNotification = "notification"
	MessageAlert        = "alert"
)
