package ws

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

// Hub maintains the set of connected clients and broadcasts risk alerts to
// them. Delivery is best-effort: a client whose send buffer is full is
// dropped.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes register/unregister/broadcast events until the process
// exits. Meant to be started once as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Infof("WebSocket client connected: %s", client.conn.RemoteAddr())

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Infof("WebSocket client disconnected: %s", client.conn.RemoteAddr())
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.logger.Warnf("WebSocket client %s not keeping up, dropping", client.conn.RemoteAddr())
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// NotifyAlert broadcasts a created alert to all connected clients.
func (h *Hub) NotifyAlert(alert models.Alert) {
	payload, err := json.Marshal(map[string]interface{}{"type": "alert", "payload": alert})
	if err != nil {
		h.logger.Errorf("Failed to marshal alert for broadcast: %v", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("WebSocket broadcast buffer full, dropping alert")
	}
}
