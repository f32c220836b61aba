// Package realtime fans product mutation events out to connected websocket
// clients. Delivery is fire-and-forget: no acknowledgment, no backlog, no
// replay after reconnect.
package realtime

import (
	"encoding/json"

	"autoparts-service/prometheus"

	"go.uber.org/zap"
)

// Event names pushed over the real-time channel.
const (
	EventProductCreated = "productCreated"
	EventProductUpdated = "productUpdated"
	EventProductDeleted = "productDeleted"
)

// Envelope is the wire format of a broadcast event.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub owns the set of connected clients and broadcasts events to all of
// them. All client-set mutations happen on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	log        *zap.Logger
}

// NewHub creates a hub. Run must be started on its own goroutine before
// clients connect.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		log:        log,
	}
}

// Run processes register/unregister/broadcast traffic until the process
// exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			prometheus.RealtimeClientsGauge.Inc()
			h.log.Info("Realtime client connected", zap.Int("clients", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				prometheus.RealtimeClientsGauge.Dec()
				h.log.Info("Realtime client disconnected", zap.Int("clients", len(h.clients)))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client with a full buffer is dropped rather
					// than blocking the fan-out.
					delete(h.clients, client)
					close(client.send)
					prometheus.RealtimeClientsGauge.Dec()
				}
			}
		}
	}
}

// Publish broadcasts a named event with a JSON payload to every connected
// client. It never blocks the caller and reports no delivery outcome.
func (h *Hub) Publish(event string, payload interface{}) {
	message, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.log.Error("Failed to encode realtime event",
			zap.String("event", event),
			zap.Error(err))
		return
	}

	prometheus.RecordRealtimeEvent(event)
	select {
	case h.broadcast <- message:
	default:
		h.log.Warn("Realtime broadcast buffer full, dropping event",
			zap.String("event", event))
	}
}
