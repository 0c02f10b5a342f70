package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mawuli2121/Priya-Project/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "analysis_stream_events"

// Frame is the wire format pushed to browsers. analysis_text frames carry
// the complete text-so-far, never a bare delta, so a late-attaching tab
// needs no backfill.
type Frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	// Registered clients map: SessionID -> List of Clients (multi-tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance delivery
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendText pushes the accumulated analysis text to every tab of a session.
func (h *Hub) SendText(sessionID uuid.UUID, fullText string) {
	h.send(sessionID, "analysis_text", map[string]interface{}{"text": fullText})
}

// SendDone signals terminal success and names the downloadable report.
func (h *Hub) SendDone(sessionID uuid.UUID, reportName string) {
	h.send(sessionID, "analysis_done", map[string]interface{}{"report_name": reportName})
}

// SendError signals a terminal failure with a user-facing message.
func (h *Hub) SendError(sessionID uuid.UUID, message string) {
	h.send(sessionID, "analysis_error", map[string]interface{}{"message": message})
}

func (h *Hub) send(sessionID uuid.UUID, frameType string, data interface{}) {
	payload, err := json.Marshal(Frame{Type: frameType, Data: data})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal frame", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(sessionID, payload)

	// Publish to Redis for other instances
	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"target_session_id": sessionID.String(),
			"message":           string(payload),
		})
		h.rdb.Publish(context.Background(), clusterChannel, envelope)
	}
}

func (h *Hub) deliverLocal(sessionID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[sessionID] {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer, drop the connection rather than block the run
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	sub := h.rdb.Subscribe(context.Background(), clusterChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var envelope struct {
			TargetSessionID string `json:"target_session_id"`
			Message         string `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Bad cluster payload", map[string]interface{}{"error": err.Error()})
			continue
		}
		sid, err := uuid.Parse(envelope.TargetSessionID)
		if err != nil {
			continue
		}
		h.deliverLocal(sid, []byte(envelope.Message))
	}
}
