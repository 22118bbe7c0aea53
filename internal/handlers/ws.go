package handlers

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/timeline-dev/timelines/internal/logging"
	"github.com/timeline-dev/timelines/internal/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Hub tracks websocket viewers per timeline and tells them to reload when the
// timeline changes.
type Hub struct {
	mu             sync.RWMutex
	clients        map[uint]map[*client]bool
	allowedOrigins []string
	log            logging.Logger
}

func NewHub(allowedOrigins []string, log logging.Logger) *Hub {
	return &Hub{
		clients:        make(map[uint]map[*client]bool),
		allowedOrigins: allowedOrigins,
		log:            log,
	}
}

// client serialises writes; gorilla connections allow one writer at a time.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cl *client) writeJSON(v any) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if err := cl.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return cl.conn.WriteJSON(v)
}

type hubMessage struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	TimelineID uint   `json:"timeline_id"`
}

func (hub *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	if origin == "" {
		return true
	}

	if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
		return true
	}

	for _, allowed := range hub.allowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}

func (hub *Hub) add(timelineID uint, conn *client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.clients[timelineID] == nil {
		hub.clients[timelineID] = make(map[*client]bool)
	}
	hub.clients[timelineID][conn] = true
}

func (hub *Hub) remove(timelineID uint, conn *client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if clients, exists := hub.clients[timelineID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(hub.clients, timelineID)
		}
	}
}

// Viewers returns how many sockets watch the timeline.
func (hub *Hub) Viewers(timelineID uint) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	return len(hub.clients[timelineID])
}

func (hub *Hub) Broadcast(timelineID uint) {
	if hub == nil {
		return
	}

	hub.mu.RLock()
	clients := make([]*client, 0, len(hub.clients[timelineID]))
	for conn := range hub.clients[timelineID] {
		clients = append(clients, conn)
	}
	hub.mu.RUnlock()

	for _, conn := range clients {
		err := conn.writeJSON(hubMessage{
			Type:       "refresh",
			Message:    "Timeline updated",
			TimelineID: timelineID,
		})

		if err != nil {
			hub.log.Warn(context.Background(), "broadcast refresh failed", "timeline_id", timelineID, "error", err)
			hub.remove(timelineID, conn)
			conn.conn.Close()
		}
	}
}

// TimelineSocket upgrades the request once the caller is known to own the timeline.
func (h *Handler) TimelineSocket(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	timelineID, ok := utils.ParamID(c, "id")
	if !ok {
		h.notFound(c, timelineNotFound)
		return
	}

	if _, err := h.Timelines.Get(c.Request.Context(), userID, timelineID); err != nil {
		h.fail(c, err, timelineNotFound)
		return
	}

	upgrader := websocket.Upgrader{CheckOrigin: h.Hub.checkOrigin}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warn(c.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}

	viewer := &client{conn: conn}

	conn.SetReadLimit(maxMessageSize)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.Hub.add(timelineID, viewer)

	defer func() {
		h.Hub.remove(timelineID, viewer)
		conn.Close()
	}()

	if err := viewer.writeJSON(hubMessage{Type: "connected", Message: "Watching timeline", TimelineID: timelineID}); err != nil {
		h.Log.Warn(c.Request.Context(), "send welcome message", "timeline_id", timelineID, "error", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				deadline := time.Now().Add(writeWait)
				if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Warn(c.Request.Context(), "websocket closed", "timeline_id", timelineID, "error", err)
			}
			break
		}
	}
}
