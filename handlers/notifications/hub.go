package notifications

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub keeps the open notification sockets of every connected user.
type Hub struct {
	mu     sync.Mutex
	conns  map[int]map[*websocket.Conn]bool
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{conns: make(map[int]map[*websocket.Conn]bool), logger: logger}
}

func (h *Hub) add(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]bool)
	}
	h.conns[userID][conn] = true
}

func (h *Hub) remove(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[userID], conn)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// Push sends a frame to every socket the user has open. Sockets that fail are dropped.
func (h *Hub) Push(userID int, notificationType, content string) {
	data, err := json.Marshal(frame{Type: notificationType, Content: content})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("dropping notification socket", zap.Int("user_id", userID), zap.Error(err))
			conn.Close()
			delete(h.conns[userID], conn)
		}
	}
}

// Connected reports how many sockets the user has open
func (h *Hub) Connected(userID int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[userID])
}
