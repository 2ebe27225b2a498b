package chat

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the sockets open on each conversation.
type Hub struct {
	mu    sync.Mutex
	conns map[int]map[*websocket.Conn]bool // conversation id -> sockets
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int]map[*websocket.Conn]bool)}
}

func (h *Hub) join(conversationID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conversationID] == nil {
		h.conns[conversationID] = make(map[*websocket.Conn]bool)
	}
	h.conns[conversationID][conn] = true
}

func (h *Hub) leave(conversationID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[conversationID], conn)
	if len(h.conns[conversationID]) == 0 {
		delete(h.conns, conversationID)
	}
}

// Broadcast writes v to every socket on the conversation and drops the ones that fail.
func (h *Hub) Broadcast(conversationID int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[conversationID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.conns[conversationID], conn)
		}
	}
}

func (h *Hub) Listeners(conversationID int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[conversationID])
}
