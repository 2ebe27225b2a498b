package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/auth"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/notifications"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/response"
	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/messaging"
)

const previewLength = 80

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Notifier delivers a notification to a user
type Notifier interface {
	Notify(ctx context.Context, userID int, notificationType, content string)
}

// ConnectionChecker tells whether two users' profiles are connected
type ConnectionChecker interface {
	AreConnected(ctx context.Context, userA, userB int) (bool, error)
}

type Handler struct {
	gateway     *messaging.Gateway
	hub         *Hub
	notifier    Notifier
	tokens      *auth.Tokens
	connections ConnectionChecker
	logger      *zap.Logger
}

func NewHandler(gateway *messaging.Gateway, hub *Hub, notifier Notifier, tokens *auth.Tokens, logger *zap.Logger) *Handler {
	return &Handler{gateway: gateway, hub: hub, notifier: notifier, tokens: tokens, logger: logger}
}

// RequireConnection restricts new conversations to users with an accepted connection
func (h *Handler) RequireConnection(checker ConnectionChecker) {
	h.connections = checker
}

// CreateConversation returns the caller's conversation with another user, creating it if needed
// Used by: POST /api/conversations
func (h *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	var req CreateConversationRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	if req.UserID <= 0 {
		response.Error(w, r, h.logger, appErrors.InvalidArg("userId requis"))
		return
	}

	if h.connections != nil && req.UserID != userID {
		ok, err := h.connections.AreConnected(r.Context(), userID, req.UserID)
		if err != nil {
			response.Error(w, r, h.logger, err)
			return
		}
		if !ok {
			response.Error(w, r, h.logger, appErrors.ErrNotConnected)
			return
		}
	}

	c, err := h.gateway.GetOrCreateConversation(r.Context(), userID, req.UserID)
	if err != nil {
		response.Error(w, r, h.logger, internalIfUnknown(err))
		return
	}
	response.JSON(w, http.StatusOK, c)
}

// ListConversations returns the caller's inbox
// Used by: GET /api/conversations
func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	previews, err := h.gateway.ListConversations(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.logger, appErrors.Internal(err))
		return
	}
	response.JSON(w, http.StatusOK, previews)
}

// Used by: GET /api/conversations/{id}/messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, conversationID, ok := h.callerAndConversation(w, r)
	if !ok {
		return
	}

	msgs, err := h.gateway.ListMessages(r.Context(), conversationID, userID)
	if err != nil {
		response.Error(w, r, h.logger, internalIfUnknown(err))
		return
	}
	response.JSON(w, http.StatusOK, msgs)
}

// SendMessage appends a message and pushes it to the sockets open on the conversation
// Used by: POST /api/conversations/{id}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, conversationID, ok := h.callerAndConversation(w, r)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	m, err := h.send(r.Context(), conversationID, userID, req.Content)
	if err != nil {
		response.Error(w, r, h.logger, internalIfUnknown(err))
		return
	}
	response.JSON(w, http.StatusCreated, m)
}

// Used by: POST /api/conversations/{id}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, conversationID, ok := h.callerAndConversation(w, r)
	if !ok {
		return
	}

	n, err := h.gateway.MarkRead(r.Context(), conversationID, userID)
	if err != nil {
		response.Error(w, r, h.logger, internalIfUnknown(err))
		return
	}
	response.JSON(w, http.StatusOK, map[string]int64{"updated": n})
}

// HandleWebSocket joins the caller to a conversation. Every message frame received is
// stored and broadcast; typing frames are only broadcast.
// Used by: GET /ws/conversations/{id}?token=
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, err := h.tokens.UserIDFromRequest(r)
	if err != nil {
		response.Error(w, r, h.logger, appErrors.ErrUnauthenticated)
		return
	}
	conversationID, err := conversationIDFrom(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	if _, err := h.gateway.GetConversation(r.Context(), conversationID, userID); err != nil {
		response.Error(w, r, h.logger, internalIfUnknown(err))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("chat upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.hub.join(conversationID, conn)
	defer h.hub.leave(conversationID, conn)

	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var in inbound
		if err := json.Unmarshal(data, &in); err != nil {
			continue
		}
		if in.Typing != nil {
			h.hub.Broadcast(conversationID, TypingMessage{ConversationID: conversationID, UserID: userID, Typing: *in.Typing})
			continue
		}
		if _, err := h.send(ctx, conversationID, userID, in.Content); err != nil {
			h.logger.Warn("dropping chat frame",
				zap.Int("conversation_id", conversationID),
				zap.Int("user_id", userID),
				zap.Error(err))
		}
	}
}

func (h *Handler) send(ctx context.Context, conversationID, senderID int, content string) (*messaging.Message, error) {
	m, err := h.gateway.AppendMessage(ctx, conversationID, senderID, content)
	if err != nil {
		return nil, err
	}
	h.hub.Broadcast(conversationID, m)
	h.notifier.Notify(ctx, m.RecipientID, notifications.TypeNewMessage, preview(m.Content))
	return m, nil
}

func (h *Handler) callerAndConversation(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return 0, 0, false
	}
	conversationID, err := conversationIDFrom(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return 0, 0, false
	}
	return userID, conversationID, true
}

func conversationIDFrom(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, appErrors.InvalidArg("Identifiant de conversation invalide")
	}
	return id, nil
}

// internalIfUnknown keeps domain errors and turns storage failures into Internal
func internalIfUnknown(err error) error {
	if _, ok := appErrors.As(err); ok {
		return err
	}
	return appErrors.Internal(err)
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewLength {
		return s
	}
	return string([]rune(s)[:previewLength]) + "…"
}
