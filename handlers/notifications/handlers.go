package notifications

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/auth"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/response"
	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/favorites"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ConnectionLister is the part of the connection engine the dashboard reads
type ConnectionLister interface {
	ListConnections(ctx context.Context, userID int) (*favorites.Connections, error)
}

// UnreadCounter counts the messages a user has not read yet
type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID int) (int, error)
}

func GetNotificationsHandler(n *Notifier, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}

		list, err := n.List(r.Context(), userID)
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}
		response.JSON(w, http.StatusOK, list)
	}
}

func MarkNotificationsAsReadHandler(n *Notifier, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}

		if err := n.MarkRead(r.Context(), userID); err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"message": "Notifications marquées comme lues"})
	}
}

// DashboardHandler returns the counters polled by the home screen.
// A user without a profile yet has no connections, only messages and notifications.
func DashboardHandler(n *Notifier, connections ConnectionLister, messages UnreadCounter, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		ctx := r.Context()

		var resp DashboardResponse
		if resp.UnreadMessages, err = messages.UnreadCount(ctx, userID); err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}
		if resp.UnreadNotifications, err = n.UnreadCount(ctx, userID); err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}

		conns, err := connections.ListConnections(ctx, userID)
		switch {
		case errors.Is(err, appErrors.ErrNoProfile):
		case err != nil:
			response.Error(w, r, logger, err)
			return
		default:
			resp.PendingRequests = len(conns.PendingIncoming)
			resp.Friends = len(conns.Accepted)
		}

		response.JSON(w, http.StatusOK, resp)
	}
}

// HandleNotificationWebSocket keeps a socket open for live notifications.
// Browsers cannot set headers on websocket requests, so the token comes from the query.
func HandleNotificationWebSocket(hub *Hub, tokens *auth.Tokens, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := tokens.UserIDFromRequest(r)
		if err != nil {
			response.Error(w, r, logger, appErrors.ErrUnauthenticated)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Debug("notification upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		if err := conn.WriteJSON(frame{Type: "connected"}); err != nil {
			return
		}

		hub.add(userID, conn)
		defer hub.remove(userID, conn)

		// Reads only detect the close; clients never send anything meaningful.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug("notification socket closed", zap.Int("user_id", userID), zap.Error(err))
				}
				return
			}
		}
	}
}
