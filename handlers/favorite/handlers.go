package favorite

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/auth"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/notifications"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/response"
	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/favorites"
)

// Notifier delivers a notification to a user
type Notifier interface {
	Notify(ctx context.Context, userID int, notificationType, content string)
}

// Handler exposes the connection request engine over HTTP
type Handler struct {
	svc      *favorites.Service
	notifier Notifier
	logger   *zap.Logger
}

func NewHandler(svc *favorites.Service, notifier Notifier, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, notifier: notifier, logger: logger}
}

// SendRequest sends a connection request to the artist or theater named in the body
// Used by: POST /api/favorite
func (h *Handler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	var target favorites.Target
	if err := response.Decode(r, &target); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	c, err := h.svc.SendRequest(r.Context(), userID, target)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	h.notifier.Notify(r.Context(), c.Counterpart.Profile.UserID, notifications.TypeFriendRequest, strconv.Itoa(c.ID))
	response.JSON(w, http.StatusCreated, c)
}

// Accept answers a pending request addressed to the caller
// Used by: POST /api/favorite/accept
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, favorites.DecisionAccept)
}

// Used by: POST /api/favorite/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, favorites.DecisionReject)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, decision favorites.Decision) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	var req RespondRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	if req.FriendshipID <= 0 {
		response.Error(w, r, h.logger, appErrors.InvalidArg("friendshipId requis"))
		return
	}
	// The route decides; an action in the body must agree with it.
	if action := strings.ToLower(strings.TrimSpace(req.Action)); action != "" && favorites.Decision(action) != decision {
		response.Error(w, r, h.logger, appErrors.ErrInvalidDecision)
		return
	}

	c, err := h.svc.RespondToRequest(r.Context(), userID, req.FriendshipID, decision)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	if c.Status == favorites.StatusAccepted {
		h.notifier.Notify(r.Context(), c.Counterpart.Profile.UserID, notifications.TypeFriendAccepted, strconv.Itoa(c.ID))
	}
	response.JSON(w, http.StatusOK, c)
}

// Remove deletes the accepted connection with the artist or theater named in the body
// Used by: DELETE /api/favorite
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	var target favorites.Target
	if err := response.Decode(r, &target); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	n, err := h.svc.RemoveConnection(r.Context(), userID, target)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, RemoveResponse{Removed: n})
}

// List returns the caller's accepted connections
// Used by: GET /api/favorite
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(c *favorites.Connections) []favorites.Connection { return c.Accepted })
}

// Requests returns the pending requests addressed to the caller
// Used by: GET /api/favorite/requests
func (h *Handler) Requests(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(c *favorites.Connections) []favorites.Connection { return c.PendingIncoming })
}

// All returns every connection of the caller grouped by state
// Used by: GET /api/favorite/all
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	conns, err := h.svc.ListConnections(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, conns)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, pick func(*favorites.Connections) []favorites.Connection) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	conns, err := h.svc.ListConnections(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, FavoriteList{Kind: conns.CounterpartKind, Items: pick(conns)})
}
