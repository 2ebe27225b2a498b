package profile

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/auth"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/response"
	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

type Handler struct {
	store  *profiles.Store
	logger *zap.Logger
}

func NewHandler(store *profiles.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// ChooseRole creates the caller's artist or theater profile
// Used by: POST /api/me/role
func (h *Handler) ChooseRole(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	var req RoleRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	p, err := h.store.CreateProfile(r.Context(), userID, profiles.Kind(req.Role), req.Name)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	h.logger.Info("profile created", zap.Int("user_id", userID), zap.String("kind", string(p.Kind)))
	response.JSON(w, http.StatusCreated, p)
}

// GetMyProfile returns the caller's full profile
// Used by: GET /api/me/profile
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	resp, err := h.fullProfile(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

func (h *Handler) fullProfile(ctx context.Context, userID int) (*ProfileResponse, error) {
	summary, err := h.store.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if summary.Kind == profiles.KindArtist {
		a, err := h.store.GetArtist(ctx, summary.ID)
		if err != nil {
			return nil, err
		}
		return &ProfileResponse{Kind: profiles.KindArtist, Profile: a}, nil
	}
	t, err := h.store.GetTheater(ctx, summary.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{Kind: profiles.KindTheater, Profile: t}, nil
}

// UpdateMyProfile applies a partial update to the caller's profile
// Used by: PUT /api/me/profile
func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	summary, err := h.store.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	var resp ProfileResponse
	switch summary.Kind {
	case profiles.KindArtist:
		var update profiles.ArtistUpdate
		if err := response.Decode(r, &update); err != nil {
			response.Error(w, r, h.logger, err)
			return
		}
		a, err := h.store.UpdateArtist(r.Context(), userID, update)
		if err != nil {
			response.Error(w, r, h.logger, err)
			return
		}
		resp = ProfileResponse{Kind: profiles.KindArtist, Profile: a}
	default:
		var update profiles.TheaterUpdate
		if err := response.Decode(r, &update); err != nil {
			response.Error(w, r, h.logger, err)
			return
		}
		t, err := h.store.UpdateTheater(r.Context(), userID, update)
		if err != nil {
			response.Error(w, r, h.logger, err)
			return
		}
		resp = ProfileResponse{Kind: profiles.KindTheater, Profile: t}
	}

	response.JSON(w, http.StatusOK, resp)
}

// GetArtist returns an artist's public profile
// Used by: GET /api/artists/{id}
func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	a, err := h.store.GetArtist(r.Context(), id)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, a)
}

// GetTheater returns a theater's public profile
// Used by: GET /api/theaters/{id}
func (h *Handler) GetTheater(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	t, err := h.store.GetTheater(r.Context(), id)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, t)
}

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.store.ListArtists(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		response.Error(w, r, h.logger, appErrors.Internal(err))
		return
	}
	response.JSON(w, http.StatusOK, artists)
}

func (h *Handler) ListTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.store.ListTheaters(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		response.Error(w, r, h.logger, appErrors.Internal(err))
		return
	}
	response.JSON(w, http.StatusOK, theaters)
}

// Discover suggests profiles of the other kind the caller is not yet connected with
// Used by: GET /api/discover
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	me, err := h.store.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	suggestions, err := h.store.Discover(r.Context(), me)
	if err != nil {
		response.Error(w, r, h.logger, appErrors.Internal(err))
		return
	}
	response.JSON(w, http.StatusOK, suggestions)
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, appErrors.InvalidArg("Identifiant invalide")
	}
	return id, nil
}
