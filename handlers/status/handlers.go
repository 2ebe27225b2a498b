package status

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/auth"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/response"
	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

// Status tells the client whether a user still has to pick a role
type Status struct {
	UserID     int           `json:"user_id"`
	Role       profiles.Kind `json:"role,omitempty"`
	ProfileID  int           `json:"profile_id,omitempty"`
	HasProfile bool          `json:"has_profile"`
}

// ProfileFinder resolves the profile owned by a user
type ProfileFinder interface {
	GetProfileByUserID(ctx context.Context, userID int) (*profiles.Profile, error)
	UserExists(ctx context.Context, userID int) (bool, error)
}

// GetMyStatusHandler returns the status of the authenticated user
func GetMyStatusHandler(finder ProfileFinder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		writeStatus(w, r, finder, logger, userID)
	}
}

// GetStatusHandler returns the status of the user named in the path
func GetStatusHandler(finder ProfileFinder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil || userID <= 0 {
			response.Error(w, r, logger, appErrors.InvalidArg("Identifiant invalide"))
			return
		}
		writeStatus(w, r, finder, logger, userID)
	}
}

func writeStatus(w http.ResponseWriter, r *http.Request, finder ProfileFinder, logger *zap.Logger, userID int) {
	status, err := GetUserStatus(r.Context(), finder, userID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.JSON(w, http.StatusOK, status)
}

// GetUserStatus builds the status of a user. A user without a profile is not an
// error; an unknown user is ErrUserNotFound.
func GetUserStatus(ctx context.Context, finder ProfileFinder, userID int) (*Status, error) {
	p, err := finder.GetProfileByUserID(ctx, userID)
	if errors.Is(err, appErrors.ErrProfileNotFound) {
		exists, err := finder.UserExists(ctx, userID)
		if err != nil {
			return nil, appErrors.Internal(err)
		}
		if !exists {
			return nil, appErrors.ErrUserNotFound
		}
		return &Status{UserID: userID}, nil
	}
	if err != nil {
		return nil, internalIfUnknown(err)
	}
	return &Status{UserID: userID, Role: p.Kind, ProfileID: p.ID, HasProfile: true}, nil
}

func internalIfUnknown(err error) error {
	if _, ok := appErrors.As(err); ok {
		return err
	}
	return appErrors.Internal(err)
}
