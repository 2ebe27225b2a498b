package user

import (
	"database/sql"
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

// GetMyBasicInfoHandler returns the caller's account and profile summary
// Used by: GET /api/me
func GetMyBasicInfoHandler(db *sql.DB, store *profiles.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}

		var me MeResponse
		err = db.QueryRowContext(r.Context(), SelectAccountQuery, userID).Scan(&me.ID, &me.Email, &me.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			// Valid token for a deleted account.
			response.Error(w, r, logger, appErrors.ErrUnauthenticated)
			return
		}
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}

		p, err := store.GetProfileByUserID(r.Context(), userID)
		switch {
		case errors.Is(err, appErrors.ErrProfileNotFound):
		case err != nil:
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		default:
			me.Role = p.Kind
			me.Profile = p
		}

		response.JSON(w, http.StatusOK, me)
	}
}

// GetUserHandler returns the public summary of any user
// Used by: GET /api/users/{id}
func GetUserHandler(db *sql.DB, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil || userID <= 0 {
			response.Error(w, r, logger, appErrors.InvalidArg("Identifiant invalide"))
			return
		}

		var u BasicUserResponse
		var role string
		err = db.QueryRowContext(r.Context(), SelectBasicUserQuery, userID).
			Scan(&u.ID, &role, &u.Name, &u.City, &u.ProfilePictureURL)
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(w, r, logger, appErrors.ErrUserNotFound)
			return
		}
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(err))
			return
		}
		u.Role = profiles.Kind(role)

		response.JSON(w, http.StatusOK, u)
	}
}
