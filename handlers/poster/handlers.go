package poster

import (
	"context"
	"database/sql"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/auth"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/response"
	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
)

const maxTags = 10

// CreatePosterHandler publishes a poster for the caller
// Used by: POST /api/posters
func CreatePosterHandler(db *sql.DB, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}

		var req CreatePosterRequest
		if err := response.Decode(r, &req); err != nil {
			response.Error(w, r, logger, err)
			return
		}
		if !validImageURL(req.ImageURL) {
			response.Error(w, r, logger, appErrors.ErrInvalidPoster)
			return
		}

		p := Poster{
			UserID:   userID,
			ImageURL: strings.TrimSpace(req.ImageURL),
			Caption:  strings.TrimSpace(req.Caption),
			Tags:     normalizeTags(req.Tags),
		}
		err = db.QueryRowContext(r.Context(), InsertPosterQuery, p.UserID, p.ImageURL, p.Caption, pq.Array(p.Tags)).
			Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(errors.Wrap(err, "poster.Create.Insert")))
			return
		}

		logger.Info("poster published", zap.Int("poster_id", p.ID), zap.Int("user_id", userID))
		response.JSON(w, http.StatusCreated, p)
	}
}

// ListPostersHandler lists the gallery, optionally for one author (?userId=)
// Used by: GET /api/posters
func ListPostersHandler(db *sql.DB, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}

		author := 0
		if v := r.URL.Query().Get("userId"); v != "" {
			author, err = strconv.Atoi(v)
			if err != nil || author <= 0 {
				response.Error(w, r, logger, appErrors.InvalidArg("userId invalide"))
				return
			}
		}

		rows, err := db.QueryContext(r.Context(), ListPostersQuery, userID, author)
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(errors.Wrap(err, "poster.List.Query")))
			return
		}
		defer rows.Close()

		posters := []Poster{}
		for rows.Next() {
			var p Poster
			if err := rows.Scan(&p.ID, &p.UserID, &p.ImageURL, &p.Caption, pq.Array(&p.Tags), &p.CreatedAt,
				&p.Likes, &p.Liked, &p.Comments); err != nil {
				response.Error(w, r, logger, appErrors.Internal(errors.Wrap(err, "poster.List.Scan")))
				return
			}
			posters = append(posters, p)
		}
		if err := rows.Err(); err != nil {
			response.Error(w, r, logger, appErrors.Internal(errors.Wrap(err, "poster.List.Rows")))
			return
		}
		response.JSON(w, http.StatusOK, posters)
	}
}

// DeletePosterHandler removes one of the caller's posters
// Used by: DELETE /api/posters/{id}
func DeletePosterHandler(db *sql.DB, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, posterID, ok := callerAndPoster(w, r, logger)
		if !ok {
			return
		}

		owner, err := posterOwner(r.Context(), db, posterID)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		if owner != userID {
			response.Error(w, r, logger, appErrors.ErrNotPosterOwner)
			return
		}

		if _, err := db.ExecContext(r.Context(), DeletePosterQuery, posterID); err != nil {
			response.Error(w, r, logger, appErrors.Internal(errors.Wrap(err, "poster.Delete.Exec")))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToggleLikeHandler likes the poster, or removes the caller's like if there is one
// Used by: POST /api/posters/{id}/like
func ToggleLikeHandler(db *sql.DB, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, posterID, ok := callerAndPoster(w, r, logger)
		if !ok {
			return
		}

		resp, err := toggleLike(r.Context(), db, posterID, userID)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, resp)
	}
}

func toggleLike(ctx context.Context, db *sql.DB, posterID, userID int) (*LikeResponse, error) {
	if _, err := posterOwner(ctx, db, posterID); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, appErrors.Internal(errors.Wrap(err, "poster.ToggleLike.Begin"))
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, DeleteLikeQuery, posterID, userID)
	if err != nil {
		return nil, appErrors.Internal(errors.Wrap(err, "poster.ToggleLike.Delete"))
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return nil, appErrors.Internal(errors.Wrap(err, "poster.ToggleLike.RowsAffected"))
	}

	resp := &LikeResponse{Liked: removed == 0}
	if resp.Liked {
		if _, err := tx.ExecContext(ctx, InsertLikeQuery, posterID, userID); err != nil {
			return nil, appErrors.Internal(errors.Wrap(err, "poster.ToggleLike.Insert"))
		}
	}
	if err := tx.QueryRowContext(ctx, CountLikesQuery, posterID).Scan(&resp.Likes); err != nil {
		return nil, appErrors.Internal(errors.Wrap(err, "poster.ToggleLike.Count"))
	}
	if err := tx.Commit(); err != nil {
		return nil, appErrors.Internal(errors.Wrap(err, "poster.ToggleLike.Commit"))
	}
	return resp, nil
}

// Used by: GET /api/posters/{id}/comments
func ListCommentsHandler(db *sql.DB, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, posterID, ok := callerAndPoster(w, r, logger)
		if !ok {
			return
		}
		if _, err := posterOwner(r.Context(), db, posterID); err != nil {
			response.Error(w, r, logger, err)
			return
		}

		rows, err := db.QueryContext(r.Context(), ListCommentsQuery, posterID)
		if err != nil {
			response.Error(w, r, logger, appErrors.Internal(errors.Wrap(err, "poster.ListComments.Query")))
			return
		}
		defer rows.Close()

		comments := []Comment{}
		for rows.Next() {
			var c Comment
			if err := rows.Scan(&c.ID, &c.PosterID, &c.UserID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
				response.Error(w, r, logger, appErrors.Internal(errors.Wrap(err, "poster.ListComments.Scan")))
				return
			}
			comments = append(comments, c)
		}
		if err := rows.Err(); err != nil {
			response.Error(w, r, logger, appErrors.Internal(errors.Wrap(err, "poster.ListComments.Rows")))
			return
		}
		response.JSON(w, http.StatusOK, comments)
	}
}

// Used by: POST /api/posters/{id}/comments
func CreateCommentHandler(db *sql.DB, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, posterID, ok := callerAndPoster(w, r, logger)
		if !ok {
			return
		}

		var req CreateCommentRequest
		if err := response.Decode(r, &req); err != nil {
			response.Error(w, r, logger, err)
			return
		}
		content := strings.TrimSpace(req.Content)
		if content == "" {
			response.Error(w, r, logger, appErrors.ErrEmptyComment)
			return
		}

		if _, err := posterOwner(r.Context(), db, posterID); err != nil {
			response.Error(w, r, logger, err)
			return
		}

		c := Comment{PosterID: posterID, UserID: userID, Content: content}
		if err := db.QueryRowContext(r.Context(), InsertCommentQuery, posterID, userID, content).
			Scan(&c.ID, &c.Author, &c.CreatedAt); err != nil {
			response.Error(w, r, logger, appErrors.Internal(errors.Wrap(err, "poster.CreateComment.Insert")))
			return
		}
		response.JSON(w, http.StatusCreated, c)
	}
}

func posterOwner(ctx context.Context, db *sql.DB, posterID int) (int, error) {
	var owner int
	err := db.QueryRowContext(ctx, SelectPosterOwnerQuery, posterID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, appErrors.ErrPosterNotFound
	}
	if err != nil {
		return 0, appErrors.Internal(errors.Wrap(err, "poster.Owner.Scan"))
	}
	return owner, nil
}

func callerAndPoster(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (int, int, bool) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return 0, 0, false
	}
	posterID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || posterID <= 0 {
		response.Error(w, r, logger, appErrors.InvalidArg("Identifiant d'affiche invalide"))
		return 0, 0, false
	}
	return userID, posterID, true
}

func validImageURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}

// normalizeTags lowercases, trims and dedupes tags, keeping the first maxTags
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := []string{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#")))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxTags {
			break
		}
	}
	return out
}
