package poster

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/auth"
)

func newTestRouter(t *testing.T) (*mux.Router, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	logger := zap.NewNop()
	r := mux.NewRouter()
	r.HandleFunc("/api/posters", CreatePosterHandler(conn, logger)).Methods(http.MethodPost)
	r.HandleFunc("/api/posters", ListPostersHandler(conn, logger)).Methods(http.MethodGet)
	r.HandleFunc("/api/posters/{id}", DeletePosterHandler(conn, logger)).Methods(http.MethodDelete)
	r.HandleFunc("/api/posters/{id}/like", ToggleLikeHandler(conn, logger)).Methods(http.MethodPost)
	r.HandleFunc("/api/posters/{id}/comments", ListCommentsHandler(conn, logger)).Methods(http.MethodGet)
	r.HandleFunc("/api/posters/{id}/comments", CreateCommentHandler(conn, logger)).Methods(http.MethodPost)
	return r, mock
}

func serve(r *mux.Router, method, path, body string, userID int) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(auth.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func expectOwner(mock sqlmock.Sqlmock, posterID, owner int) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM posters WHERE id = $1")).
		WithArgs(posterID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(owner))
}

func TestCreatePoster(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO posters")).
		WithArgs(5, "https://cdn.example/affiche.jpg", "Première", `{"jazz","paris"}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, time.Now()))

	body := `{"imageUrl":"https://cdn.example/affiche.jpg","caption":" Première ","tags":["Jazz","#paris","jazz",""]}`
	rec := serve(r, http.MethodPost, "/api/posters", body, 5)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p Poster
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 11, p.ID)
	assert.Equal(t, []string{"jazz", "paris"}, p.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePosterRequiresImageURL(t *testing.T) {
	r, mock := newTestRouter(t)

	for _, body := range []string{`{"caption":"x"}`, `{"imageUrl":"ftp://cdn/x.jpg"}`, `{"imageUrl":"not a url"}`} {
		rec := serve(r, http.MethodPost, "/api/posters", body, 5)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPosters(t *testing.T) {
	r, mock := newTestRouter(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM posters p")).
		WithArgs(5, 9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "image_url", "caption", "tags", "created_at", "likes", "liked", "comments"}).
			AddRow(11, 9, "https://cdn.example/a.jpg", "", "{jazz}", now, 3, true, 1))

	rec := serve(r, http.MethodGet, "/api/posters?userId=9", "", 5)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out []Poster
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, []string{"jazz"}, out[0].Tags)
	assert.True(t, out[0].Liked)
	assert.Equal(t, 3, out[0].Likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePosterOwnerOnly(t *testing.T) {
	r, mock := newTestRouter(t)

	expectOwner(mock, 11, 9)
	rec := serve(r, http.MethodDelete, "/api/posters/11", "", 5)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	expectOwner(mock, 11, 9)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posters WHERE id = $1")).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	rec = serve(r, http.MethodDelete, "/api/posters/11", "", 9)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM posters WHERE id = $1")).
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	rec = serve(r, http.MethodDelete, "/api/posters/12", "", 9)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLike(t *testing.T) {
	r, mock := newTestRouter(t)

	// First call likes.
	expectOwner(mock, 11, 9)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM poster_likes")).
		WithArgs(11, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO poster_likes")).
		WithArgs(11, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM poster_likes")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectCommit()

	rec := serve(r, http.MethodPost, "/api/posters/11/like", "", 5)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"liked":true,"likes":4}`, rec.Body.String())

	// Second call removes the like.
	expectOwner(mock, 11, 9)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM poster_likes")).
		WithArgs(11, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM poster_likes")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectCommit()

	rec = serve(r, http.MethodPost, "/api/posters/11/like", "", 5)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"liked":false,"likes":3}`, rec.Body.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComments(t *testing.T) {
	r, mock := newTestRouter(t)
	now := time.Now()

	rec := serve(r, http.MethodPost, "/api/posters/11/comments", `{"content":"  "}`, 5)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	expectOwner(mock, 11, 9)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO poster_comments")).
		WithArgs(11, 5, "Superbe affiche").
		WillReturnRows(sqlmock.NewRows([]string{"id", "author", "created_at"}).AddRow(2, "Nina K", now))

	rec = serve(r, http.MethodPost, "/api/posters/11/comments", `{"content":"Superbe affiche"}`, 5)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Nina K", created.Author)
	assert.Equal(t, 5, created.UserID)

	expectOwner(mock, 11, 9)
	mock.ExpectQuery(regexp.QuoteMeta("FROM poster_comments c")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "poster_id", "user_id", "author", "content", "created_at"}).
			AddRow(2, 11, 5, "Nina K", "Superbe affiche", now))

	rec = serve(r, http.MethodGet, "/api/posters/11/comments", "", 9)
	require.Equal(t, http.StatusOK, rec.Code)
	var comments []Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "Nina K", comments[0].Author)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCommentsUnknownPoster(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM posters WHERE id = $1")).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	rec := serve(r, http.MethodGet, "/api/posters/404/comments", "", 9)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCommentsRowError(t *testing.T) {
	r, mock := newTestRouter(t)

	expectOwner(mock, 11, 9)
	mock.ExpectQuery(regexp.QuoteMeta("FROM poster_comments c")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "poster_id", "user_id", "author", "content", "created_at"}).
			AddRow(2, 11, 5, "Nina K", "Superbe affiche", time.Now()).
			RowError(0, errors.New("connection reset")))

	rec := serve(r, http.MethodGet, "/api/posters/11/comments", "", 9)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNormalizeTags(t *testing.T) {
	many := make([]string, 0, 15)
	for _, c := range "abcdefghijklmno" {
		many = append(many, string(c))
	}
	assert.Len(t, normalizeTags(many), maxTags)
	assert.Equal(t, []string{}, normalizeTags(nil))
}
