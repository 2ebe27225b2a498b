package favorite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/auth"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/notifications"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/favorites"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

const (
	theaterUser = 10 // theater 3, "Le Splendid"
	artistUser  = 20 // artist 7, "Nina K"
	noRoleUser  = 30
)

type fixture struct {
	router   *mux.Router
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	prof := &fakeProfiles{all: []profiles.Profile{
		{ID: 3, UserID: theaterUser, Kind: profiles.KindTheater, Name: "Le Splendid", City: "Paris"},
		{ID: 7, UserID: artistUser, Kind: profiles.KindArtist, Name: "Nina K", City: "Paris"},
	}}
	svc := favorites.NewService(newFakeStore(prof), prof, zap.NewNop())
	notifier := &recordingNotifier{}
	h := NewHandler(svc, notifier, zap.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/api/favorite", h.SendRequest).Methods(http.MethodPost)
	r.HandleFunc("/api/favorite", h.Remove).Methods(http.MethodDelete)
	r.HandleFunc("/api/favorite", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/favorite/accept", h.Accept).Methods(http.MethodPost)
	r.HandleFunc("/api/favorite/reject", h.Reject).Methods(http.MethodPost)
	r.HandleFunc("/api/favorite/requests", h.Requests).Methods(http.MethodGet)
	r.HandleFunc("/api/favorite/all", h.All).Methods(http.MethodGet)
	return &fixture{router: r, notifier: notifier}
}

func (f *fixture) do(t *testing.T, method, path, body string, userID int) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != 0 {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeConnection(t *testing.T, rec *httptest.ResponseRecorder) favorites.Connection {
	t.Helper()
	var c favorites.Connection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	return c
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) FavoriteList {
	t.Helper()
	var l FavoriteList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	return l
}

func TestRequestAcceptScenario(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/favorite", `{"artistId":7}`, theaterUser)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decodeConnection(t, rec)
	assert.Equal(t, 3, c.TheaterID)
	assert.Equal(t, 7, c.ArtistID)
	assert.Equal(t, favorites.StatusPending, c.Status)
	assert.Equal(t, profiles.KindTheater, c.RequestedBy)

	rec = f.do(t, http.MethodGet, "/api/favorite/requests", "", artistUser)
	require.Equal(t, http.StatusOK, rec.Code)
	requests := decodeList(t, rec)
	require.Len(t, requests.Items, 1)
	assert.Equal(t, profiles.KindTheater, requests.Kind)

	body := `{"friendshipId":` + strconv.Itoa(c.ID) + `,"action":"accept"}`
	rec = f.do(t, http.MethodPost, "/api/favorite/accept", body, artistUser)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, favorites.StatusAccepted, decodeConnection(t, rec).Status)

	rec = f.do(t, http.MethodGet, "/api/favorite", "", theaterUser)
	theaterList := decodeList(t, rec)
	require.Len(t, theaterList.Items, 1)
	assert.Equal(t, profiles.KindArtist, theaterList.Kind)
	assert.Equal(t, "Nina K", theaterList.Items[0].Counterpart.Profile.Name)

	rec = f.do(t, http.MethodGet, "/api/favorite", "", artistUser)
	artistList := decodeList(t, rec)
	require.Len(t, artistList.Items, 1)
	assert.Equal(t, "Le Splendid", artistList.Items[0].Counterpart.Profile.Name)

	assert.Equal(t, []sent{
		{userID: artistUser, kind: notifications.TypeFriendRequest},
		{userID: theaterUser, kind: notifications.TypeFriendAccepted},
	}, f.notifier.sent)
}

func TestEmptyListsCarryCounterpartKind(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/favorite", "", theaterUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"kind":"artist","items":[]}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/favorite/requests", "", artistUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"kind":"theater","items":[]}`, rec.Body.String())
}

func TestRemoveAndRequestAgain(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/favorite", `{"theaterId":3}`, artistUser)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeConnection(t, rec).ID

	rec = f.do(t, http.MethodPost, "/api/favorite/accept", `{"friendshipId":`+strconv.Itoa(id)+`}`, theaterUser)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodDelete, "/api/favorite", `{"theaterId":3}`, artistUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed":1}`, rec.Body.String())

	for _, user := range []int{theaterUser, artistUser} {
		rec = f.do(t, http.MethodGet, "/api/favorite", "", user)
		assert.Empty(t, decodeList(t, rec).Items)
	}

	rec = f.do(t, http.MethodPost, "/api/favorite", `{"theaterId":3}`, artistUser)
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decodeConnection(t, rec)
	assert.Equal(t, favorites.StatusPending, c.Status)
	assert.NotEqual(t, id, c.ID)
}

func TestRejectThenReopen(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/favorite", `{"artistId":7}`, theaterUser)
	id := decodeConnection(t, rec).ID

	rec = f.do(t, http.MethodPost, "/api/favorite/reject", `{"friendshipId":`+strconv.Itoa(id)+`,"action":"reject"}`, artistUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, favorites.StatusRejected, decodeConnection(t, rec).Status)

	rec = f.do(t, http.MethodGet, "/api/favorite/all", "", theaterUser)
	assert.JSONEq(t, `{"pending_incoming":[],"pending_outgoing":[],"accepted":[]}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/favorite", `{"artistId":7}`, theaterUser)
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decodeConnection(t, rec)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, favorites.StatusPending, c.Status)

	// Only friend_request notifications; a rejection is silent.
	for _, s := range f.notifier.sent {
		assert.Equal(t, notifications.TypeFriendRequest, s.kind)
	}
}

func TestErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, f *fixture)
		method string
		path   string
		body   string
		user   int
		code   int
		error  string
	}{
		{
			name: "unauthenticated", method: http.MethodPost, path: "/api/favorite",
			body: `{"artistId":7}`, user: 0, code: http.StatusUnauthorized, error: "Non autorisé",
		},
		{
			name: "duplicate request",
			setup: func(t *testing.T, f *fixture) {
				f.do(t, http.MethodPost, "/api/favorite", `{"artistId":7}`, theaterUser)
			},
			method: http.MethodPost, path: "/api/favorite", body: `{"artistId":7}`, user: theaterUser,
			code: http.StatusConflict, error: "Demande déjà envoyée",
		},
		{
			name: "unknown target", method: http.MethodPost, path: "/api/favorite",
			body: `{"artistId":99}`, user: theaterUser, code: http.StatusNotFound, error: "Profil introuvable",
		},
		{
			name: "missing target", method: http.MethodPost, path: "/api/favorite",
			body: `{"theaterId":3}`, user: theaterUser, code: http.StatusBadRequest, error: "artistId ou theaterId requis",
		},
		{
			name: "caller without profile", method: http.MethodPost, path: "/api/favorite",
			body: `{"artistId":7}`, user: noRoleUser, code: http.StatusBadRequest, error: "Aucun profil artiste ou théâtre",
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/api/favorite",
			body: `{`, user: theaterUser, code: http.StatusBadRequest, error: "Corps de requête invalide",
		},
		{
			name: "remove without connection", method: http.MethodDelete, path: "/api/favorite",
			body: `{"artistId":7}`, user: theaterUser, code: http.StatusNotFound, error: "Aucune relation trouvée",
		},
		{
			name: "answer unknown request", method: http.MethodPost, path: "/api/favorite/accept",
			body: `{"friendshipId":42}`, user: artistUser, code: http.StatusNotFound, error: "Demande introuvable",
		},
		{
			name: "sender cannot accept own request",
			setup: func(t *testing.T, f *fixture) {
				f.do(t, http.MethodPost, "/api/favorite", `{"artistId":7}`, theaterUser)
			},
			method: http.MethodPost, path: "/api/favorite/accept", body: `{"friendshipId":1}`, user: theaterUser,
			code: http.StatusNotFound, error: "Demande introuvable",
		},
		{
			name: "action disagrees with route", method: http.MethodPost, path: "/api/favorite/accept",
			body: `{"friendshipId":1,"action":"reject"}`, user: artistUser,
			code: http.StatusBadRequest, error: "action doit être accept ou reject",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(t, f)
			}
			rec := f.do(t, tt.method, tt.path, tt.body, tt.user)
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.error+`"}`, rec.Body.String())
		})
	}
}
