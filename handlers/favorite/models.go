package favorite

import (
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/favorites"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

// RespondRequest is the body of /favorite/accept and /favorite/reject
type RespondRequest struct {
	FriendshipID int    `json:"friendshipId"`
	Action       string `json:"action"`
}

// FavoriteList holds the caller's connections, all of the counterpart kind
type FavoriteList struct {
	Kind  profiles.Kind          `json:"kind"`
	Items []favorites.Connection `json:"items"`
}

type RemoveResponse struct {
	Removed int64 `json:"removed"`
}
