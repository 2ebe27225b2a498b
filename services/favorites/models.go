package favorites

import (
	"time"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

// Status is the lifecycle state of a connection request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Decision is the answer the receiving side gives to a pending request.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func (d Decision) target() (Status, bool) {
	switch d {
	case DecisionAccept:
		return StatusAccepted, true
	case DecisionReject:
		return StatusRejected, true
	}
	return "", false
}

// Pair identifies a connection. There is at most one record per pair.
type Pair struct {
	TheaterID int
	ArtistID  int
}

// Favorite is the persisted connection between one theater and one artist.
type Favorite struct {
	ID          int           `json:"id"`
	TheaterID   int           `json:"theater_id"`
	ArtistID    int           `json:"artist_id"`
	Status      Status        `json:"status"`
	RequestedBy profiles.Kind `json:"requested_by"` // side that sent the request
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (f *Favorite) Pair() Pair {
	return Pair{TheaterID: f.TheaterID, ArtistID: f.ArtistID}
}

// Counterpart is the other side of a connection, tagged with its kind.
type Counterpart struct {
	Kind    profiles.Kind    `json:"kind"`
	Profile profiles.Profile `json:"profile"`
}

// Connection is a favorite seen from one of its two profiles.
type Connection struct {
	Favorite
	Counterpart Counterpart `json:"counterpart"`
}

// Connections partitions a profile's connections the way the client shows them.
type Connections struct {
	CounterpartKind profiles.Kind `json:"counterpart_kind"`
	PendingIncoming []Connection `json:"pending_incoming"`
	PendingOutgoing []Connection `json:"pending_outgoing"`
	Accepted        []Connection `json:"accepted"`
}

// Target is the counterpart named in a request body. Only the id matching the
// caller's opposite kind is used.
type Target struct {
	ArtistID  *int `json:"artistId,omitempty"`
	TheaterID *int `json:"theaterId,omitempty"`
}

func (t Target) idFor(kind profiles.Kind) (int, bool) {
	var id *int
	if kind == profiles.KindArtist {
		id = t.ArtistID
	} else {
		id = t.TheaterID
	}
	if id == nil || *id <= 0 {
		return 0, false
	}
	return *id, true
}
