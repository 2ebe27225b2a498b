package favorites

import (
	"context"
	"errors"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

// ErrDuplicatePair is returned by Store.Create when the pair already has a record.
var ErrDuplicatePair = errors.New("favorites: pair already has a record")

// Store persists favorites. Lookups return (nil, nil) when nothing matches.
type Store interface {
	FindByPair(ctx context.Context, pair Pair) (*Favorite, error)
	FindByID(ctx context.Context, id int) (*Favorite, error)
	Create(ctx context.Context, f *Favorite) error
	// Reopen moves a rejected record back to pending on behalf of requestedBy.
	Reopen(ctx context.Context, id int, requestedBy profiles.Kind) (*Favorite, error)
	// Transition moves the record from one status to another, only if it is still in from.
	Transition(ctx context.Context, id int, from, to Status) (*Favorite, error)
	DeleteAccepted(ctx context.Context, pair Pair) (int64, error)
	// ListByProfile returns the non-rejected favorites of p with their counterpart.
	ListByProfile(ctx context.Context, p *profiles.Profile) ([]Connection, error)
}

// ProfileStore resolves the profiles taking part in a connection.
type ProfileStore interface {
	GetProfileByUserID(ctx context.Context, userID int) (*profiles.Profile, error)
	GetProfileByID(ctx context.Context, kind profiles.Kind, id int) (*profiles.Profile, error)
}
