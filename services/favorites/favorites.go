package favorites

import (
	"context"
	"errors"

	"go.uber.org/zap"

	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

// Service runs the connection request lifecycle between theaters and artists:
//
//	(none) --send--> pending --accept--> accepted --remove--> (none)
//	                    \--reject--> rejected --send (reopen)--> pending
//
// Every operation takes the caller's user id explicitly. The pair uniqueness is
// guaranteed by the store; the service never holds state between calls.
type Service struct {
	store    Store
	profiles ProfileStore
	logger   *zap.Logger
}

func NewService(store Store, profiles ProfileStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, profiles: profiles, logger: logger}
}

// SendRequest asks the profile named in target to connect with the caller's profile.
func (s *Service) SendRequest(ctx context.Context, callerUserID int, target Target) (*Connection, error) {
	caller, err := s.callerProfile(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	counterpart, err := s.counterpart(ctx, caller, target)
	if err != nil {
		return nil, err
	}
	pair := pairOf(caller, counterpart)

	existing, err := s.store.FindByPair(ctx, pair)
	if err != nil {
		return nil, appErrors.Internal(err)
	}

	var f *Favorite
	switch {
	case existing == nil:
		f, err = s.create(ctx, pair, caller.Kind)
	case existing.Status == StatusPending:
		return nil, appErrors.ErrRequestAlreadySent
	case existing.Status == StatusAccepted:
		return nil, appErrors.ErrAlreadyConnected
	default:
		f, err = s.reopen(ctx, existing, caller.Kind)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("connection requested",
		zap.Int("favorite_id", f.ID),
		zap.Int("theater_id", f.TheaterID),
		zap.Int("artist_id", f.ArtistID),
		zap.String("requested_by", string(f.RequestedBy)))

	return &Connection{Favorite: *f, Counterpart: Counterpart{Kind: counterpart.Kind, Profile: *counterpart}}, nil
}

func (s *Service) create(ctx context.Context, pair Pair, by profiles.Kind) (*Favorite, error) {
	f := &Favorite{
		TheaterID:   pair.TheaterID,
		ArtistID:    pair.ArtistID,
		Status:      StatusPending,
		RequestedBy: by,
	}
	if err := s.store.Create(ctx, f); err != nil {
		// A concurrent request for the same pair won the insert.
		if errors.Is(err, ErrDuplicatePair) {
			return nil, appErrors.ErrRequestAlreadySent
		}
		return nil, appErrors.Internal(err)
	}
	return f, nil
}

// reopen turns a rejected request back into a pending one sent by the given side.
func (s *Service) reopen(ctx context.Context, existing *Favorite, by profiles.Kind) (*Favorite, error) {
	f, err := s.store.Reopen(ctx, existing.ID, by)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	if f == nil {
		// The record left the rejected state between the lookup and the update.
		return nil, appErrors.ErrRequestAlreadySent
	}
	return f, nil
}

// RespondToRequest accepts or rejects a pending request. Only the side that did
// not send the request may answer it.
func (s *Service) RespondToRequest(ctx context.Context, responderUserID, favoriteID int, decision Decision) (*Connection, error) {
	to, ok := decision.target()
	if !ok {
		return nil, appErrors.ErrInvalidDecision
	}
	responder, err := s.callerProfile(ctx, responderUserID)
	if err != nil {
		return nil, err
	}

	f, err := s.store.FindByID(ctx, favoriteID)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	if f == nil || f.Status != StatusPending || !isRecipient(f, responder) {
		return nil, appErrors.ErrRequestNotFound
	}

	// Resolved before the transition so a failed lookup leaves the request pending.
	requester, err := s.profiles.GetProfileByID(ctx, f.RequestedBy, otherID(f, responder.Kind))
	if err != nil {
		return nil, s.profileErr(err)
	}

	updated, err := s.store.Transition(ctx, f.ID, StatusPending, to)
	if err != nil {
		return nil, appErrors.Internal(err)
	}
	if updated == nil {
		return nil, appErrors.ErrRequestNotFound
	}

	s.logger.Info("connection request answered",
		zap.Int("favorite_id", updated.ID),
		zap.String("status", string(updated.Status)))

	return &Connection{Favorite: *updated, Counterpart: Counterpart{Kind: requester.Kind, Profile: *requester}}, nil
}

// RemoveConnection deletes the accepted connection between the caller and the
// profile named in target. It returns the number of records removed.
func (s *Service) RemoveConnection(ctx context.Context, callerUserID int, target Target) (int64, error) {
	caller, err := s.callerProfile(ctx, callerUserID)
	if err != nil {
		return 0, err
	}
	otherKind := caller.Kind.Opposite()
	id, ok := target.idFor(otherKind)
	if !ok {
		return 0, appErrors.ErrMissingTarget
	}

	pair := pairOf(caller, &profiles.Profile{ID: id, Kind: otherKind})
	n, err := s.store.DeleteAccepted(ctx, pair)
	if err != nil {
		return 0, appErrors.Internal(err)
	}
	if n == 0 {
		return 0, appErrors.ErrConnectionNotFound
	}

	s.logger.Info("connection removed",
		zap.Int("theater_id", pair.TheaterID),
		zap.Int("artist_id", pair.ArtistID))
	return n, nil
}

// ListConnections returns the caller's connections split into incoming and
// outgoing pending requests and accepted connections.
func (s *Service) ListConnections(ctx context.Context, userID int) (*Connections, error) {
	caller, err := s.callerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.store.ListByProfile(ctx, caller)
	if err != nil {
		return nil, appErrors.Internal(err)
	}

	out := &Connections{
		CounterpartKind: caller.Kind.Opposite(),
		PendingIncoming: []Connection{},
		PendingOutgoing: []Connection{},
		Accepted:        []Connection{},
	}
	for _, c := range all {
		switch c.Status {
		case StatusAccepted:
			out.Accepted = append(out.Accepted, c)
		case StatusPending:
			if c.RequestedBy == caller.Kind {
				out.PendingOutgoing = append(out.PendingOutgoing, c)
			} else {
				out.PendingIncoming = append(out.PendingIncoming, c)
			}
		}
	}
	return out, nil
}

// AreConnected reports whether the profiles owned by two users have an accepted connection.
func (s *Service) AreConnected(ctx context.Context, userA, userB int) (bool, error) {
	a, err := s.profiles.GetProfileByUserID(ctx, userA)
	if err != nil {
		return false, s.noProfileIsFalse(err)
	}
	b, err := s.profiles.GetProfileByUserID(ctx, userB)
	if err != nil {
		return false, s.noProfileIsFalse(err)
	}
	if a.Kind == b.Kind {
		return false, nil
	}

	f, err := s.store.FindByPair(ctx, pairOf(a, b))
	if err != nil {
		return false, appErrors.Internal(err)
	}
	return f != nil && f.Status == StatusAccepted, nil
}

func (s *Service) noProfileIsFalse(err error) error {
	if errors.Is(err, appErrors.ErrProfileNotFound) {
		return nil
	}
	return s.profileErr(err)
}

func (s *Service) callerProfile(ctx context.Context, userID int) (*profiles.Profile, error) {
	p, err := s.profiles.GetProfileByUserID(ctx, userID)
	if errors.Is(err, appErrors.ErrProfileNotFound) {
		return nil, appErrors.ErrNoProfile
	}
	if err != nil {
		return nil, s.profileErr(err)
	}
	return p, nil
}

func (s *Service) counterpart(ctx context.Context, caller *profiles.Profile, target Target) (*profiles.Profile, error) {
	kind := caller.Kind.Opposite()
	id, ok := target.idFor(kind)
	if !ok {
		return nil, appErrors.ErrMissingTarget
	}
	p, err := s.profiles.GetProfileByID(ctx, kind, id)
	if err != nil {
		return nil, s.profileErr(err)
	}
	return p, nil
}

// profileErr keeps domain errors from the profile store and hides everything else.
func (s *Service) profileErr(err error) error {
	if _, ok := appErrors.As(err); ok {
		return err
	}
	return appErrors.Internal(err)
}

// pairOf orders two complementary profiles into a (theater, artist) pair,
// whichever side initiated.
func pairOf(a, b *profiles.Profile) Pair {
	if a.Kind == profiles.KindTheater {
		return Pair{TheaterID: a.ID, ArtistID: b.ID}
	}
	return Pair{TheaterID: b.ID, ArtistID: a.ID}
}

func isRecipient(f *Favorite, p *profiles.Profile) bool {
	if f.RequestedBy == p.Kind {
		return false
	}
	if p.Kind == profiles.KindArtist {
		return f.ArtistID == p.ID
	}
	return f.TheaterID == p.ID
}

// otherID is the id of the profile on the side opposite to kind.
func otherID(f *Favorite, kind profiles.Kind) int {
	if kind == profiles.KindArtist {
		return f.TheaterID
	}
	return f.ArtistID
}
