package favorite

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/favorites"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

// fakeStore keeps favorites in memory with the same pair uniqueness as the table.
type fakeStore struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]*favorites.Favorite
	prof   *fakeProfiles
}

func newFakeStore(prof *fakeProfiles) *fakeStore {
	return &fakeStore{rows: map[int]*favorites.Favorite{}, prof: prof}
}

func (s *fakeStore) find(pair favorites.Pair) *favorites.Favorite {
	for _, f := range s.rows {
		if f.Pair() == pair {
			return f
		}
	}
	return nil
}

func (s *fakeStore) FindByPair(_ context.Context, pair favorites.Pair) (*favorites.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f := s.find(pair); f != nil {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeStore) FindByID(_ context.Context, id int) (*favorites.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.rows[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeStore) Create(_ context.Context, f *favorites.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(f.Pair()) != nil {
		return favorites.ErrDuplicatePair
	}
	s.nextID++
	f.ID = s.nextID
	f.CreatedAt, f.UpdatedAt = time.Now(), time.Now()
	cp := *f
	s.rows[f.ID] = &cp
	return nil
}

func (s *fakeStore) Reopen(_ context.Context, id int, by profiles.Kind) (*favorites.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.rows[id]
	if !ok || f.Status != favorites.StatusRejected {
		return nil, nil
	}
	f.Status, f.RequestedBy = favorites.StatusPending, by
	cp := *f
	return &cp, nil
}

func (s *fakeStore) Transition(_ context.Context, id int, from, to favorites.Status) (*favorites.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.rows[id]
	if !ok || f.Status != from {
		return nil, nil
	}
	f.Status = to
	cp := *f
	return &cp, nil
}

func (s *fakeStore) DeleteAccepted(_ context.Context, pair favorites.Pair) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.find(pair)
	if f == nil || f.Status != favorites.StatusAccepted {
		return 0, nil
	}
	delete(s.rows, f.ID)
	return 1, nil
}

func (s *fakeStore) ListByProfile(ctx context.Context, p *profiles.Profile) ([]favorites.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []favorites.Connection
	for _, f := range s.rows {
		if f.Status == favorites.StatusRejected {
			continue
		}
		otherID := f.TheaterID
		mine := f.ArtistID == p.ID
		if p.Kind == profiles.KindTheater {
			otherID, mine = f.ArtistID, f.TheaterID == p.ID
		}
		if !mine {
			continue
		}
		other, err := s.prof.GetProfileByID(ctx, p.Kind.Opposite(), otherID)
		if err != nil {
			return nil, err
		}
		out = append(out, favorites.Connection{Favorite: *f, Counterpart: favorites.Counterpart{Kind: other.Kind, Profile: *other}})
	}
	return out, nil
}

type fakeProfiles struct {
	all []profiles.Profile
}

func (p *fakeProfiles) GetProfileByUserID(_ context.Context, userID int) (*profiles.Profile, error) {
	for _, pr := range p.all {
		if pr.UserID == userID {
			cp := pr
			return &cp, nil
		}
	}
	return nil, appErrors.ErrProfileNotFound
}

func (p *fakeProfiles) GetProfileByID(_ context.Context, kind profiles.Kind, id int) (*profiles.Profile, error) {
	for _, pr := range p.all {
		if pr.Kind == kind && pr.ID == id {
			cp := pr
			return &cp, nil
		}
	}
	return nil, appErrors.ErrProfileNotFound
}

type sent struct {
	userID int
	kind   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sent
}

func (n *recordingNotifier) Notify(_ context.Context, userID int, kind, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sent{userID: userID, kind: kind})
}
