package favorites

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

// memStore mirrors the favorites table, including its unique (theater_id, artist_id) key.
type memStore struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]*Favorite
	byPair map[Pair]int
	prof   *memProfiles
}

func newMemStore(prof *memProfiles) *memStore {
	return &memStore{rows: map[int]*Favorite{}, byPair: map[Pair]int{}, prof: prof}
}

func (m *memStore) FindByPair(_ context.Context, pair Pair) (*Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byPair[pair]
	if !ok {
		return nil, nil
	}
	f := *m.rows[id]
	return &f, nil
}

func (m *memStore) FindByID(_ context.Context, id int) (*Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (m *memStore) Create(_ context.Context, f *Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byPair[f.Pair()]; ok {
		return ErrDuplicatePair
	}
	m.nextID++
	f.ID = m.nextID
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	cp := *f
	m.rows[f.ID] = &cp
	m.byPair[f.Pair()] = f.ID
	return nil
}

func (m *memStore) Reopen(_ context.Context, id int, by profiles.Kind) (*Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.rows[id]
	if !ok || f.Status != StatusRejected {
		return nil, nil
	}
	f.Status = StatusPending
	f.RequestedBy = by
	f.UpdatedAt = time.Now()
	cp := *f
	return &cp, nil
}

func (m *memStore) Transition(_ context.Context, id int, from, to Status) (*Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.rows[id]
	if !ok || f.Status != from {
		return nil, nil
	}
	f.Status = to
	f.UpdatedAt = time.Now()
	cp := *f
	return &cp, nil
}

func (m *memStore) DeleteAccepted(_ context.Context, pair Pair) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byPair[pair]
	if !ok || m.rows[id].Status != StatusAccepted {
		return 0, nil
	}
	delete(m.rows, id)
	delete(m.byPair, pair)
	return 1, nil
}

func (m *memStore) ListByProfile(ctx context.Context, p *profiles.Profile) ([]Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Connection
	for _, f := range m.rows {
		if f.Status == StatusRejected {
			continue
		}
		var otherID int
		switch {
		case p.Kind == profiles.KindTheater && f.TheaterID == p.ID:
			otherID = f.ArtistID
		case p.Kind == profiles.KindArtist && f.ArtistID == p.ID:
			otherID = f.TheaterID
		default:
			continue
		}
		other, err := m.prof.GetProfileByID(ctx, p.Kind.Opposite(), otherID)
		if err != nil {
			return nil, err
		}
		out = append(out, Connection{Favorite: *f, Counterpart: Counterpart{Kind: other.Kind, Profile: *other}})
	}
	return out, nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memProfiles struct {
	byUser map[int]profiles.Profile
	// byIDErr, when set, fails every GetProfileByID call.
	byIDErr error
}

func newMemProfiles(ps ...profiles.Profile) *memProfiles {
	m := &memProfiles{byUser: map[int]profiles.Profile{}}
	for _, p := range ps {
		m.byUser[p.UserID] = p
	}
	return m
}

func (m *memProfiles) GetProfileByUserID(_ context.Context, userID int) (*profiles.Profile, error) {
	p, ok := m.byUser[userID]
	if !ok {
		return nil, appErrors.ErrProfileNotFound
	}
	return &p, nil
}

func (m *memProfiles) GetProfileByID(_ context.Context, kind profiles.Kind, id int) (*profiles.Profile, error) {
	if m.byIDErr != nil {
		return nil, m.byIDErr
	}
	for _, p := range m.byUser {
		if p.Kind == kind && p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, appErrors.ErrProfileNotFound
}
