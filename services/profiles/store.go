package profiles

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
)

const discoverLimit = 50

type rowScanner interface {
	Scan(dest ...any) error
}

// Store is the Postgres backed profile store.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetProfileByUserID returns the single profile owned by userID.
// ErrProfileNotFound is returned when the user has not picked a role yet.
func (s *Store) GetProfileByUserID(ctx context.Context, userID int) (*Profile, error) {
	rows, err := s.db.QueryContext(ctx, SelectProfileByUserQuery, userID)
	if err != nil {
		return nil, errors.Wrap(err, "profiles.GetProfileByUserID.Query")
	}
	defer rows.Close()

	var found []Profile
	for rows.Next() {
		var p Profile
		var kind string
		if err := rows.Scan(&kind, &p.ID, &p.UserID, &p.Name, &p.City, &p.ProfilePictureURL); err != nil {
			return nil, errors.Wrap(err, "profiles.GetProfileByUserID.Scan")
		}
		p.Kind = Kind(kind)
		found = append(found, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "profiles.GetProfileByUserID.Rows")
	}

	switch len(found) {
	case 0:
		return nil, appErrors.ErrProfileNotFound
	case 1:
		return &found[0], nil
	default:
		return nil, appErrors.Internal(fmt.Errorf("user %d owns both an artist and a theater profile", userID))
	}
}

// UserExists reports whether an account with the given id exists.
func (s *Store) UserExists(ctx context.Context, userID int) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, UserExistsQuery, userID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "profiles.UserExists.Scan")
	}
	return exists, nil
}

// GetProfileByID returns the summary of the artist or theater with the given id.
func (s *Store) GetProfileByID(ctx context.Context, kind Kind, id int) (*Profile, error) {
	var query string
	switch kind {
	case KindArtist:
		query = SelectArtistSummaryQuery
	case KindTheater:
		query = SelectTheaterSummaryQuery
	default:
		return nil, appErrors.ErrInvalidRole
	}

	p := Profile{Kind: kind}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Name, &p.City, &p.ProfilePictureURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "profiles.GetProfileByID.Scan")
	}
	return &p, nil
}

func (s *Store) GetArtist(ctx context.Context, id int) (*Artist, error) {
	a, err := scanArtist(s.db.QueryRowContext(ctx, SelectArtistQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "profiles.GetArtist.Scan")
	}
	return a, nil
}

func (s *Store) GetTheater(ctx context.Context, id int) (*Theater, error) {
	t, err := scanTheater(s.db.QueryRowContext(ctx, SelectTheaterQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "profiles.GetTheater.Scan")
	}
	return t, nil
}

func (s *Store) ListArtists(ctx context.Context, city string) ([]Artist, error) {
	rows, err := s.db.QueryContext(ctx, ListArtistsQuery, strings.TrimSpace(city))
	if err != nil {
		return nil, errors.Wrap(err, "profiles.ListArtists.Query")
	}
	defer rows.Close()

	artists := []Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, errors.Wrap(err, "profiles.ListArtists.Scan")
		}
		artists = append(artists, *a)
	}
	return artists, errors.Wrap(rows.Err(), "profiles.ListArtists.Rows")
}

func (s *Store) ListTheaters(ctx context.Context, city string) ([]Theater, error) {
	rows, err := s.db.QueryContext(ctx, ListTheatersQuery, strings.TrimSpace(city))
	if err != nil {
		return nil, errors.Wrap(err, "profiles.ListTheaters.Query")
	}
	defer rows.Close()

	theaters := []Theater{}
	for rows.Next() {
		t, err := scanTheater(rows)
		if err != nil {
			return nil, errors.Wrap(err, "profiles.ListTheaters.Scan")
		}
		theaters = append(theaters, *t)
	}
	return theaters, errors.Wrap(rows.Err(), "profiles.ListTheaters.Rows")
}

// CreateProfile creates the caller's artist or theater profile. A user owns at most one
// profile across both tables; the users row is locked so two concurrent role choices
// cannot both succeed.
func (s *Store) CreateProfile(ctx context.Context, userID int, kind Kind, name string) (*Profile, error) {
	if !kind.Valid() {
		return nil, appErrors.ErrInvalidRole
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.ErrEmptyName
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "profiles.CreateProfile.Begin")
	}
	defer tx.Rollback()

	var lockedID int
	if err := tx.QueryRowContext(ctx, LockUserQuery, userID).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUnauthenticated
		}
		return nil, errors.Wrap(err, "profiles.CreateProfile.LockUser")
	}

	var existing int
	rows, err := tx.QueryContext(ctx, SelectProfileByUserQuery, userID)
	if err != nil {
		return nil, errors.Wrap(err, "profiles.CreateProfile.Existing")
	}
	for rows.Next() {
		existing++
	}
	rows.Close()
	if existing > 0 {
		return nil, appErrors.ErrProfileExists
	}

	insert := InsertArtistQuery
	if kind == KindTheater {
		insert = InsertTheaterQuery
	}
	p := Profile{UserID: userID, Kind: kind, Name: name}
	if err := tx.QueryRowContext(ctx, insert, userID, name).Scan(&p.ID); err != nil {
		return nil, errors.Wrap(err, "profiles.CreateProfile.Insert")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "profiles.CreateProfile.Commit")
	}
	return &p, nil
}

func (s *Store) UpdateArtist(ctx context.Context, userID int, u ArtistUpdate) (*Artist, error) {
	if u.StageName != nil && strings.TrimSpace(*u.StageName) == "" {
		return nil, appErrors.ErrEmptyName
	}
	a, err := scanArtist(s.db.QueryRowContext(ctx, UpdateArtistQuery,
		userID, u.StageName, u.Bio, u.Discipline, u.City, u.ProfilePictureURL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "profiles.UpdateArtist.Scan")
	}
	return a, nil
}

func (s *Store) UpdateTheater(ctx context.Context, userID int, u TheaterUpdate) (*Theater, error) {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return nil, appErrors.ErrEmptyName
	}
	if u.Capacity != nil && *u.Capacity < 0 {
		return nil, appErrors.InvalidArg("La capacité doit être positive")
	}
	t, err := scanTheater(s.db.QueryRowContext(ctx, UpdateTheaterQuery,
		userID, u.Name, u.Bio, u.Address, u.City, u.Capacity, u.ProfilePictureURL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "profiles.UpdateTheater.Scan")
	}
	return t, nil
}

// Discover lists profiles of the opposite kind that have no pending or accepted
// connection with p.
func (s *Store) Discover(ctx context.Context, p *Profile) ([]Profile, error) {
	query := DiscoverTheatersQuery
	if p.Kind == KindTheater {
		query = DiscoverArtistsQuery
	}

	rows, err := s.db.QueryContext(ctx, query, p.ID, p.City, discoverLimit)
	if err != nil {
		return nil, errors.Wrap(err, "profiles.Discover.Query")
	}
	defer rows.Close()

	out := []Profile{}
	for rows.Next() {
		c := Profile{Kind: p.Kind.Opposite()}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.City, &c.ProfilePictureURL); err != nil {
			return nil, errors.Wrap(err, "profiles.Discover.Scan")
		}
		out = append(out, c)
	}
	return out, errors.Wrap(rows.Err(), "profiles.Discover.Rows")
}

func scanArtist(row rowScanner) (*Artist, error) {
	var a Artist
	err := row.Scan(&a.ID, &a.UserID, &a.StageName, &a.Bio, &a.Discipline, &a.City,
		&a.ProfilePictureURL, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanTheater(row rowScanner) (*Theater, error) {
	var t Theater
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Bio, &t.Address, &t.City, &t.Capacity,
		&t.ProfilePictureURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
