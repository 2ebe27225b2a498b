package favorites

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/db"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresStore keeps favorites in the favorites table. The (theater_id, artist_id)
// unique constraint is the only concurrency guard.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByPair(ctx context.Context, pair Pair) (*Favorite, error) {
	f, err := scanFavorite(s.db.QueryRowContext(ctx, SelectByPairQuery, pair.TheaterID, pair.ArtistID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return f, errors.Wrap(err, "favoritesRepo.FindByPair.Scan")
}

func (s *PostgresStore) FindByID(ctx context.Context, id int) (*Favorite, error) {
	f, err := scanFavorite(s.db.QueryRowContext(ctx, SelectByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return f, errors.Wrap(err, "favoritesRepo.FindByID.Scan")
}

func (s *PostgresStore) Create(ctx context.Context, f *Favorite) error {
	err := s.db.QueryRowContext(ctx, InsertFavoriteQuery, f.TheaterID, f.ArtistID, f.Status, f.RequestedBy).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return ErrDuplicatePair
	}
	return errors.Wrap(err, "favoritesRepo.Create.Insert")
}

func (s *PostgresStore) Reopen(ctx context.Context, id int, requestedBy profiles.Kind) (*Favorite, error) {
	f, err := scanFavorite(s.db.QueryRowContext(ctx, ReopenFavoriteQuery, id, requestedBy))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return f, errors.Wrap(err, "favoritesRepo.Reopen.Update")
}

func (s *PostgresStore) Transition(ctx context.Context, id int, from, to Status) (*Favorite, error) {
	f, err := scanFavorite(s.db.QueryRowContext(ctx, TransitionFavoriteQuery, id, from, to))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return f, errors.Wrap(err, "favoritesRepo.Transition.Update")
}

func (s *PostgresStore) DeleteAccepted(ctx context.Context, pair Pair) (int64, error) {
	result, err := s.db.ExecContext(ctx, DeleteAcceptedQuery, pair.TheaterID, pair.ArtistID)
	if err != nil {
		return 0, errors.Wrap(err, "favoritesRepo.DeleteAccepted.Exec")
	}
	n, err := result.RowsAffected()
	return n, errors.Wrap(err, "favoritesRepo.DeleteAccepted.RowsAffected")
}

func (s *PostgresStore) ListByProfile(ctx context.Context, p *profiles.Profile) ([]Connection, error) {
	query := ListForArtistQuery
	if p.Kind == profiles.KindTheater {
		query = ListForTheaterQuery
	}

	rows, err := s.db.QueryContext(ctx, query, p.ID)
	if err != nil {
		return nil, errors.Wrap(err, "favoritesRepo.ListByProfile.Query")
	}
	defer rows.Close()

	var out []Connection
	for rows.Next() {
		c := Connection{Counterpart: Counterpart{Kind: p.Kind.Opposite()}}
		c.Counterpart.Profile.Kind = c.Counterpart.Kind
		other := &c.Counterpart.Profile
		err := rows.Scan(
			&c.ID, &c.TheaterID, &c.ArtistID, &c.Status, &c.RequestedBy, &c.CreatedAt, &c.UpdatedAt,
			&other.ID, &other.UserID, &other.Name, &other.City, &other.ProfilePictureURL,
		)
		if err != nil {
			return nil, errors.Wrap(err, "favoritesRepo.ListByProfile.Scan")
		}
		out = append(out, c)
	}
	return out, errors.Wrap(rows.Err(), "favoritesRepo.ListByProfile.Rows")
}

func scanFavorite(row rowScanner) (*Favorite, error) {
	var f Favorite
	err := row.Scan(&f.ID, &f.TheaterID, &f.ArtistID, &f.Status, &f.RequestedBy, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
