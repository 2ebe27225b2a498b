// Note: to generate demo data when SEED_ENABLED is set, use:
// curl -X POST "http://localhost:8080/api/dev/seed?count=5"

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/response"
	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
)

const (
	seedPassword = "demopass123"
	maxSeedCount = 150
)

var disciplines = []string{
	"Humour", "Stand-up", "Théâtre", "Danse", "Magie", "Cirque",
	"Chanson", "Conte", "Improvisation", "Mime", "Marionnettes",
}

var cities = []string{
	"Paris", "Lyon", "Marseille", "Toulouse", "Bordeaux", "Lille",
	"Nantes", "Strasbourg", "Montpellier", "Rennes", "Nice", "Avignon",
}

var theaterPrefixes = []string{
	"Théâtre", "Le Petit", "La Comédie de", "L'Espace", "Le Café-Théâtre", "La Scène",
}

type seedResult struct {
	Message      string `json:"message"`
	UsersCreated int    `json:"users_created"`
	Artists      int    `json:"artists"`
	Theaters     int    `json:"theaters"`
}

// Seeder fills the database with fake artists and theaters
type Seeder struct {
	db     *sql.DB
	rng    *rand.Rand
	logger *zap.Logger
}

func NewSeeder(db *sql.DB, seed uint64, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, rng: rand.New(rand.NewSource(seed)), logger: logger}
}

// GenerateTestDataHandler creates ?count= artists and as many theaters (default 10)
// Used by: POST /api/dev/seed
func (s *Seeder) GenerateTestDataHandler(w http.ResponseWriter, r *http.Request) {
	count := 10
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSeedCount {
			response.Error(w, r, s.logger, appErrors.InvalidArg(fmt.Sprintf("count doit être entre 1 et %d", maxSeedCount)))
			return
		}
		count = n
	}

	res, err := s.Seed(r.Context(), count)
	if err != nil {
		response.Error(w, r, s.logger, appErrors.Internal(err))
		return
	}
	response.JSON(w, http.StatusCreated, res)
}

// Seed creates count artists and count theaters in one transaction. A user that
// fails is rolled back to its savepoint and skipped.
func (s *Seeder) Seed(ctx context.Context, count int) (*seedResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting seed transaction: %w", err)
	}
	defer tx.Rollback()

	res := &seedResult{}
	for i := 0; i < count*2; i++ {
		kind := "artist"
		if i%2 == 1 {
			kind = "theater"
		}
		savepoint := fmt.Sprintf("seed_%d", i)
		if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
			return nil, fmt.Errorf("creating savepoint: %w", err)
		}

		if err := s.seedUser(ctx, tx, kind, string(hash)); err != nil {
			s.logger.Warn("seeding user failed", zap.Int("index", i), zap.String("kind", kind), zap.Error(err))
			if _, err := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); err != nil {
				return nil, fmt.Errorf("rolling back savepoint: %w", err)
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
			return nil, fmt.Errorf("releasing savepoint: %w", err)
		}

		if kind == "artist" {
			res.Artists++
		} else {
			res.Theaters++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing seed: %w", err)
	}

	res.UsersCreated = res.Artists + res.Theaters
	res.Message = "Données de démonstration générées"
	s.logger.Info("seed complete", zap.Int("artists", res.Artists), zap.Int("theaters", res.Theaters))
	return res, nil
}

func (s *Seeder) seedUser(ctx context.Context, tx *sql.Tx, kind, hash string) error {
	email := strings.ToLower(fmt.Sprintf("%s.%d@%s", gofakeit.Username(), s.rng.Intn(100000), gofakeit.DomainName()))

	var userID int
	err := tx.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, email, hash).Scan(&userID)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	city := pick(s.rng, cities)
	picture := fmt.Sprintf("https://picsum.photos/seed/%d/400/400", userID)

	if kind == "artist" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO artists (user_id, stage_name, bio, discipline, city, profile_picture_url)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, userID, gofakeit.Name(), gofakeit.Sentence(12), pick(s.rng, disciplines), city, picture)
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO theaters (user_id, name, bio, address, city, capacity, profile_picture_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, userID, pick(s.rng, theaterPrefixes)+" "+gofakeit.LastName(), gofakeit.Sentence(12),
			gofakeit.Street(), city, 30+s.rng.Intn(900), picture)
	}
	if err != nil {
		return fmt.Errorf("inserting %s profile: %w", kind, err)
	}
	return nil
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

// SeedFromClock seeds the generator from the current time
func SeedFromClock() uint64 {
	return uint64(time.Now().UnixNano())
}
