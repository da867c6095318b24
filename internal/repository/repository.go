package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratespot/ratespot/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict indicates a uniqueness constraint rejected the write, e.g. a
// duplicate user or store email.
var ErrConflict = errors.New("repository: conflict")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Users   *UsersRepository
	Stores  *StoresRepository
	Ratings *RatingsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Users:   &UsersRepository{pool: pool},
		Stores:  &StoresRepository{pool: pool},
		Ratings: &RatingsRepository{pool: pool},
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
