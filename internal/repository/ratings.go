package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratespot/ratespot/internal/domain"
)

// RatingsRepository provides helpers for store ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// RatingUpsertParams captures the payload required to upsert a rating.
type RatingUpsertParams struct {
	UserID  string
	StoreID string
	Value   int
}

// Upsert inserts or updates a rating and indicates whether it was newly
// created. Re-rating refreshes created_at so the owner dashboard orders by
// the most recent submission.
func (r *RatingsRepository) Upsert(ctx context.Context, params RatingUpsertParams) (domain.Rating, bool, error) {
	const query = `
        INSERT INTO ratings (user_id, store_id, rating)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, store_id)
        DO UPDATE SET rating = EXCLUDED.rating, created_at = now()
        RETURNING id, user_id, store_id, rating, created_at, (xmax = 0) AS inserted
    `

	var rating domain.Rating
	var inserted bool
	err := r.pool.QueryRow(ctx, query, params.UserID, params.StoreID, params.Value).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.StoreID,
		&rating.Value,
		&rating.CreatedAt,
		&inserted,
	)
	if err != nil {
		return domain.Rating{}, false, err
	}

	return rating, inserted, nil
}

// AverageFor returns the store's average rating rounded to 2 decimals, 0
// when the store has no ratings.
func (r *RatingsRepository) AverageFor(ctx context.Context, storeID string) (float64, error) {
	const query = `
        SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0)::float8
        FROM ratings
        WHERE store_id = $1
    `

	var average float64
	if err := r.pool.QueryRow(ctx, query, storeID).Scan(&average); err != nil {
		return 0, fmt.Errorf("average ratings: %w", err)
	}
	return average, nil
}

// Get retrieves a rating for a specific user/store combination.
func (r *RatingsRepository) Get(ctx context.Context, userID, storeID string) (domain.Rating, error) {
	const query = `
        SELECT id, user_id, store_id, rating, created_at
        FROM ratings
        WHERE user_id = $1 AND store_id = $2
    `
	var rating domain.Rating
	err := r.pool.QueryRow(ctx, query, userID, storeID).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.StoreID,
		&rating.Value,
		&rating.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Rating{}, ErrNotFound
		}
		return domain.Rating{}, err
	}
	return rating, nil
}

// RatersFor lists who rated a store, most recent first.
func (r *RatingsRepository) RatersFor(ctx context.Context, storeID string) ([]domain.Rater, error) {
	const query = `
        SELECT u.name, u.email, r.rating
        FROM ratings r
        JOIN users u ON r.user_id = u.id
        WHERE r.store_id = $1
        ORDER BY r.created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	raters := make([]domain.Rater, 0)
	for rows.Next() {
		var rater domain.Rater
		if err := rows.Scan(&rater.Name, &rater.Email, &rater.Rating); err != nil {
			return nil, err
		}
		raters = append(raters, rater)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return raters, nil
}

// CountAll returns the total number of rating rows.
func (r *RatingsRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return count, nil
}
