package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratespot/ratespot/internal/domain"
)

// StoresRepository provides persistence helpers for stores.
type StoresRepository struct {
	pool *pgxpool.Pool
}

const storeColumns = `id, name, email, address, owner_id, created_at`

// StoreCreateParams bundles the fields required to create a store.
type StoreCreateParams struct {
	Name    string
	Email   string
	Address string
	OwnerID *string
}

// StoreListFilters narrows the admin store directory.
type StoreListFilters struct {
	Name    *string
	Email   *string
	Address *string
}

// StoreUserFilters narrows the per-user store listing.
type StoreUserFilters struct {
	Name    *string
	Address *string
}

// Create inserts a store and, when an owner is supplied, promotes that user
// to Store Owner inside the same transaction. A duplicate store email yields
// ErrConflict.
func (r *StoresRepository) Create(ctx context.Context, params StoreCreateParams) (domain.Store, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Store{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        INSERT INTO stores (name, email, address, owner_id)
        VALUES ($1,$2,$3,$4)
        RETURNING %s
    `, storeColumns)

	st, err := scanStore(tx.QueryRow(ctx, query, params.Name, params.Email, params.Address, params.OwnerID))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Store{}, ErrConflict
		}
		if isForeignKeyViolation(err) {
			return domain.Store{}, ErrNotFound
		}
		return domain.Store{}, err
	}

	if params.OwnerID != nil {
		tag, err := tx.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, string(domain.RoleStoreOwner), *params.OwnerID)
		if err != nil {
			return domain.Store{}, fmt.Errorf("promote owner: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.Store{}, ErrNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Store{}, fmt.Errorf("commit tx: %w", err)
	}
	return st, nil
}

// GetByID fetches a store by its identifier.
func (r *StoresRepository) GetByID(ctx context.Context, id string) (domain.Store, error) {
	query := fmt.Sprintf(`SELECT %s FROM stores WHERE id = $1`, storeColumns)
	st, err := scanStore(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Store{}, ErrNotFound
		}
		return domain.Store{}, err
	}
	return st, nil
}

// GetByOwner fetches the single store owned by ownerID.
func (r *StoresRepository) GetByOwner(ctx context.Context, ownerID string) (domain.Store, error) {
	query := fmt.Sprintf(`SELECT %s FROM stores WHERE owner_id = $1`, storeColumns)
	st, err := scanStore(r.pool.QueryRow(ctx, query, ownerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Store{}, ErrNotFound
		}
		return domain.Store{}, err
	}
	return st, nil
}

// ListForUser returns every store with its average rating plus the given
// user's own rating, optionally filtered, ordered by store name.
func (r *StoresRepository) ListForUser(ctx context.Context, userID string, filters StoreUserFilters) ([]domain.StoreForUser, error) {
	where := make([]string, 0)
	args := []interface{}{userID}
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Name != nil && strings.TrimSpace(*filters.Name) != "" {
		where = append(where, fmt.Sprintf("s.name ILIKE %s", arg("%"+strings.TrimSpace(*filters.Name)+"%")))
	}
	if filters.Address != nil && strings.TrimSpace(*filters.Address) != "" {
		where = append(where, fmt.Sprintf("s.address ILIKE %s", arg("%"+strings.TrimSpace(*filters.Address)+"%")))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
        SELECT s.id, s.name, s.address,
               COALESCE(ROUND(AVG(r.rating)::numeric, 2), 0)::float8 AS average_rating,
               (SELECT rating FROM ratings WHERE user_id = $1 AND store_id = s.id) AS user_rating
        FROM stores s
        LEFT JOIN ratings r ON s.id = r.store_id
    `)
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}
	queryBuilder.WriteString(" GROUP BY s.id, s.name, s.address ORDER BY s.name")

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := make([]domain.StoreForUser, 0)
	for rows.Next() {
		var st domain.StoreForUser
		if err := rows.Scan(&st.ID, &st.Name, &st.Address, &st.AverageRating, &st.UserRating); err != nil {
			return nil, err
		}
		stores = append(stores, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

// ListEnriched returns stores plus owner name and average rating, filtered
// and ordered by name.
func (r *StoresRepository) ListEnriched(ctx context.Context, filters StoreListFilters) ([]domain.StoreDirectoryEntry, error) {
	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Name != nil && strings.TrimSpace(*filters.Name) != "" {
		where = append(where, fmt.Sprintf("s.name ILIKE %s", arg("%"+strings.TrimSpace(*filters.Name)+"%")))
	}
	if filters.Email != nil && strings.TrimSpace(*filters.Email) != "" {
		where = append(where, fmt.Sprintf("s.email ILIKE %s", arg("%"+strings.TrimSpace(*filters.Email)+"%")))
	}
	if filters.Address != nil && strings.TrimSpace(*filters.Address) != "" {
		where = append(where, fmt.Sprintf("s.address ILIKE %s", arg("%"+strings.TrimSpace(*filters.Address)+"%")))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
        SELECT s.id, s.name, s.email, s.address, s.owner_id,
               u.name AS owner_name,
               COALESCE(ROUND(AVG(r.rating)::numeric, 2), 0)::float8 AS average_rating
        FROM stores s
        LEFT JOIN ratings r ON s.id = r.store_id
        LEFT JOIN users u ON s.owner_id = u.id
    `)
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}
	queryBuilder.WriteString(" GROUP BY s.id, s.name, s.email, s.address, s.owner_id, u.name ORDER BY s.name")

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.StoreDirectoryEntry, 0)
	for rows.Next() {
		var entry domain.StoreDirectoryEntry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Email, &entry.Address, &entry.OwnerID, &entry.OwnerName, &entry.AverageRating); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// CountAll returns the total number of store rows.
func (r *StoresRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}
	return count, nil
}

func scanStore(row pgx.Row) (domain.Store, error) {
	var st domain.Store
	err := row.Scan(
		&st.ID,
		&st.Name,
		&st.Email,
		&st.Address,
		&st.OwnerID,
		&st.CreatedAt,
	)
	if err != nil {
		return domain.Store{}, err
	}
	return st, nil
}
