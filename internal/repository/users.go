package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratespot/ratespot/internal/domain"
)

// UsersRepository provides persistence helpers for user accounts.
type UsersRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, name, email, password, address, role, created_at`

// UserCreateParams bundles the fields required to create a user. PasswordHash
// must already be hashed; plaintext never reaches this layer.
type UserCreateParams struct {
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         domain.Role
}

// UserListFilters narrows the admin user directory.
type UserListFilters struct {
	Name  *string
	Email *string
	Role  *domain.Role
}

// Create inserts a new user row. A duplicate email yields ErrConflict.
func (r *UsersRepository) Create(ctx context.Context, params UserCreateParams) (domain.User, error) {
	query := fmt.Sprintf(`
        INSERT INTO users (name, email, password, address, role)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, userColumns)

	row := r.pool.QueryRow(ctx, query, params.Name, params.Email, params.PasswordHash, params.Address, string(params.Role))
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrConflict
		}
		return domain.User{}, err
	}
	return user, nil
}

// CreateWithStore inserts a user and, when storeID is non-nil, assigns that
// store's owner_id to the new user inside the same transaction.
func (r *UsersRepository) CreateWithStore(ctx context.Context, params UserCreateParams, storeID *string) (domain.User, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.User{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        INSERT INTO users (name, email, password, address, role)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, userColumns)

	row := tx.QueryRow(ctx, query, params.Name, params.Email, params.PasswordHash, params.Address, string(params.Role))
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrConflict
		}
		return domain.User{}, err
	}

	if storeID != nil {
		tag, err := tx.Exec(ctx, `UPDATE stores SET owner_id = $1 WHERE id = $2`, user.ID, *storeID)
		if err != nil {
			return domain.User{}, fmt.Errorf("assign store owner: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.User{}, ErrNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, fmt.Errorf("commit tx: %w", err)
	}
	return user, nil
}

// GetByEmail fetches a user by email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByID fetches a user by its identifier.
func (r *UsersRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// UpdatePassword replaces the stored password hash.
func (r *UsersRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEnriched returns users plus their owned store name and that store's
// average rating, filtered and ordered by name.
func (r *UsersRepository) ListEnriched(ctx context.Context, filters UserListFilters) ([]domain.UserDirectoryEntry, error) {
	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Name != nil && strings.TrimSpace(*filters.Name) != "" {
		where = append(where, fmt.Sprintf("u.name ILIKE %s", arg("%"+strings.TrimSpace(*filters.Name)+"%")))
	}
	if filters.Email != nil && strings.TrimSpace(*filters.Email) != "" {
		where = append(where, fmt.Sprintf("u.email ILIKE %s", arg("%"+strings.TrimSpace(*filters.Email)+"%")))
	}
	if filters.Role != nil {
		where = append(where, fmt.Sprintf("u.role = %s", arg(string(*filters.Role))))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
        SELECT u.id, u.name, u.email, u.address, u.role,
               s.name AS store_name,
               COALESCE(ROUND(AVG(r.rating)::numeric, 2), 0)::float8 AS store_rating
        FROM users u
        LEFT JOIN stores s ON u.id = s.owner_id
        LEFT JOIN ratings r ON s.id = r.store_id
    `)
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}
	queryBuilder.WriteString(" GROUP BY u.id, u.name, u.email, u.address, u.role, s.name ORDER BY u.name")

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.UserDirectoryEntry, 0)
	for rows.Next() {
		var entry domain.UserDirectoryEntry
		var role string
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Email, &entry.Address, &role, &entry.StoreName, &entry.StoreRating); err != nil {
			return nil, err
		}
		entry.Role = domain.Role(role)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// CountAll returns the total number of user rows.
func (r *UsersRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Address,
		&role,
		&user.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	user.Role = domain.Role(role)
	return user, nil
}
