package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andreihelo/simple-login-api/internal/domain"
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

const userColumns = `id, username, first_name, last_name, password, password_confirmation, token, created_at, updated_at`

var _ UserRepository = (*PostgresUserRepo)(nil)

// PostgresUserRepo implements UserRepository on a pgx connection pool.
type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepo constructs the repository.
func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

const insertUserSQL = `INSERT INTO users (username, first_name, last_name, password, password_confirmation, token)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns

func (r *PostgresUserRepo) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.pool.QueryRow(ctx, insertUserSQL,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Password,
		user.PasswordConfirmation,
		user.Token,
	)

	inserted, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrDuplicateUsername
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return inserted, nil
}

const findByTokenSQL = `SELECT ` + userColumns + ` FROM users WHERE token = $1`

func (r *PostgresUserRepo) FindByToken(ctx context.Context, token string) (domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, findByTokenSQL, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("find user by token: %w", err)
	}
	return user, nil
}

const findByCredentialsSQL = `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND password = $2`

func (r *PostgresUserRepo) FindByCredentials(ctx context.Context, username, password string) (domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, findByCredentialsSQL, username, password))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("find user by credentials: %w", err)
	}
	return user, nil
}

const updateUserSQL = `UPDATE users
SET first_name = $2, last_name = $3, password = $4, password_confirmation = $5, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

func (r *PostgresUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.pool.QueryRow(ctx, updateUserSQL,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Password,
		user.PasswordConfirmation,
	)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.User{}, ErrDuplicateUsername
		}
		return domain.User{}, fmt.Errorf("update user %d: %w", user.ID, err)
	}
	return updated, nil
}

const setTokenSQL = `UPDATE users SET token = $2, updated_at = now() WHERE id = $1 RETURNING ` + userColumns

func (r *PostgresUserRepo) SetToken(ctx context.Context, id int64, token *string) (domain.User, error) {
	updated, err := scanUser(r.pool.QueryRow(ctx, setTokenSQL, id, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("set token for user %d: %w", id, err)
	}
	return updated, nil
}

const clearTokenSQL = `UPDATE users SET token = NULL, updated_at = now() WHERE token = $1`

func (r *PostgresUserRepo) ClearToken(ctx context.Context, token string) error {
	tag, err := r.pool.Exec(ctx, clearTokenSQL, token)
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteByTokenSQL = `DELETE FROM users WHERE token = $1`

func (r *PostgresUserRepo) DeleteByToken(ctx context.Context, token string) error {
	tag, err := r.pool.Exec(ctx, deleteByTokenSQL, token)
	if err != nil {
		return fmt.Errorf("delete user by token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.Password,
		&u.PasswordConfirmation,
		&u.Token,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
