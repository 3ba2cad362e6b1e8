package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jbj828/express-tdd/internal/domain"
	"github.com/jbj828/express-tdd/internal/repository"
)

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ repository.UserRepository = (*Repository)(nil)

// CreateUser inserts a user and fills in its generated id. A unique index
// collision on email is reported as repository.ErrEmailTaken.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.pool.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetUserByEmail fetches a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetUserByID fetches a user by primary key.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// ListUsers returns every user ordered by creation.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT id, username, email, password_hash, created_at FROM users ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// TruncateUsers resets the users table. Test suites only.
func (r *Repository) TruncateUsers(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `TRUNCATE users RESTART IDENTITY`)
	return err
}

func (r *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
