package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository stores users in the users table.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Init(ctx context.Context) error {
	return execAll(ctx, r.pool,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique_idx ON users (email);`,
	)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO users (id, name, email, phone, role, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, user.Phone, string(user.Role), user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("insert user %s", user.Email))
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) get(ctx context.Context, where, arg string) (*domain.User, error) {
	var (
		user domain.User
		role string
	)
	err := r.pool.QueryRow(ctx, `
SELECT id, name, email, phone, role, password_hash, created_at
FROM users `+where, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &role, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "select user")
	}
	user.Role = domain.Role(role)
	return &user, nil
}
