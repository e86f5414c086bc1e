package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/GestionTG-25-26/tg-backend/internal/users/domain"
)

// UserRepository provides persistence for provisioned accounts.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS usuarios (
	firebase_uid TEXT PRIMARY KEY,
	email        TEXT NOT NULL,
	full_name    TEXT NOT NULL DEFAULT '',
	role         TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates the usuarios table if it does not exist.
func (r *UserRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createTableSQL)
	return err
}

// GetByFirebaseUID retrieves a user by their Firebase UID.
func (r *UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	const q = `
SELECT firebase_uid, email, full_name, role, created_at, updated_at
FROM usuarios
WHERE firebase_uid = $1;
`
	var user domain.User
	err := r.db.QueryRowContext(ctx, q, uid).Scan(
		&user.FirebaseUID, &user.Email, &user.FullName, &user.Role,
		&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert creates or updates a provisioned account.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	const q = `
INSERT INTO usuarios (firebase_uid, email, full_name, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (firebase_uid)
DO UPDATE SET email = $2, full_name = $3, role = $4, updated_at = now();
`
	_, err := r.db.ExecContext(ctx, q, user.FirebaseUID, user.Email, user.FullName, user.Role)
	return err
}
