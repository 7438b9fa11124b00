package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/robinoyako/sips/internal/domain/models"
)

// GetUserByUsername returns one account, or models.ErrNotFound.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}
	return &u, nil
}

// CountUsers returns the number of accounts, for bootstrap seeding.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CreateUser inserts an account with an already-hashed password.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, role string) error {
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3)
	`, username, passwordHash, role); err != nil {
		return fmt.Errorf("create user %s: %w", username, err)
	}
	return nil
}
