package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velikan/mailadmin/internal/apperror"
)

// UserRepository defines the data access contract for user lookups.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// userRepository implements UserRepository with hand-written MariaDB queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUsername retrieves a user by exact username match.
// Returns apperror.NotFound if no user exists with this username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, password, email, created_at
	          FROM users WHERE username = ?`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by username: %w", err)
	}

	return user, nil
}
