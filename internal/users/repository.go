package users

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository defines the data access contract for the user listing.
type Repository interface {
	List(ctx context.Context) ([]User, error)
}

// repository implements Repository with hand-written MariaDB queries.
type repository struct {
	db *sql.DB
}

// NewRepository creates a new user listing repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// List returns all users ordered by id. The password column is deliberately
// excluded -- the listing never needs credential data.
func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `SELECT id, username, email, created_at FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
