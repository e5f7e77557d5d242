package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velikan/mailadmin/internal/apperror"
)

// Repository handles database operations for SMTP settings and the email
// log. Rows are addressed by provider name, which carries a unique index.
type Repository interface {
	// List returns all provider rows ordered by provider name.
	List(ctx context.Context) ([]settingRow, error)

	// FindByProvider returns the row for the named provider.
	// Returns apperror.NotFound if the provider doesn't exist.
	FindByProvider(ctx context.Context, provider string) (*settingRow, error)

	// UpdateByProvider updates the named provider's row and bumps
	// updated_at. Returns apperror.NotFound when no row matched -- an
	// update that touches zero rows is not a success.
	UpdateByProvider(ctx context.Context, row *settingRow) error

	// LogEmail records a test-send intent.
	LogEmail(ctx context.Context, entry EmailLogEntry) error
}

// repository implements Repository with MariaDB.
type repository struct {
	db *sql.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// List retrieves all SMTP provider rows ordered by provider name.
func (r *repository) List(ctx context.Context) ([]settingRow, error) {
	query := `SELECT id, provider, host, port, username, password_encrypted,
	                 secure, created_at, updated_at
	          FROM smtp_settings ORDER BY provider`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing smtp settings: %w", err)
	}
	defer rows.Close()

	var result []settingRow
	for rows.Next() {
		var row settingRow
		if err := rows.Scan(
			&row.ID, &row.Provider, &row.Host, &row.Port, &row.Username,
			&row.PasswordEncrypted, &row.Secure, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning smtp settings row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// FindByProvider retrieves a single provider row by name.
func (r *repository) FindByProvider(ctx context.Context, provider string) (*settingRow, error) {
	query := `SELECT id, provider, host, port, username, password_encrypted,
	                 secure, created_at, updated_at
	          FROM smtp_settings WHERE provider = ?`

	row := &settingRow{}
	err := r.db.QueryRowContext(ctx, query, provider).Scan(
		&row.ID, &row.Provider, &row.Host, &row.Port, &row.Username,
		&row.PasswordEncrypted, &row.Secure, &row.CreatedAt, &row.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("SMTP settings not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying smtp settings by provider: %w", err)
	}

	return row, nil
}

// UpdateByProvider writes the new values for the named provider. The whole
// change is a single UPDATE statement, so two concurrent updates to the
// same provider resolve to one writer's full row (last writer wins, never
// a merged row).
func (r *repository) UpdateByProvider(ctx context.Context, row *settingRow) error {
	query := `UPDATE smtp_settings
	          SET host = ?, port = ?, username = ?, password_encrypted = ?,
	              secure = ?, updated_at = NOW()
	          WHERE provider = ?`

	result, err := r.db.ExecContext(ctx, query,
		row.Host, row.Port, row.Username, row.PasswordEncrypted,
		row.Secure, row.Provider,
	)
	if err != nil {
		return fmt.Errorf("updating smtp settings: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("SMTP settings not found")
	}

	return nil
}

// LogEmail inserts a row into the email log.
func (r *repository) LogEmail(ctx context.Context, entry EmailLogEntry) error {
	query := `INSERT INTO email_log (provider, recipient, message_id, status)
	          VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		entry.Provider, entry.Recipient, entry.MessageID, entry.Status,
	)
	if err != nil {
		return fmt.Errorf("inserting email log entry: %w", err)
	}

	return nil
}
