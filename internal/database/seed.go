package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/velikan/mailadmin/internal/config"
)

// defaultProviders are the SMTP provider rows inserted on first boot.
// Credentials start empty and are filled in through the settings page.
var defaultProviders = []struct {
	Provider string
	Host     string
	Port     int
	Secure   bool
}{
	{Provider: "Gmail", Host: "smtp.gmail.com", Port: 587, Secure: true},
	{Provider: "Hostinger", Host: "smtp.hostinger.com", Port: 587, Secure: true},
}

// Seed inserts the operator account and the default SMTP provider rows if
// they are not present yet. Every insert is an INSERT IGNORE against a
// unique key (users.username, smtp_settings.provider), so concurrent first
// boots cannot double-insert and re-running on every startup is safe.
func Seed(ctx context.Context, db *sql.DB, admin config.AdminConfig) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	res, err := db.ExecContext(ctx,
		`INSERT IGNORE INTO users (username, password, email) VALUES (?, ?, ?)`,
		admin.Username, string(hash), admin.Email,
	)
	if err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Info("seeded operator account", slog.String("username", admin.Username))
	}

	for _, p := range defaultProviders {
		res, err := db.ExecContext(ctx,
			`INSERT IGNORE INTO smtp_settings (provider, host, port, username, password_encrypted, secure)
			 VALUES (?, ?, ?, '', NULL, ?)`,
			p.Provider, p.Host, p.Port, p.Secure,
		)
		if err != nil {
			return fmt.Errorf("seeding smtp provider %s: %w", p.Provider, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			slog.Info("seeded smtp provider",
				slog.String("provider", p.Provider),
				slog.String("host", p.Host),
			)
		}
	}

	return nil
}
