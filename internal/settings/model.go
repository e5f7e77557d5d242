// Package settings manages the SMTP provider configuration: listing,
// editing, and the test-send flow. Each provider (Gmail, Hostinger, ...)
// is one row keyed by its name. Stored passwords are encrypted at rest
// with AES-256-GCM; they are decrypted only for the settings form and at
// send time.
package settings

import "time"

// Setting is a provider row as seen by the service layer and handlers,
// with the password decrypted for the operator-only settings form.
type Setting struct {
	ID        int
	Provider  string
	Host      string
	Port      int
	Username  string
	Password  string
	Secure    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// settingRow is the raw database row including encrypted password bytes.
// Internal only -- never exposed outside the repository/service pair.
type settingRow struct {
	ID                int
	Provider          string
	Host              string
	Port              int
	Username          string
	PasswordEncrypted []byte // AES-256-GCM encrypted, nil if not set.
	Secure            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UpdateRequest holds the settings form data. The provider field selects
// which row to update.
type UpdateRequest struct {
	Provider string `form:"provider"`
	Host     string `form:"host"`
	Port     int    `form:"port"`
	Username string `form:"username"`
	Password string `form:"password"`
	Secure   bool   `form:"secure"`
}

// TestEmailRequest holds the test-send form data.
type TestEmailRequest struct {
	Provider  string `form:"provider"`
	TestEmail string `form:"testEmail"`
}

// EmailLogEntry records a test-send intent.
type EmailLogEntry struct {
	Provider  string
	Recipient string
	MessageID string
	Status    string
}

// Email log statuses.
const (
	StatusSimulated = "simulated"
	StatusSent      = "sent"
	StatusFailed    = "failed"
)
