// Package users provides the read-only user listing. Accounts are
// provisioned outside this application; nothing here creates, updates,
// or deletes user rows.
package users

import "time"

// User is the listing projection of a user row. Password hashes are
// deliberately excluded from the query that fills this struct.
type User struct {
	ID        int
	Username  string
	Email     *string
	CreatedAt time.Time
}
