// Package auth handles operator authentication and session management for
// mailadmin. It provides login, logout, and session validation backed by
// opaque tokens stored in Redis.
package auth

import (
	"time"
)

// User represents a registered user row. This is the domain model used
// throughout the application. Database scanning uses this struct directly.
type User struct {
	ID           int
	Username     string
	PasswordHash string // Never expose outside this package.
	Email        *string
	CreatedAt    time.Time
}

// LoginRequest holds the data submitted by the login form.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// LoginInput is the validated input for authenticating a user.
type LoginInput struct {
	Username string
	Password string
}

// Session represents an authenticated session stored in Redis. The session
// token is the key, and this struct is the value (JSON-encoded). It holds
// only the non-secret projection of the user -- never password material.
type Session struct {
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
