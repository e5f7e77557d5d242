package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/velikan/mailadmin/internal/apperror"
)

// --- Mock Repository ---

// mockUserRepo implements UserRepository for testing.
type mockUserRepo struct {
	findByUsernameFn func(ctx context.Context, username string) (*User, error)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, apperror.NewNotFound("user not found")
}

// --- Test Helpers ---

// newTestAuthService creates an authService backed by a miniredis instance.
func newTestAuthService(t *testing.T, repo *mockUserRepo) (*authService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return &authService{
		repo:       repo,
		redis:      rdb,
		sessionTTL: 24 * time.Hour,
	}, mr
}

// hashOf returns a bcrypt hash for use as a stored password in tests.
func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return string(hash)
}

// assertUnauthorized checks that err is a 401 AppError with the given message.
func assertUnauthorized(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != 401 {
		t.Errorf("expected status 401, got %d (message: %s)", appErr.Code, appErr.Message)
	}
	return appErr.Message
}

// --- Login Tests ---

func TestLogin_Success(t *testing.T) {
	email := "admin@example.com"
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			if username != "admin" {
				t.Errorf("expected lookup for admin, got %s", username)
			}
			return &User{
				ID:           1,
				Username:     "admin",
				PasswordHash: hashOf(t, "admin123"),
				Email:        &email,
			}, nil
		},
	}

	svc, _ := newTestAuthService(t, repo)
	token, user, err := svc.Login(context.Background(), LoginInput{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected session token")
	}
	if user.ID != 1 {
		t.Errorf("expected user id 1, got %d", user.ID)
	}

	// The created session must hold the user projection, no password material.
	session, err := svc.ValidateSession(context.Background(), token)
	if err != nil {
		t.Fatalf("validating fresh session: %v", err)
	}
	if session.UserID != 1 || session.Username != "admin" || session.Email != email {
		t.Errorf("unexpected session projection: %+v", session)
	}
}

func TestLogin_UnknownUserAndWrongPasswordAreIndistinguishable(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			if username == "admin" {
				return &User{ID: 1, Username: "admin", PasswordHash: hashOf(t, "admin123")}, nil
			}
			return nil, apperror.NewNotFound("user not found")
		},
	}

	svc, _ := newTestAuthService(t, repo)

	_, _, err := svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "whatever"})
	unknownMsg := assertUnauthorized(t, err)

	_, _, err = svc.Login(context.Background(), LoginInput{Username: "admin", Password: "wrong"})
	wrongMsg := assertUnauthorized(t, err)

	if unknownMsg != wrongMsg {
		t.Errorf("messages differ: %q vs %q -- allows username enumeration", unknownMsg, wrongMsg)
	}
}

func TestLogin_RepositoryErrorIsInternal(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			return nil, errors.New("connection reset")
		},
	}

	svc, _ := newTestAuthService(t, repo)
	_, _, err := svc.Login(context.Background(), LoginInput{Username: "admin", Password: "admin123"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 500 {
		t.Fatalf("expected internal AppError, got %v", err)
	}
	// The raw cause must not leak into the client-safe message.
	if appErr.Message == "connection reset" {
		t.Error("raw database error leaked into client message")
	}
}

// --- Session Tests ---

func TestValidateSession_ExpiredToken(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			return &User{ID: 1, Username: "admin", PasswordHash: hashOf(t, "admin123")}, nil
		},
	}

	svc, mr := newTestAuthService(t, repo)
	token, _, err := svc.Login(context.Background(), LoginInput{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Advance past the 24h absolute timeout.
	mr.FastForward(25 * time.Hour)

	_, err = svc.ValidateSession(context.Background(), token)
	assertUnauthorized(t, err)
}

func TestValidateSession_UnknownToken(t *testing.T) {
	svc, _ := newTestAuthService(t, &mockUserRepo{})
	_, err := svc.ValidateSession(context.Background(), "no-such-token")
	assertUnauthorized(t, err)
}

func TestDestroySession_Idempotent(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			return &User{ID: 1, Username: "admin", PasswordHash: hashOf(t, "admin123")}, nil
		},
	}

	svc, _ := newTestAuthService(t, repo)
	token, _, err := svc.Login(context.Background(), LoginInput{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DestroySession(context.Background(), token); err != nil {
		t.Fatalf("first destroy: %v", err)
	}
	// Destroying again must not error.
	if err := svc.DestroySession(context.Background(), token); err != nil {
		t.Fatalf("second destroy: %v", err)
	}

	if _, err := svc.ValidateSession(context.Background(), token); err == nil {
		t.Error("session still valid after destroy")
	}
}
