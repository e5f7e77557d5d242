package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("expected development env, got %s", cfg.Env)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected 24h session TTL, got %v", cfg.Session.TTL)
	}
	if cfg.Mail.Driver != "log" {
		t.Errorf("expected log mail driver, got %s", cfg.Mail.Driver)
	}
	if cfg.Admin.Username != "admin" {
		t.Errorf("expected admin seed username, got %s", cfg.Admin.Username)
	}
	if cfg.SecretKey == "" {
		t.Error("expected a dev fallback secret key")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("MAIL_DRIVER", "smtp")
	t.Setenv("ADMIN_USERNAME", "operator")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("expected 1h session TTL, got %v", cfg.Session.TTL)
	}
	if cfg.Mail.Driver != "smtp" {
		t.Errorf("expected smtp mail driver, got %s", cfg.Mail.Driver)
	}
	if cfg.Admin.Username != "operator" {
		t.Errorf("expected operator seed username, got %s", cfg.Admin.Username)
	}
}

func TestLoad_ProductionRequiresSecretKey(t *testing.T) {
	t.Setenv("ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing SECRET_KEY in production")
	}

	t.Setenv("SECRET_KEY", "too-short")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for short SECRET_KEY in production")
	}

	t.Setenv("SECRET_KEY", strings.Repeat("k", 32))
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error with valid secret: %v", err)
	}
}

func TestLoad_RejectsUnknownMailDriver(t *testing.T) {
	t.Setenv("MAIL_DRIVER", "sendmail")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown mail driver")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		User:     "mailadmin",
		Password: "p@ss/word",
		Name:     "mailadmin",
	}

	dsn := d.DSN()
	if !strings.Contains(dsn, "tcp(db.internal:3306)") {
		t.Errorf("expected default port appended, got %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("expected parseTime enabled, got %s", dsn)
	}
}

func TestDSN_OverrideWins(t *testing.T) {
	d := DatabaseConfig{
		Host:        "ignored",
		dsnOverride: "user:pass@tcp(other:3307)/db?parseTime=true",
	}

	if dsn := d.DSN(); dsn != "user:pass@tcp(other:3307)/db?parseTime=true" {
		t.Errorf("expected override DSN, got %s", dsn)
	}
}
