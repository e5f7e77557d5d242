package settings

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func settingColumns() []string {
	return []string{
		"id", "provider", "host", "port", "username",
		"password_encrypted", "secure", "created_at", "updated_at",
	}
}

func TestRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM smtp_settings ORDER BY provider`).
		WillReturnRows(sqlmock.NewRows(settingColumns()).
			AddRow(1, "Gmail", "smtp.gmail.com", 587, "", nil, true, now, now).
			AddRow(2, "Hostinger", "smtp.hostinger.com", 587, "", nil, true, now, now))

	repo := NewRepository(db)
	rows, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Provider != "Gmail" || rows[1].Provider != "Hostinger" {
		t.Errorf("unexpected providers: %s, %s", rows[0].Provider, rows[1].Provider)
	}
	if rows[0].PasswordEncrypted != nil {
		t.Errorf("expected nil password bytes for seeded row, got %v", rows[0].PasswordEncrypted)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepositoryFindByProvider_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM smtp_settings WHERE provider = \?`).
		WithArgs("Mailgun").
		WillReturnRows(sqlmock.NewRows(settingColumns()))

	repo := NewRepository(db)
	_, err = repo.FindByProvider(context.Background(), "Mailgun")
	assertAppError(t, err, 404)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepositoryUpdateByProvider(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	defer db.Close()

	encrypted := []byte{0x01, 0x02, 0x03}
	mock.ExpectExec(`UPDATE smtp_settings SET .+ WHERE provider = \?`).
		WithArgs("smtp.gmail.com", 465, "u", encrypted, true, "Gmail").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRepository(db)
	err = repo.UpdateByProvider(context.Background(), &settingRow{
		Provider:          "Gmail",
		Host:              "smtp.gmail.com",
		Port:              465,
		Username:          "u",
		PasswordEncrypted: encrypted,
		Secure:            true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepositoryUpdateByProvider_ZeroRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE smtp_settings SET .+ WHERE provider = \?`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	err = repo.UpdateByProvider(context.Background(), &settingRow{
		Provider: "Mailgun",
		Host:     "smtp.mailgun.org",
		Port:     587,
	})
	assertAppError(t, err, 404)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepositoryLogEmail(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO email_log`).
		WithArgs("Gmail", "a@b.com", "msg-1", StatusSimulated).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewRepository(db)
	err = repo.LogEmail(context.Background(), EmailLogEntry{
		Provider:  "Gmail",
		Recipient: "a@b.com",
		MessageID: "msg-1",
		Status:    StatusSimulated,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
