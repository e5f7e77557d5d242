package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/velikan/mailadmin/internal/apperror"
)

// Service defines the business logic contract for SMTP settings.
// Handlers call these methods -- they never touch the repository directly.
type Service interface {
	// List returns all provider settings ordered by provider name, with
	// passwords decrypted for the operator-only settings form.
	List(ctx context.Context) ([]Setting, error)

	// Update saves new values for the named provider. An unknown provider
	// name is an error, not a silent no-op.
	Update(ctx context.Context, req UpdateRequest) error

	// SendTest delivers (or simulates) a test email through the named
	// provider and records the intent in the email log.
	SendTest(ctx context.Context, req TestEmailRequest) error
}

// service implements Service.
type service struct {
	repo   Repository
	sender EmailSender
	secret string // Application secret key for password encryption.

	// simulated marks log-driver deliveries in the email log.
	simulated bool
}

// NewService creates a new settings service. simulated should be true when
// sender is the logging sender, so email log rows carry the right status.
func NewService(repo Repository, sender EmailSender, secret string, simulated bool) Service {
	return &service{
		repo:      repo,
		sender:    sender,
		secret:    secret,
		simulated: simulated,
	}
}

// List returns all provider settings with decrypted passwords.
func (s *service) List(ctx context.Context) ([]Setting, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("loading smtp settings: %w", err))
	}

	settings := make([]Setting, 0, len(rows))
	for i := range rows {
		setting, err := s.toSetting(&rows[i])
		if err != nil {
			return nil, apperror.NewInternal(err)
		}
		settings = append(settings, *setting)
	}

	return settings, nil
}

// Update validates and persists the settings form for one provider.
// The stored password is replaced by the submitted one, encrypted; an
// empty submission clears the credential.
func (s *service) Update(ctx context.Context, req UpdateRequest) error {
	provider := strings.TrimSpace(req.Provider)
	if provider == "" {
		return apperror.NewBadRequest("provider is required")
	}
	if strings.TrimSpace(req.Host) == "" {
		return apperror.NewBadRequest("host is required")
	}
	if req.Port <= 0 || req.Port > 65535 {
		return apperror.NewBadRequest("port must be between 1 and 65535")
	}

	encrypted, err := encrypt([]byte(req.Password), s.secret)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("encrypting smtp password: %w", err))
	}

	row := &settingRow{
		Provider:          provider,
		Host:              strings.TrimSpace(req.Host),
		Port:              req.Port,
		Username:          strings.TrimSpace(req.Username),
		PasswordEncrypted: encrypted,
		Secure:            req.Secure,
	}

	if err := s.repo.UpdateByProvider(ctx, row); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.NewInternal(fmt.Errorf("saving smtp settings: %w", err))
	}

	slog.Info("smtp settings updated",
		slog.String("provider", row.Provider),
		slog.String("host", row.Host),
		slog.Int("port", row.Port),
		slog.Bool("secure", row.Secure),
	)
	return nil
}

// SendTest validates the request, loads the provider settings, hands the
// decrypted config to the sender, and records the intent.
func (s *service) SendTest(ctx context.Context, req TestEmailRequest) error {
	recipient := strings.TrimSpace(req.TestEmail)
	if recipient == "" {
		return apperror.NewBadRequest("Test email address is required")
	}

	row, err := s.repo.FindByProvider(ctx, strings.TrimSpace(req.Provider))
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return apperror.NewNotFound("SMTP settings not found")
		}
		return apperror.NewInternal(fmt.Errorf("loading smtp settings: %w", err))
	}

	setting, err := s.toSetting(row)
	if err != nil {
		return apperror.NewInternal(err)
	}

	cfg := SMTPConfig{
		Provider: setting.Provider,
		Host:     setting.Host,
		Port:     setting.Port,
		Username: setting.Username,
		Password: setting.Password,
		Secure:   setting.Secure,
	}

	entry := EmailLogEntry{
		Provider:  setting.Provider,
		Recipient: recipient,
		MessageID: uuid.NewString(),
	}

	if err := s.sender.Send(ctx, cfg, recipient); err != nil {
		entry.Status = StatusFailed
		if logErr := s.repo.LogEmail(ctx, entry); logErr != nil {
			slog.Warn("failed to record email log entry", slog.Any("error", logErr))
		}
		return apperror.NewInternal(fmt.Errorf("sending test email: %w", err))
	}

	entry.Status = StatusSent
	if s.simulated {
		entry.Status = StatusSimulated
	}
	if err := s.repo.LogEmail(ctx, entry); err != nil {
		// The send already happened; a logging failure is not surfaced
		// to the operator.
		slog.Warn("failed to record email log entry", slog.Any("error", err))
	}

	slog.Info("test email dispatched",
		slog.String("provider", entry.Provider),
		slog.String("recipient", entry.Recipient),
		slog.String("message_id", entry.MessageID),
		slog.String("status", entry.Status),
	)
	return nil
}

// toSetting converts a database row to the service-level Setting with the
// password decrypted.
func (s *service) toSetting(row *settingRow) (*Setting, error) {
	password := ""
	if len(row.PasswordEncrypted) > 0 {
		plaintext, err := decrypt(row.PasswordEncrypted, s.secret)
		if err != nil {
			return nil, fmt.Errorf("decrypting smtp password for %s: %w", row.Provider, err)
		}
		password = string(plaintext)
	}

	return &Setting{
		ID:        row.ID,
		Provider:  row.Provider,
		Host:      row.Host,
		Port:      row.Port,
		Username:  row.Username,
		Password:  password,
		Secure:    row.Secure,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
