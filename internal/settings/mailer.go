package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// SMTPConfig is the decrypted provider configuration handed to a sender.
type SMTPConfig struct {
	Provider string
	Host     string
	Port     int
	Username string
	Password string
	Secure   bool
}

// EmailSender delivers a test email through the given provider config.
// The settings service only depends on this interface, so the delivery
// mechanism can be swapped without touching the settings flow.
type EmailSender interface {
	Send(ctx context.Context, cfg SMTPConfig, recipient string) error
}

// LogSender is the default sender: it records the send intent in the log
// and fabricates success without opening a connection.
type LogSender struct{}

// NewLogSender creates the simulating sender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the would-be delivery and returns nil.
func (s *LogSender) Send(ctx context.Context, cfg SMTPConfig, recipient string) error {
	slog.Info("simulating test email",
		slog.String("provider", cfg.Provider),
		slog.String("recipient", recipient),
		slog.String("host", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
	)
	return nil
}

// SMTPSender delivers for real using go-mail. Credentials are taken from
// the provider config at send time and never cached.
type SMTPSender struct {
	// From is the envelope sender address. Falls back to the provider
	// username when empty.
	From string
}

// NewSMTPSender creates the real sender.
func NewSMTPSender(from string) *SMTPSender {
	return &SMTPSender{From: from}
}

// Send connects to the configured host and delivers a short test message.
func (s *SMTPSender) Send(ctx context.Context, cfg SMTPConfig, recipient string) error {
	from := s.From
	if from == "" {
		from = cfg.Username
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject("mailadmin test email")
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("This is a test email sent through the %s provider.", cfg.Provider))

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.Secure {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	// Port 465 speaks implicit TLS instead of STARTTLS.
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSLPort(false))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending test email via %s: %w", cfg.Host, err)
	}

	return nil
}
