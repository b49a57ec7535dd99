package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/2beens/memberhub/internal/telemetry/tracing"
)

var ErrSMTPNotConfigured = errors.New("smtp not configured")

// SMTPConfig is the per-gym outgoing mail configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Validate() error {
	if strings.TrimSpace(c.Host) == "" || c.Port <= 0 || strings.TrimSpace(c.From) == "" {
		return ErrSMTPNotConfigured
	}
	return nil
}

type Mail struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender builds a fresh SMTP client per mail, gyms do not share a server.
type Sender struct {
	fromName string
	// ability to swap the transport in tests
	sendFunc func(ctx context.Context, cfg SMTPConfig, msg *mail.Msg) error
}

func NewSender(fromName string) *Sender {
	return &Sender{
		fromName: fromName,
		sendFunc: dialAndSend,
	}
}

func (s *Sender) Send(ctx context.Context, cfg SMTPConfig, m Mail) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mailer.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := cfg.Validate(); err != nil {
		return err
	}

	msg, err := s.buildMsg(cfg, m)
	if err != nil {
		return err
	}

	if err := s.sendFunc(ctx, cfg, msg); err != nil {
		return fmt.Errorf("send mail via %s: %w", cfg.Host, err)
	}

	log.Debugf("mail [%s] sent via %s", m.Subject, cfg.Host)
	return nil
}

func (s *Sender) buildMsg(cfg SMTPConfig, m Mail) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.fromName, cfg.From); err != nil {
		return nil, fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.TextBody)
	if m.HTMLBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTMLBody)
	}
	return msg, nil
}

func dialAndSend(ctx context.Context, cfg SMTPConfig, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("new smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
