package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"time"

	"staffing-site-backend/config"
)

const (
	defaultDialTimeout = 10 * time.Second
	// defaultSendTimeout bounds a whole SMTP conversation, greeting to QUIT
	defaultSendTimeout = 30 * time.Second
)

// SMTPMailer handles sending emails via SMTP
type SMTPMailer struct {
	host        string
	port        string
	username    string
	password    string
	secure      bool // implicit TLS on connect; otherwise STARTTLS when offered
	dialTimeout time.Duration
	sendTimeout time.Duration
	now         func() time.Time
}

// NewSMTPMailer creates a mailer from the SMTP configuration
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		secure:      cfg.SMTPSecure,
		dialTimeout: defaultDialTimeout,
		sendTimeout: defaultSendTimeout,
		now:         time.Now,
	}
}

// IsConfigured checks if the mailer has valid SMTP configuration
func (s *SMTPMailer) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// Send delivers a single message. Each call opens its own connection.
func (s *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	from, _ := mail.ParseAddress(msg.From)
	to, _ := mail.ParseAddress(msg.To)

	body, err := msg.Bytes(s.now())
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	client, release, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := client.Mail(from.Address); err != nil {
		return fmt.Errorf("smtp MAIL FROM rejected: %w", err)
	}
	if err := client.Rcpt(to.Address); err != nil {
		return fmt.Errorf("smtp RCPT TO rejected: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA rejected: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return client.Quit()
}

// Verify connects and authenticates without sending anything
func (s *SMTPMailer) Verify(ctx context.Context) error {
	client, release, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer release()
	return client.Quit()
}

// connect dials and authenticates. The connection carries an I/O deadline of
// sendTimeout (or the context deadline when sooner) and is closed as soon as ctx
// is cancelled. Callers must invoke release once the conversation is over.
func (s *SMTPMailer) connect(ctx context.Context) (*smtp.Client, func(), error) {
	addr := net.JoinHostPort(s.host, s.port)
	dialer := &net.Dialer{Timeout: s.dialTimeout}

	var (
		conn net.Conn
		err  error
	)
	if s.secure {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: s.tlsConfig()}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to smtp server %s: %w", addr, err)
	}

	_ = conn.SetDeadline(s.deadline(ctx))
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	fail := func(err error) (*smtp.Client, func(), error) {
		stop()
		conn.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, fmt.Errorf("%w: %w", err, ctxErr)
		}
		return nil, nil, err
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return fail(fmt.Errorf("smtp handshake failed: %w", err))
	}

	if !s.secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(s.tlsConfig()); err != nil {
				return fail(fmt.Errorf("smtp STARTTLS failed: %w", err))
			}
		}
	}

	if s.username != "" && s.password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", s.username, s.password, s.host)
			if err := client.Auth(auth); err != nil {
				return fail(fmt.Errorf("smtp authentication failed: %w", err))
			}
		}
	}

	release := func() {
		stop()
		client.Close()
	}
	return client, release, nil
}

func (s *SMTPMailer) deadline(ctx context.Context) time.Time {
	timeout := s.sendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}

func (s *SMTPMailer) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: s.host,
		MinVersion: tls.VersionTLS12,
	}
}
