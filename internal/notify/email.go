package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/tvtrack/internal/checker"
	"github.com/vmunix/tvtrack/internal/config"
)

const implicitTLSPort = 465

// ErrNoRecipients is returned when the recipient list is empty.
var ErrNoRecipients = errors.New("no recipients specified")

// Email sends digests through an SMTP relay. Port 465 uses implicit TLS;
// any other port upgrades with STARTTLS when the server offers it.
type Email struct {
	host       string
	port       int
	sender     string
	password   string
	recipients []string
	subject    string
	timeout    time.Duration
	log        *slog.Logger
	now        func() time.Time
}

var _ checker.Notifier = (*Email)(nil)

// EmailOption configures an Email notifier.
type EmailOption func(*Email)

// WithTimeout bounds the whole SMTP exchange.
func WithTimeout(d time.Duration) EmailOption {
	return func(e *Email) {
		e.timeout = d
	}
}

// WithClock sets the clock used for the digest header and Date field.
func WithClock(now func() time.Time) EmailOption {
	return func(e *Email) {
		e.now = now
	}
}

// NewEmail creates an email notifier from config.
func NewEmail(cfg config.EmailConfig, log *slog.Logger, opts ...EmailOption) *Email {
	if log == nil {
		log = slog.Default()
	}
	e := &Email{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		sender:     cfg.Sender,
		password:   cfg.Password,
		recipients: parseAddresses(cfg.Recipient),
		subject:    cfg.Subject,
		timeout:    30 * time.Second,
		log:        log.With("component", "email"),
		now:        time.Now,
	}
	if e.host == "" {
		e.host = config.DefaultSMTPHost
	}
	if e.port == 0 {
		e.port = config.DefaultSMTPPort
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Notify renders the report and sends it as one message.
func (e *Email) Notify(ctx context.Context, report *checker.Report) error {
	digest := BuildDigest(report, e.now())
	if e.subject != "" {
		digest.Subject = e.subject
	}
	return e.Send(ctx, digest)
}

// Send delivers a rendered digest.
func (e *Email) Send(ctx context.Context, d Digest) error {
	if len(e.recipients) == 0 {
		return ErrNoRecipients
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	msg := buildMessage(e.sender, e.recipients, d, e.now())
	addr := net.JoinHostPort(e.host, strconv.Itoa(e.port))

	client, err := e.dial(ctx, addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if e.port != implicitTLSPort {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(e.tlsConfig()); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	var auth smtp.Auth
	if e.password != "" {
		auth = smtp.PlainAuth("", e.sender, e.password, e.host)
	}
	if err := authenticateAndSetEnvelope(client, auth, e.sender, e.recipients); err != nil {
		return err
	}
	if err := writeMessageData(client, msg); err != nil {
		return err
	}

	e.log.Info("email sent", "recipients", len(e.recipients), "subject", d.Subject)
	return nil
}

func (e *Email) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: e.host,
		MinVersion: tls.VersionTLS12,
	}
}

func (e *Email) dial(ctx context.Context, addr string) (*smtp.Client, error) {
	var (
		conn net.Conn
		err  error
	)
	if e.port == implicitTLSPort {
		dialer := &tls.Dialer{Config: e.tlsConfig()}
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	} else {
		var dialer net.Dialer
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, e.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}
	return client, nil
}

func authenticateAndSetEnvelope(client *smtp.Client, auth smtp.Auth, from string, recipients []string) error {
	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authenticate: %w", err)
		}
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("set recipient %s: %w", rcpt, err)
		}
	}
	return nil
}

func writeMessageData(client *smtp.Client, message string) error {
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("open data writer: %w", err)
	}
	if _, err := w.Write([]byte(message)); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data writer: %w", err)
	}
	return client.Quit()
}

func buildMessage(from string, to []string, d Digest, now time.Time) string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", d.Subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", now.Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(d.Body, "\n", "\r\n"))
	return msg.String()
}

func parseAddresses(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	addrs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			addrs = append(addrs, p)
		}
	}
	return addrs
}
