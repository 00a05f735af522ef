// Package smtp sends plain-text mail through an authenticated SMTP server.
package smtp

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"shipflow/internal/core/ports"

	"github.com/google/uuid"
)

// Config is the submission server and the account the relay sends as.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Sender implements ports.MailSender.
type Sender struct {
	cfg  Config
	send sendFunc
	now  func() time.Time
}

func NewSender(cfg Config) *Sender {
	return &Sender{cfg: cfg, send: smtp.SendMail, now: time.Now}
}

// NewSenderWithTransport replaces the network transport, for tests.
func NewSenderWithTransport(cfg Config, send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) *Sender {
	return &Sender{cfg: cfg, send: send, now: time.Now}
}

// Send returns the Message-ID it stamped on the mail.
func (s *Sender) Send(ctx context.Context, msg ports.MailMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(msg.To) == 0 {
		return "", fmt.Errorf("mail has no recipients")
	}

	from := msg.From
	if from == "" {
		from = s.cfg.Username
	}
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.Host)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(from))
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(strings.Join(msg.To, ", ")))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(msg.Subject)))
	fmt.Fprintf(&b, "Message-ID: %s\r\n", messageID)
	fmt.Fprintf(&b, "Date: %s\r\n", s.now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := s.send(addr, auth, s.cfg.Username, msg.To, []byte(b.String())); err != nil {
		return "", fmt.Errorf("send mail via %s: %w", addr, err)
	}
	return messageID, nil
}

// headerValue folds control characters, CR and LF included, into spaces so a
// value can never start a new header or the body.
func headerValue(v string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, v)
}
