package ports

import (
	"context"
	"io"
	"time"

	"shipflow/internal/core/domain/model/kernel"
)

// AdminNotifier tells an administrator that someone asked for an account.
type AdminNotifier interface {
	NotifyRegistration(ctx context.Context, name, email string) (messageID string, err error)
}

// BlobStore keeps attachment bytes. Keys are opaque to the core.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
}

// PasswordHasher produces and checks self-describing password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// TokenService turns a session into a bearer token and back.
type TokenService interface {
	Issue(session kernel.Session) (token string, expiresAt time.Time, err error)
	Parse(token string) (kernel.Session, error)
}

// MailMessage is a plain-text email.
type MailMessage struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// MailSender delivers email and returns the Message-ID it used.
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) (messageID string, err error)
}
