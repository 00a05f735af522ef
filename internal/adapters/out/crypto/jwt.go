package crypto

import (
	"errors"
	"fmt"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

var ErrSecretTooShort = errors.New("token secret must be at least 32 bytes")

// SessionClaims is the token payload. The subject is the user id.
type SessionClaims struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	Environment string `json:"env"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. It implements
// ports.TokenService.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, ErrSecretTooShort
	}
	return &TokenService{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

func (s *TokenService) Issue(session kernel.Session) (string, time.Time, error) {
	if err := session.Validate(); err != nil {
		return "", time.Time{}, err
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := SessionClaims{
		Email:       session.Email(),
		Role:        session.Role().String(),
		Environment: session.Environment().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Identity().String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse returns errs.ErrUnauthenticated, wrapped with the reason, for any
// token that is not valid, expired or signed with another key.
func (s *TokenService) Parse(token string) (kernel.Session, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return kernel.Session{}, fmt.Errorf("%w: %w", errs.ErrUnauthenticated, err)
	}

	identity, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Session{}, fmt.Errorf("%w: subject: %w", errs.ErrUnauthenticated, err)
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Session{}, fmt.Errorf("%w: %w", errs.ErrUnauthenticated, err)
	}
	env, err := kernel.ParseEnvironment(claims.Environment)
	if err != nil {
		return kernel.Session{}, fmt.Errorf("%w: %w", errs.ErrUnauthenticated, err)
	}

	session, err := kernel.NewSession(identity, role, env)
	if err != nil {
		return kernel.Session{}, fmt.Errorf("%w: %w", errs.ErrUnauthenticated, err)
	}
	return session.WithEmail(claims.Email), nil
}

// WithEnvironment re-issues a session's token for another environment. The
// environment switch on the dashboard calls it.
func (s *TokenService) WithEnvironment(session kernel.Session, env kernel.Environment) (string, time.Time, error) {
	switched, err := kernel.NewSession(session.Identity(), session.Role(), env)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.Issue(switched.WithEmail(session.Email()))
}
