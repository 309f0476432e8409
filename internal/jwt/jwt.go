package jwt

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned for a JWT whose exp claim has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed is returned for a token that looks like a JWT but cannot be decoded.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenEmpty is returned for an empty token.
	ErrTokenEmpty = errors.New("token empty")
)

// Claims are the registered claims the client cares about.
type Claims struct {
	Subject   string
	ExpiresAt time.Time // zero when the token does not expire
	IssuedAt  time.Time
}

// Inspector reads the claims of a bearer token issued by the backend.
// The client has no signing key, so signatures are not verified: the
// backend remains the authority and the inspector only detects tokens that
// are already expired or garbled.
type Inspector struct {
	leeway time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLeeway tolerates clock skew when checking exp.
func WithLeeway(d time.Duration) Option {
	return func(i *Inspector) { i.leeway = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(i *Inspector) { i.now = now }
}

// New creates an Inspector.
func New(opts ...Option) *Inspector {
	i := &Inspector{
		now:    time.Now,
		parser: jwt.NewParser(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// IsJWT reports whether the token has the three-segment JWT layout.
// Anything else is treated as an opaque token.
func IsJWT(token string) bool {
	return strings.Count(token, ".") == 2
}

// GetClaims decodes the claims of a JWT without verifying its signature.
func (i *Inspector) GetClaims(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrTokenEmpty
	}
	if !IsJWT(token) {
		return nil, ErrTokenMalformed
	}

	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return nil, errors.Join(ErrTokenMalformed, err)
	}

	out := &Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, errors.Join(ErrTokenMalformed, err)
	}
	if exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}

// Validate returns nil for a usable token. Opaque tokens are always usable;
// JWTs must decode and must not be past exp.
func (i *Inspector) Validate(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenEmpty
	}
	if !IsJWT(token) {
		return nil
	}
	claims, err := i.GetClaims(ctx, token)
	if err != nil {
		return err
	}
	if !claims.ExpiresAt.IsZero() && i.now().After(claims.ExpiresAt.Add(i.leeway)) {
		return ErrTokenExpired
	}
	return nil
}
