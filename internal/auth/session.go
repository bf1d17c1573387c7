package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/veltra/pos-admin-service/config"
	"github.com/veltra/pos-admin-service/internal/apperr"
)

// devFallbackSecret keeps local development working without SESSION_SECRET.
// In production an empty secret fails every session operation closed.
const devFallbackSecret = "pos-admin-dev-session-secret"

type Principal struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies the session cookie value.
type Codec struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	production bool
	now        func() time.Time
}

func NewCodec(cfg config.SessionConfig, production bool) *Codec {
	return &Codec{
		secret:     []byte(cfg.Secret),
		ttl:        time.Duration(cfg.TTLHours) * time.Hour,
		cookieName: cfg.CookieName,
		production: production,
		now:        time.Now,
	}
}

func (c *Codec) CookieName() string { return c.cookieName }

func (c *Codec) TTL() time.Duration { return c.ttl }

func (c *Codec) key() ([]byte, error) {
	if len(c.secret) > 0 {
		return c.secret, nil
	}
	if c.production {
		return nil, apperr.ServerMisconfigured("session secret not configured")
	}
	return []byte(devFallbackSecret), nil
}

// Issue produces a signed token for the principal, expiring after the
// configured TTL.
func (c *Codec) Issue(email string, role Role) (string, time.Time, error) {
	key, err := c.key()
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := c.now().Add(c.ttl)
	claims := sessionClaims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, apperr.Upstream(err)
	}
	return token, expiresAt, nil
}

// Verify checks signature and expiry. Tampered, expired or malformed tokens
// all come back as Unauthorized; only a missing production secret surfaces
// as ServerMisconfigured.
func (c *Codec) Verify(token string) (*Principal, error) {
	key, err := c.key()
	if err != nil {
		return nil, err
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || claims.Email == "" {
		return nil, apperr.Unauthorized("invalid or expired session")
	}

	return &Principal{Email: claims.Email, Role: Role(claims.Role)}, nil
}
