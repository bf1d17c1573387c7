package auth

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/veltra/pos-admin-service/config"
	"github.com/veltra/pos-admin-service/internal/apperr"
)

// PasswordGate restricts the shared POS accounts to their configured
// passwords. Accounts outside the restricted set pass with no password
// check, matching the email-derived session model.
type PasswordGate struct {
	restricted map[string]struct{}
	passwords  map[string]string
}

func NewPasswordGate(cfg config.POSConfig) *PasswordGate {
	g := &PasswordGate{
		restricted: make(map[string]struct{}, len(cfg.Accounts)),
		passwords:  make(map[string]string, len(cfg.Passwords)),
	}
	for _, e := range cfg.Accounts {
		g.restricted[normalizeEmail(e)] = struct{}{}
	}
	for e, pw := range cfg.Passwords {
		g.passwords[normalizeEmail(e)] = pw
	}
	return g
}

func (g *PasswordGate) Restricted(email string) bool {
	_, ok := g.restricted[normalizeEmail(email)]
	return ok
}

// Check validates the password for restricted accounts. A restricted account
// with no configured secret is denied outright, never allowed through.
func (g *PasswordGate) Check(email, password string) error {
	if !g.Restricted(email) {
		return nil
	}

	secret := g.passwords[normalizeEmail(email)]
	if secret == "" {
		return apperr.Unauthorized("account login is not configured")
	}

	// Hashing both sides first makes the comparison constant-time even for
	// inputs of different length.
	want := sha256.Sum256([]byte(secret))
	got := sha256.Sum256([]byte(password))
	if subtle.ConstantTimeCompare(want[:], got[:]) != 1 {
		return apperr.Unauthorized("invalid credentials")
	}
	return nil
}
