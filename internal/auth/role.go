package auth

import (
	"strings"

	"github.com/veltra/pos-admin-service/config"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RolePOS   Role = "pos"
	RoleStaff Role = "staff"
)

// RoleResolver derives a role from an email. The derivation is the only
// source of authorization level in the system: role claims arriving from
// clients are never trusted, every check recomputes the role here.
type RoleResolver struct {
	adminEmails map[string]struct{}
	adminDomain string
	posAccounts map[string]struct{}
}

func NewRoleResolver(authCfg config.AuthConfig, posCfg config.POSConfig) *RoleResolver {
	r := &RoleResolver{
		adminEmails: make(map[string]struct{}, len(authCfg.AdminEmails)),
		adminDomain: strings.ToLower(authCfg.AdminDomain),
		posAccounts: make(map[string]struct{}, len(posCfg.Accounts)),
	}
	for _, e := range authCfg.AdminEmails {
		r.adminEmails[normalizeEmail(e)] = struct{}{}
	}
	for _, e := range posCfg.Accounts {
		r.posAccounts[normalizeEmail(e)] = struct{}{}
	}
	return r
}

// Derive maps an email to its role. Same email, same role, always.
func (r *RoleResolver) Derive(email string) Role {
	email = normalizeEmail(email)

	if _, ok := r.adminEmails[email]; ok {
		return RoleAdmin
	}
	if r.adminDomain != "" {
		if _, domain, found := strings.Cut(email, "@"); found && domain == r.adminDomain {
			return RoleAdmin
		}
	}
	if _, ok := r.posAccounts[email]; ok {
		return RolePOS
	}
	return RoleStaff
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
