package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veltra/pos-admin-service/config"
)

func testResolver() *RoleResolver {
	return NewRoleResolver(
		config.AuthConfig{
			AdminEmails: []string{"boss@shop.test"},
			AdminDomain: "hq.shop.test",
		},
		config.POSConfig{
			Accounts: []string{"till1@shop.test", "till2@shop.test"},
		},
	)
}

func TestDeriveRole(t *testing.T) {
	r := testResolver()

	assert.Equal(t, RoleAdmin, r.Derive("boss@shop.test"))
	assert.Equal(t, RoleAdmin, r.Derive("anyone@hq.shop.test"))
	assert.Equal(t, RolePOS, r.Derive("till1@shop.test"))
	assert.Equal(t, RoleStaff, r.Derive("clerk@shop.test"))
}

func TestDeriveRoleIsDeterministic(t *testing.T) {
	r := testResolver()

	for i := 0; i < 10; i++ {
		assert.Equal(t, RoleAdmin, r.Derive("boss@shop.test"))
		assert.Equal(t, RoleStaff, r.Derive("clerk@shop.test"))
	}
}

func TestDeriveRoleNormalizesEmail(t *testing.T) {
	r := testResolver()

	assert.Equal(t, RoleAdmin, r.Derive("  BOSS@Shop.Test "))
	assert.Equal(t, RolePOS, r.Derive("TILL1@SHOP.TEST"))
}
