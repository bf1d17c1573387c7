package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRouter(t *testing.T) (*gin.Engine, *Codec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec := testCodec(false)
	guard := NewGuard(codec, testResolver(), zap.NewNop())

	r := gin.New()
	r.GET("/me", guard.RequireAuth(), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": p.Email, "role": p.Role})
	})
	r.GET("/admin", guard.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, codec
}

func get(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "pos_session", Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGuardRejectsMissingCookie(t *testing.T) {
	r, _ := testRouter(t)

	w := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuardRejectsGarbageCookie(t *testing.T) {
	r, _ := testRouter(t)

	w := get(r, "/me", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuardAdmitsValidSession(t *testing.T) {
	r, codec := testRouter(t)

	token, _, err := codec.Issue("clerk@shop.test", RoleStaff)
	require.NoError(t, err)

	w := get(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "clerk@shop.test")
}

func TestGuardForbidsNonAdminOnAdminRoutes(t *testing.T) {
	r, codec := testRouter(t)

	token, _, err := codec.Issue("clerk@shop.test", RoleStaff)
	require.NoError(t, err)

	w := get(r, "/admin", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGuardAdmitsAdminOnAdminRoutes(t *testing.T) {
	r, codec := testRouter(t)

	token, _, err := codec.Issue("boss@shop.test", RoleAdmin)
	require.NoError(t, err)

	w := get(r, "/admin", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardRecomputesRoleFromEmail(t *testing.T) {
	r, codec := testRouter(t)

	// A forged role claim never grants access. The guard derives the role
	// from the authenticated email on every request.
	token, _, err := codec.Issue("clerk@shop.test", RoleAdmin)
	require.NoError(t, err)

	w := get(r, "/admin", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
