package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/config"
	"github.com/veltra/pos-admin-service/internal/auth"
)

func newLoginRouter(production bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	codec := auth.NewCodec(config.SessionConfig{
		Secret: "test-secret", TTLHours: 8, CookieName: "pos_session",
	}, production)
	roles := auth.NewRoleResolver(config.AuthConfig{}, config.POSConfig{})
	gate := auth.NewPasswordGate(config.POSConfig{})
	h := NewAuthHandler(codec, roles, gate, production, zap.NewNop())

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	return r
}

func postLogin(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"email":"clerk@shop.test"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "pos_session" {
			return c
		}
	}
	t.Fatal("pos_session cookie not set")
	return nil
}

func TestLoginCookieIsSecureInProduction(t *testing.T) {
	w := postLogin(newLoginRouter(true), "/login")
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
}

func TestLoginCookieIsPlainInDevelopment(t *testing.T) {
	w := postLogin(newLoginRouter(false), "/login")
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	assert.False(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
}

func TestLogoutClearsCookieWithMatchingFlags(t *testing.T) {
	w := postLogin(newLoginRouter(true), "/logout")
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.Secure)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
