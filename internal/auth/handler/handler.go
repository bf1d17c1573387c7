package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/auth"
)

type AuthHandler struct {
	codec        *auth.Codec
	roles        *auth.RoleResolver
	gate         *auth.PasswordGate
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthHandler(codec *auth.Codec, roles *auth.RoleResolver, gate *auth.PasswordGate, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{codec: codec, roles: roles, gate: gate, secureCookie: secureCookie, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if err := h.gate.Check(req.Email, req.Password); err != nil {
		h.logger.Warn("login rejected", zap.String("email", req.Email))
		c.JSON(apperr.Status(err), gin.H{"error": apperr.ClientMessage(err)})
		return
	}

	role := h.roles.Derive(req.Email)
	token, expiresAt, err := h.codec.Issue(req.Email, role)
	if err != nil {
		h.logger.Error("failed to issue session", zap.Error(err))
		c.JSON(apperr.Status(err), gin.H{"error": apperr.ClientMessage(err)})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.codec.CookieName(), token, int(h.codec.TTL().Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"email":      req.Email,
		"role":       role,
		"expires_at": expiresAt,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.codec.CookieName(), "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me echoes the authenticated principal. Requires the auth guard.
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	c.JSON(http.StatusOK, p)
}
