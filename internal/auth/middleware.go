package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
)

const principalKey = "auth.principal"

// Guard turns the session cookie into a request principal. Handlers behind
// the guard can rely on PrincipalFrom returning a value.
type Guard struct {
	codec  *Codec
	roles  *RoleResolver
	logger *zap.Logger
}

func NewGuard(codec *Codec, roles *RoleResolver, logger *zap.Logger) *Guard {
	return &Guard{codec: codec, roles: roles, logger: logger}
}

// RequireAuth aborts with 401 unless the request carries a valid session.
func (g *Guard) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := g.authenticate(c)
		if err != nil {
			g.abort(c, err)
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireAdmin additionally requires the derived role to be admin.
func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := g.authenticate(c)
		if err != nil {
			g.abort(c, err)
			return
		}
		if p.Role != RoleAdmin {
			g.abort(c, apperr.Forbidden("admin role required"))
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

func (g *Guard) authenticate(c *gin.Context) (*Principal, error) {
	cookie, err := c.Cookie(g.codec.CookieName())
	if err != nil || cookie == "" {
		return nil, apperr.Unauthorized("missing session")
	}

	p, err := g.codec.Verify(cookie)
	if err != nil {
		return nil, err
	}

	// The role inside the token is informational only. Authorization always
	// uses the role recomputed from the authenticated email.
	p.Role = g.roles.Derive(p.Email)
	return p, nil
}

func (g *Guard) abort(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindServerMisconfigured {
		g.logger.Error("auth check failed", zap.Error(err))
	}
	c.AbortWithStatusJSON(apperr.Status(err), gin.H{"error": apperr.ClientMessage(err)})
}

// PrincipalFrom returns the principal stored by the guard middleware.
func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}
