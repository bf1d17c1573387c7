// Package requestid tags every request with a correlation id used in logs
// and audit entries.
package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextKey = "request.id"
	Header     = "X-Request-ID"
)

// Middleware reuses a caller-supplied X-Request-ID or generates one.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(contextKey, id)
		c.Header(Header, id)
		c.Next()
	}
}

func From(c *gin.Context) string {
	return c.GetString(contextKey)
}
