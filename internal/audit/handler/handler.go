package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/audit"
)

type AuditHandler struct {
	repo   audit.Repository
	logger *zap.Logger
}

func NewAuditHandler(repo audit.Repository, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{repo: repo, logger: logger}
}

func (h *AuditHandler) List(c *gin.Context) {
	filters := &audit.Filters{
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		Status:     c.Query("status"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 50),
	}

	logs, count, err := h.repo.FindAll(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("list audit logs failed", zap.Error(err))
		c.JSON(apperr.Status(err), gin.H{"error": apperr.ClientMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": count})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
