package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/auth"
	"github.com/veltra/pos-admin-service/internal/idempotency"
	"github.com/veltra/pos-admin-service/internal/requestid"
	"github.com/veltra/pos-admin-service/internal/sale"
	"github.com/veltra/pos-admin-service/internal/sale/dto"
)

// IdempotencyKeyHeader scopes deduplication of retried sale recordings.
const IdempotencyKeyHeader = "Idempotency-Key"

type SaleHandler struct {
	uc     sale.UseCase
	idem   idempotency.Store
	logger *zap.Logger
}

func NewSaleHandler(uc sale.UseCase, idem idempotency.Store, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, idem: idem, logger: logger}
}

type recordSaleRequest struct {
	WarehouseID string              `json:"warehouse_id" binding:"required"`
	Lines       []dto.SaleLineInput `json:"lines"`
}

func (h *SaleHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	key := c.GetHeader(IdempotencyKeyHeader)
	if key != "" {
		body, ok, err := h.idem.Lookup(ctx, key)
		if err != nil {
			// A broken dedup store must not block the sale itself.
			h.logger.Warn("idempotency lookup failed", zap.Error(err))
		}
		if ok {
			c.Header("Idempotency-Replayed", "true")
			c.Data(http.StatusOK, "application/json", body)
			return
		}
	}

	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &dto.RecordSaleInput{
		WarehouseID: req.WarehouseID,
		Lines:       req.Lines,
		RequestID:   requestid.From(c),
	}
	if p, ok := auth.PrincipalFrom(c); ok {
		input.UserRole = string(p.Role)
		input.UserEmail = p.Email
	}

	s, items, err := h.uc.RecordSale(ctx, input)
	if err != nil {
		h.fail(c, "record sale", err)
		return
	}

	payload, err := json.Marshal(gin.H{"sale": s, "items": items})
	if err != nil {
		h.fail(c, "record sale", apperr.Upstream(err))
		return
	}

	if key != "" {
		if err := h.idem.Save(ctx, key, payload); err != nil {
			h.logger.Warn("idempotency save failed", zap.Error(err))
		}
	}

	c.Data(http.StatusOK, "application/json", payload)
}

func (h *SaleHandler) Get(c *gin.Context) {
	s, items, err := h.uc.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get sale", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": s, "items": items})
}

func (h *SaleHandler) fail(c *gin.Context, op string, err error) {
	if apperr.Status(err) >= http.StatusInternalServerError {
		h.logger.Error(op+" failed",
			zap.String("request_id", requestid.From(c)),
			zap.Error(err),
		)
	}
	c.JSON(apperr.Status(err), gin.H{"error": apperr.ClientMessage(err)})
}
