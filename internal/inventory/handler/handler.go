package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/auth"
	"github.com/veltra/pos-admin-service/internal/inventory"
	"github.com/veltra/pos-admin-service/internal/inventory/dto"
	"github.com/veltra/pos-admin-service/internal/requestid"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger *zap.Logger
}

func NewInventoryHandler(uc inventory.UseCase, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: logger}
}

func (h *InventoryHandler) Get(c *gin.Context) {
	inv, sizes, err := h.uc.GetInventory(c.Request.Context(), c.Query("warehouse_id"), c.Query("product_id"))
	if err != nil {
		h.fail(c, "get inventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": inv, "sizes": sizes})
}

func (h *InventoryHandler) List(c *gin.Context) {
	filters := &dto.InventoryFilters{
		WarehouseID: c.Query("warehouse_id"),
		ProductID:   c.Query("product_id"),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "page_size", 50),
	}

	items, count, err := h.uc.ListInventory(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "list inventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": count})
}

type setQuantityRequest struct {
	WarehouseID string `json:"warehouse_id" binding:"required"`
	ProductID   string `json:"product_id" binding:"required"`
	Quantity    int64  `json:"quantity"`
	Reason      string `json:"reason"`
}

func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &dto.SetQuantityInput{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		RequestID:   requestid.From(c),
	}
	if p, ok := auth.PrincipalFrom(c); ok {
		input.UserRole = string(p.Role)
		input.UserEmail = p.Email
	}

	inv, err := h.uc.SetQuantity(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "set quantity", err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

type replaceSizesRequest struct {
	WarehouseID string             `json:"warehouse_id" binding:"required"`
	ProductID   string             `json:"product_id" binding:"required"`
	Sizes       []dto.SizeRowInput `json:"sizes"`
}

func (h *InventoryHandler) ReplaceSizes(c *gin.Context) {
	var req replaceSizesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &dto.ReplaceSizesInput{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Rows:        req.Sizes,
		RequestID:   requestid.From(c),
	}
	if p, ok := auth.PrincipalFrom(c); ok {
		input.UserRole = string(p.Role)
	}

	aggregate, sizes, err := h.uc.ReplaceSizes(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "replace sizes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": aggregate, "sizes": sizes})
}

type returnStockRequest struct {
	WarehouseID string                `json:"warehouse_id" binding:"required"`
	ReferenceID string                `json:"reference_id"`
	Items       []dto.ReturnItemInput `json:"items"`
}

func (h *InventoryHandler) ReturnStock(c *gin.Context) {
	var req returnStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &dto.ProcessReturnInput{
		WarehouseID: req.WarehouseID,
		Items:       req.Items,
		ReferenceID: req.ReferenceID,
		RequestID:   requestid.From(c),
	}
	if p, ok := auth.PrincipalFrom(c); ok {
		input.UserRole = string(p.Role)
		input.UserEmail = p.Email
	}

	if err := h.uc.ProcessReturnStock(c.Request.Context(), input); err != nil {
		h.fail(c, "process return stock", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "applied"})
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	items, count, err := h.uc.ListMovements(
		c.Request.Context(),
		c.Query("warehouse_id"),
		c.Query("product_id"),
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 50),
	)
	if err != nil {
		h.fail(c, "list movements", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": items, "total": count})
}

func (h *InventoryHandler) fail(c *gin.Context, op string, err error) {
	if apperr.Status(err) >= http.StatusInternalServerError {
		h.logger.Error(op+" failed",
			zap.String("request_id", requestid.From(c)),
			zap.Error(err),
		)
	}
	c.JSON(apperr.Status(err), gin.H{"error": apperr.ClientMessage(err)})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
