package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/requestid"
	"github.com/veltra/pos-admin-service/internal/warehouse"
	"github.com/veltra/pos-admin-service/internal/warehouse/dto"
)

type WarehouseHandler struct {
	uc     warehouse.UseCase
	logger *zap.Logger
}

func NewWarehouseHandler(uc warehouse.UseCase, logger *zap.Logger) *WarehouseHandler {
	return &WarehouseHandler{uc: uc, logger: logger}
}

type warehouseRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Address  string `json:"address"`
	IsActive bool   `json:"is_active"`
}

func (h *WarehouseHandler) Create(c *gin.Context) {
	var req warehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.uc.CreateWarehouse(c.Request.Context(), &dto.CreateWarehouseInput{
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
	})
	if err != nil {
		h.fail(c, "create warehouse", err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *WarehouseHandler) Get(c *gin.Context) {
	w, err := h.uc.GetWarehouse(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get warehouse", err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WarehouseHandler) List(c *gin.Context) {
	warehouses, err := h.uc.ListWarehouses(c.Request.Context())
	if err != nil {
		h.fail(c, "list warehouses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warehouses": warehouses})
}

func (h *WarehouseHandler) Update(c *gin.Context) {
	var req warehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.uc.UpdateWarehouse(c.Request.Context(), &dto.UpdateWarehouseInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Code:     req.Code,
		Address:  req.Address,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.fail(c, "update warehouse", err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WarehouseHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteWarehouse(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete warehouse", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *WarehouseHandler) fail(c *gin.Context, op string, err error) {
	if apperr.Status(err) >= http.StatusInternalServerError {
		h.logger.Error(op+" failed",
			zap.String("request_id", requestid.From(c)),
			zap.Error(err),
		)
	}
	c.JSON(apperr.Status(err), gin.H{"error": apperr.ClientMessage(err)})
}
