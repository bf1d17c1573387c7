package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/auth"
	"github.com/veltra/pos-admin-service/internal/product"
	"github.com/veltra/pos-admin-service/internal/product/dto"
	"github.com/veltra/pos-admin-service/internal/requestid"
)

type ProductHandler struct {
	uc     product.UseCase
	logger *zap.Logger
}

func NewProductHandler(uc product.UseCase, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger}
}

type createProductRequest struct {
	WarehouseID string  `json:"warehouse_id" binding:"required"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, _ := auth.PrincipalFrom(c)
	input := &dto.CreateProductInput{
		WarehouseID: req.WarehouseID,
		Category:    req.Category,
		SKU:         req.SKU,
		Name:        req.Name,
		Price:       req.Price,
		RequestID:   requestid.From(c),
	}
	if p != nil {
		input.CreatedBy = p.Email
		input.UserRole = string(p.Role)
	}

	created, err := h.uc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "create product", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) List(c *gin.Context) {
	filters := &dto.ProductFilters{
		WarehouseID: c.Query("warehouse_id"),
		Category:    c.Query("category"),
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "page_size", 50),
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}

	products, count, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "list products", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    count,
		"page":     filters.Page,
	})
}

type updateProductRequest struct {
	Category string  `json:"category"`
	SKU      string  `json:"sku" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	IsActive bool    `json:"is_active"`
	Version  int64   `json:"version" binding:"required"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, _ := auth.PrincipalFrom(c)
	input := &dto.UpdateProductInput{
		ID:        c.Param("id"),
		Category:  req.Category,
		SKU:       req.SKU,
		Name:      req.Name,
		Price:     req.Price,
		IsActive:  req.IsActive,
		Version:   req.Version,
		RequestID: requestid.From(c),
	}
	if p != nil {
		input.UserRole = string(p.Role)
	}

	updated, err := h.uc.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "update product", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	role := ""
	if p != nil {
		role = string(p.Role)
	}

	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id"), requestid.From(c), role); err != nil {
		h.fail(c, "delete product", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (h *ProductHandler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, _ := auth.PrincipalFrom(c)
	role := ""
	if p != nil {
		role = string(p.Role)
	}

	deleted, err := h.uc.BulkDeleteProducts(c.Request.Context(), req.IDs, requestid.From(c), role)
	if err != nil {
		h.fail(c, "bulk delete products", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	filters := &dto.ProductFilters{
		WarehouseID: c.Query("warehouse_id"),
		SearchQuery: q,
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "page_size", 50),
	}

	products, count, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "search products", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": count})
}

func (h *ProductHandler) fail(c *gin.Context, op string, err error) {
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
