package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/audit"
	"github.com/veltra/pos-admin-service/internal/model"
	"github.com/veltra/pos-admin-service/internal/product"
	"github.com/veltra/pos-admin-service/internal/product/dto"
	"github.com/veltra/pos-admin-service/pkg/cache"
	"github.com/veltra/pos-admin-service/pkg/search"
)

const productIndex = "products"

type productUseCase struct {
	repo     product.Repository
	cache    *cache.RedisClient
	es       *search.Client
	recorder *audit.Recorder
	logger   *zap.Logger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, recorder *audit.Recorder, logger *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		cache:    cache,
		es:       es,
		recorder: recorder,
		logger:   logger,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if input.WarehouseID == "" || input.SKU == "" || input.Name == "" {
		return nil, apperr.Validation("warehouse_id, sku and name are required")
	}
	if input.Price < 0 {
		return nil, apperr.Validation("price must not be negative")
	}

	unique, err := uc.repo.IsSKUUnique(ctx, input.WarehouseID, input.SKU, "")
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	if !unique {
		return nil, apperr.Conflict("sku already exists in warehouse")
	}

	now := time.Now()
	var category *string
	if input.Category != "" {
		category = &input.Category
	}

	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		WarehouseID: input.WarehouseID,
		Category:    category,
		SKU:         input.SKU,
		Name:        input.Name,
		Price:       input.Price,
		Version:     1,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		uc.record(audit.Entry{
			Status: model.AuditStatusFailed, EntityType: "product", EntityID: p.ID,
			WarehouseID: input.WarehouseID, RequestID: input.RequestID,
			UserRole: input.UserRole, Message: "create failed",
		})
		return nil, apperr.Upstream(err)
	}

	uc.record(audit.Entry{
		Status: model.AuditStatusSuccess, EntityType: "product", EntityID: p.ID,
		WarehouseID: input.WarehouseID, RequestID: input.RequestID, UserRole: input.UserRole,
	})

	go uc.invalidateListCache(context.Background(), p.WarehouseID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	if p == nil {
		return nil, apperr.NotFound("product not found")
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := uc.listCacheKey(filters)
	if uc.cache != nil && cacheKey != "" {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var cached struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("search fell back to database", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperr.Upstream(err)
	}

	if uc.cache != nil && cacheKey != "" {
		payload := struct {
			Products []model.Product
			Count    int
		}{products, count}
		if data, err := json.Marshal(payload); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if input.ID == "" || input.SKU == "" || input.Name == "" {
		return nil, apperr.Validation("id, sku and name are required")
	}
	if input.Version <= 0 {
		return nil, apperr.Validation("version is required")
	}

	current, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	if current == nil {
		return nil, apperr.NotFound("product not found")
	}

	if current.SKU != input.SKU {
		unique, err := uc.repo.IsSKUUnique(ctx, current.WarehouseID, input.SKU, current.ID)
		if err != nil {
			return nil, apperr.Upstream(err)
		}
		if !unique {
			return nil, apperr.Conflict("sku already exists in warehouse")
		}
	}

	updated := *current
	updated.SKU = input.SKU
	updated.Name = input.Name
	updated.Price = input.Price
	updated.IsActive = input.IsActive
	if input.Category != "" {
		cat := input.Category
		updated.Category = &cat
	} else {
		updated.Category = nil
	}
	updated.UpdatedAt = time.Now()

	rows, err := uc.repo.UpdateVersioned(ctx, &updated, input.Version)
	if err != nil {
		uc.record(audit.Entry{
			Status: model.AuditStatusFailed, EntityType: "product", EntityID: input.ID,
			WarehouseID: current.WarehouseID, RequestID: input.RequestID,
			UserRole: input.UserRole, Message: "update failed",
		})
		return nil, apperr.Upstream(err)
	}
	if rows == 0 {
		// The row existed a moment ago, so zero rows means the version moved.
		uc.record(audit.Entry{
			Status: model.AuditStatusFailed, EntityType: "product", EntityID: input.ID,
			WarehouseID: current.WarehouseID, RequestID: input.RequestID,
			UserRole: input.UserRole, Message: "version conflict",
		})
		return nil, apperr.Conflict("product was modified by another request")
	}
	updated.Version = input.Version + 1

	uc.record(audit.Entry{
		Status: model.AuditStatusSuccess, EntityType: "product", EntityID: updated.ID,
		WarehouseID: updated.WarehouseID, RequestID: input.RequestID, UserRole: input.UserRole,
	})

	go uc.invalidateListCache(context.Background(), updated.WarehouseID)
	go uc.syncToElastic(context.Background(), &updated)

	return &updated, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string, requestID, userRole string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Upstream(err)
	}
	if p == nil {
		return apperr.NotFound("product not found")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.record(audit.Entry{
			Status: model.AuditStatusFailed, EntityType: "product", EntityID: id,
			WarehouseID: p.WarehouseID, RequestID: requestID, UserRole: userRole,
			Message: "delete failed",
		})
		return apperr.Upstream(err)
	}

	uc.record(audit.Entry{
		Status: model.AuditStatusSuccess, EntityType: "product", EntityID: id,
		WarehouseID: p.WarehouseID, RequestID: requestID, UserRole: userRole,
	})

	go uc.invalidateListCache(context.Background(), p.WarehouseID)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
				uc.logger.Error("failed to delete product from index", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) BulkDeleteProducts(ctx context.Context, ids []string, requestID, userRole string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperr.Validation("ids must not be empty")
	}

	deleted, err := uc.repo.BulkDelete(ctx, ids)
	if err != nil {
		uc.record(audit.Entry{
			Status: model.AuditStatusFailed, EntityType: "product", EntityID: "bulk",
			RequestID: requestID, UserRole: userRole, Message: "bulk delete failed",
		})
		return 0, apperr.Upstream(err)
	}

	uc.record(audit.Entry{
		Status: model.AuditStatusSuccess, EntityType: "product", EntityID: "bulk",
		RequestID: requestID, UserRole: userRole,
		Message: fmt.Sprintf("deleted %d products", deleted),
	})

	if uc.es != nil {
		go func() {
			for _, id := range ids {
				if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
					uc.logger.Error("failed to delete product from index", zap.Error(err))
				}
			}
		}()
	}

	return deleted, nil
}

func (uc *productUseCase) record(e audit.Entry) {
	if uc.recorder != nil {
		uc.recorder.Record(e)
	}
}

func (uc *productUseCase) listCacheKey(filters *dto.ProductFilters) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("products:list:%s:%x", filters.WarehouseID, md5.Sum(data))
}

func (uc *productUseCase) invalidateListCache(ctx context.Context, warehouseID string) {
	if uc.cache == nil {
		return
	}
	pattern := fmt.Sprintf("products:list:%s:*", warehouseID)
	keys, err := uc.cache.Client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"warehouse_id": { "type": "keyword" },
				"category": { "type": "keyword" },
				"sku": { "type": "keyword" },
				"name": { "type": "text" },
				"price": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]any{
		{
			"query_string": map[string]any{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "sku"},
			},
		},
	}
	if filters.WarehouseID != "" {
		must = append(must, map[string]any{
			"term": map[string]any{"warehouse_id": filters.WarehouseID},
		})
	}

	q := map[string]any{
		"query": map[string]any{"bool": map[string]any{"must": must}},
	}
	if filters.PageSize > 0 {
		q["from"] = (filters.Page - 1) * filters.PageSize
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, productIndex, q)
	if err != nil {
		return nil, 0, err
	}

	var products []model.Product
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}
