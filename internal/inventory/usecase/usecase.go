package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/audit"
	"github.com/veltra/pos-admin-service/internal/inventory"
	"github.com/veltra/pos-admin-service/internal/inventory/dto"
	"github.com/veltra/pos-admin-service/internal/model"
	"github.com/veltra/pos-admin-service/pkg/cache"
)

type inventoryUseCase struct {
	repo     inventory.Repository
	cache    *cache.RedisClient
	recorder *audit.Recorder
	logger   *zap.Logger
}

func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, recorder *audit.Recorder, logger *zap.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:     repo,
		cache:    cache,
		recorder: recorder,
		logger:   logger,
	}
}

func (uc *inventoryUseCase) GetInventory(ctx context.Context, warehouseID, productID string) (*model.Inventory, []model.InventorySize, error) {
	if warehouseID == "" || productID == "" {
		return nil, nil, apperr.Validation("warehouse_id and product_id are required")
	}

	inv, err := uc.repo.GetByProduct(ctx, warehouseID, productID)
	if err != nil {
		return nil, nil, apperr.Upstream(err)
	}
	if inv == nil {
		// Zero inventory rather than not-found: untracked pairs read as empty.
		inv = &model.Inventory{
			WarehouseID: warehouseID,
			ProductID:   productID,
			Quantity:    0,
		}
	}

	sizes, err := uc.repo.ListSizes(ctx, warehouseID, productID)
	if err != nil {
		return nil, nil, apperr.Upstream(err)
	}

	return inv, sizes, nil
}

func (uc *inventoryUseCase) ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error) {
	items, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperr.Upstream(err)
	}
	return items, count, nil
}

func (uc *inventoryUseCase) SetQuantity(ctx context.Context, input *dto.SetQuantityInput) (*model.Inventory, error) {
	if input.WarehouseID == "" || input.ProductID == "" {
		return nil, apperr.Validation("warehouse_id and product_id are required")
	}
	if input.Quantity < 0 {
		return nil, apperr.Validation("quantity must not be negative")
	}

	unlock, err := uc.lock(ctx, input.WarehouseID, input.ProductID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := uc.repo.GetByProduct(ctx, input.WarehouseID, input.ProductID)
	if err != nil {
		return nil, apperr.Upstream(err)
	}

	now := time.Now()
	before := int64(0)
	inv := &model.Inventory{
		ID:          uuid.New().String(),
		WarehouseID: input.WarehouseID,
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		UpdatedAt:   now,
	}
	if current != nil {
		inv.ID = current.ID
		before = current.Quantity
	}

	notes := input.Reason
	if notes == "" {
		notes = "manual adjustment"
	}
	var createdBy *string
	if input.UserEmail != "" {
		createdBy = &input.UserEmail
	}

	movement := &model.StockMovement{
		ID:             uuid.New().String(),
		WarehouseID:    input.WarehouseID,
		ProductID:      input.ProductID,
		MovementType:   "adjustment",
		QuantityChange: input.Quantity - before,
		QuantityBefore: before,
		QuantityAfter:  input.Quantity,
		Notes:          notes,
		CreatedBy:      createdBy,
		CreatedAt:      now,
	}

	if err := uc.repo.SetQuantityWithMovement(ctx, inv, movement); err != nil {
		uc.record(audit.Entry{
			Status: model.AuditStatusFailed, EntityType: "inventory", EntityID: input.ProductID,
			WarehouseID: input.WarehouseID, RequestID: input.RequestID,
			UserRole: input.UserRole, Message: "set quantity failed",
		})
		return nil, apperr.Upstream(err)
	}

	uc.record(audit.Entry{
		Status: model.AuditStatusSuccess, EntityType: "inventory", EntityID: input.ProductID,
		WarehouseID: input.WarehouseID, RequestID: input.RequestID, UserRole: input.UserRole,
	})

	return inv, nil
}

func (uc *inventoryUseCase) ReplaceSizes(ctx context.Context, input *dto.ReplaceSizesInput) (*model.Inventory, []model.InventorySize, error) {
	if input.WarehouseID == "" || input.ProductID == "" {
		return nil, nil, apperr.Validation("warehouse_id and product_id are required")
	}

	unlock, err := uc.lock(ctx, input.WarehouseID, input.ProductID)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	rows, total := NormalizeSizeRows(input.WarehouseID, input.ProductID, input.Rows)

	current, err := uc.repo.GetByProduct(ctx, input.WarehouseID, input.ProductID)
	if err != nil {
		return nil, nil, apperr.Upstream(err)
	}

	aggregate := &model.Inventory{
		ID:          uuid.New().String(),
		WarehouseID: input.WarehouseID,
		ProductID:   input.ProductID,
		Quantity:    total,
		UpdatedAt:   time.Now(),
	}
	if current != nil {
		aggregate.ID = current.ID
	}

	if err := uc.repo.ReplaceSizes(ctx, aggregate, rows); err != nil {
		uc.record(audit.Entry{
			Status: model.AuditStatusFailed, EntityType: "inventory", EntityID: input.ProductID,
			WarehouseID: input.WarehouseID, RequestID: input.RequestID,
			UserRole: input.UserRole, Message: "size replacement failed",
		})
		return nil, nil, apperr.Upstream(err)
	}

	uc.record(audit.Entry{
		Status: model.AuditStatusSuccess, EntityType: "inventory", EntityID: input.ProductID,
		WarehouseID: input.WarehouseID, RequestID: input.RequestID, UserRole: input.UserRole,
	})

	return aggregate, rows, nil
}

// NormalizeSizeRows coerces client rows into persistable size rows: rows with
// an empty size code are dropped, quantities are floored to integers and
// clamped to zero. The returned total is the recomputed aggregate, the sum of
// the positive per-size quantities.
func NormalizeSizeRows(warehouseID, productID string, in []dto.SizeRowInput) ([]model.InventorySize, int64) {
	rows := make([]model.InventorySize, 0, len(in))
	var total int64

	for _, r := range in {
		if r.SizeCode == "" {
			continue
		}
		qty := int64(math.Floor(r.Quantity))
		if qty < 0 {
			qty = 0
		}
		rows = append(rows, model.InventorySize{
			ID:          uuid.New().String(),
			WarehouseID: warehouseID,
			ProductID:   productID,
			SizeCode:    r.SizeCode,
			Quantity:    qty,
		})
		if qty > 0 {
			total += qty
		}
	}

	return rows, total
}

func (uc *inventoryUseCase) ProcessReturnStock(ctx context.Context, input *dto.ProcessReturnInput) error {
	if input.WarehouseID == "" {
		return apperr.Validation("warehouse_id is required")
	}
	if len(input.Items) == 0 {
		return apperr.Validation("items must not be empty")
	}
	for _, item := range input.Items {
		if item.ProductID == "" {
			return apperr.Validation("every item needs a product_id")
		}
		if item.Quantity <= 0 {
			return apperr.Validation("quantities must be positive")
		}
	}

	now := time.Now()
	var refID *string
	if input.ReferenceID != "" {
		refID = &input.ReferenceID
	}
	var createdBy *string
	if input.UserEmail != "" {
		createdBy = &input.UserEmail
	}

	movements := make([]model.StockMovement, len(input.Items))
	for i, item := range input.Items {
		movements[i] = model.StockMovement{
			ID:             uuid.New().String(),
			WarehouseID:    input.WarehouseID,
			ProductID:      item.ProductID,
			MovementType:   "return",
			QuantityChange: item.Quantity,
			ReferenceID:    refID,
			Notes:          "stock return",
			CreatedBy:      createdBy,
			CreatedAt:      now,
		}
	}

	if err := uc.repo.IncrementBatch(ctx, input.WarehouseID, movements); err != nil {
		uc.record(audit.Entry{
			Status: model.AuditStatusFailed, EntityType: "inventory", EntityID: "return-batch",
			WarehouseID: input.WarehouseID, RequestID: input.RequestID,
			UserRole: input.UserRole, Message: "return batch failed",
		})
		return apperr.Upstream(err)
	}

	uc.record(audit.Entry{
		Status: model.AuditStatusSuccess, EntityType: "inventory", EntityID: "return-batch",
		WarehouseID: input.WarehouseID, RequestID: input.RequestID, UserRole: input.UserRole,
		Message: fmt.Sprintf("returned %d items", len(input.Items)),
	})

	return nil
}

// ProcessSaleDeduction applies completed-order lines as stock decrements,
// one "sale" movement per line, all lines or none.
func (uc *inventoryUseCase) ProcessSaleDeduction(ctx context.Context, input *dto.ProcessSaleInput) error {
	if input.WarehouseID == "" {
		return apperr.Validation("warehouse_id is required")
	}
	if len(input.Items) == 0 {
		return apperr.Validation("items must not be empty")
	}
	for _, item := range input.Items {
		if item.ProductID == "" {
			return apperr.Validation("every item needs a product_id")
		}
		if item.Quantity <= 0 {
			return apperr.Validation("quantities must be positive")
		}
	}

	now := time.Now()
	var refID *string
	if input.ReferenceID != "" {
		refID = &input.ReferenceID
	}
	var createdBy *string
	if input.UserEmail != "" {
		createdBy = &input.UserEmail
	}

	movements := make([]model.StockMovement, len(input.Items))
	for i, item := range input.Items {
		movements[i] = model.StockMovement{
			ID:             uuid.New().String(),
			WarehouseID:    input.WarehouseID,
			ProductID:      item.ProductID,
			MovementType:   "sale",
			QuantityChange: -item.Quantity,
			ReferenceID:    refID,
			Notes:          "order sale",
			CreatedBy:      createdBy,
			CreatedAt:      now,
		}
	}

	if err := uc.repo.IncrementBatch(ctx, input.WarehouseID, movements); err != nil {
		uc.record(audit.Entry{
			Status: model.AuditStatusFailed, EntityType: "inventory", EntityID: "sale-batch",
			WarehouseID: input.WarehouseID, RequestID: input.RequestID,
			UserRole: input.UserRole, Message: "sale deduction failed",
		})
		return apperr.Upstream(err)
	}

	uc.record(audit.Entry{
		Status: model.AuditStatusSuccess, EntityType: "inventory", EntityID: "sale-batch",
		WarehouseID: input.WarehouseID, RequestID: input.RequestID, UserRole: input.UserRole,
		Message: fmt.Sprintf("deducted %d items", len(input.Items)),
	})

	return nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, warehouseID, productID string, page, pageSize int) ([]model.StockMovement, int, error) {
	items, count, err := uc.repo.ListMovements(ctx, warehouseID, productID, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Upstream(err)
	}
	return items, count, nil
}

// lock serializes writers per (warehouse, product) pair when redis is
// available; without redis writes proceed unserialized.
func (uc *inventoryUseCase) lock(ctx context.Context, warehouseID, productID string) (func(), error) {
	if uc.cache == nil {
		return func() {}, nil
	}

	lockKey := fmt.Sprintf("lock:inventory:%s:%s", warehouseID, productID)
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire inventory lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, apperr.Conflict("inventory is busy, try again")
	}

	return func() {
		if err := uc.cache.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			uc.logger.Warn("failed to release inventory lock", zap.Error(err))
		}
	}, nil
}

func (uc *inventoryUseCase) record(e audit.Entry) {
	if uc.recorder != nil {
		uc.recorder.Record(e)
	}
}
