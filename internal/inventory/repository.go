package inventory

import (
	"context"

	"github.com/veltra/pos-admin-service/internal/inventory/dto"
	"github.com/veltra/pos-admin-service/internal/model"
)

type Repository interface {
	GetByProduct(ctx context.Context, warehouseID, productID string) (*model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)
	ListSizes(ctx context.Context, warehouseID, productID string) ([]model.InventorySize, error)

	// SetQuantityWithMovement upserts the aggregate row and logs the
	// movement in one transaction.
	SetQuantityWithMovement(ctx context.Context, inv *model.Inventory, movement *model.StockMovement) error

	// ReplaceSizes swaps the full size breakdown for the pair and persists
	// the recomputed aggregate, all in one transaction.
	ReplaceSizes(ctx context.Context, aggregate *model.Inventory, rows []model.InventorySize) error

	// IncrementBatch applies every increment or none. Movement rows carry
	// the quantity delta; before/after are filled in from the store.
	IncrementBatch(ctx context.Context, warehouseID string, movements []model.StockMovement) error

	ListMovements(ctx context.Context, warehouseID, productID string, page, pageSize int) ([]model.StockMovement, int, error)
}
