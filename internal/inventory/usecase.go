package inventory

import (
	"context"

	"github.com/veltra/pos-admin-service/internal/inventory/dto"
	"github.com/veltra/pos-admin-service/internal/model"
)

type UseCase interface {
	GetInventory(ctx context.Context, warehouseID, productID string) (*model.Inventory, []model.InventorySize, error)
	ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)
	SetQuantity(ctx context.Context, input *dto.SetQuantityInput) (*model.Inventory, error)
	ReplaceSizes(ctx context.Context, input *dto.ReplaceSizesInput) (*model.Inventory, []model.InventorySize, error)
	ProcessReturnStock(ctx context.Context, input *dto.ProcessReturnInput) error
	ProcessSaleDeduction(ctx context.Context, input *dto.ProcessSaleInput) error
	ListMovements(ctx context.Context, warehouseID, productID string, page, pageSize int) ([]model.StockMovement, int, error)
}
