package product

import (
	"context"

	"github.com/veltra/pos-admin-service/internal/model"
	"github.com/veltra/pos-admin-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)

	// UpdateVersioned applies the update only when the stored version still
	// equals expectedVersion, bumping the version on success. Returns the
	// number of rows changed (0 means stale version or missing row).
	UpdateVersioned(ctx context.Context, product *model.Product, expectedVersion int64) (int64, error)

	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)

	IsSKUUnique(ctx context.Context, warehouseID, sku, excludeID string) (bool, error)
}
