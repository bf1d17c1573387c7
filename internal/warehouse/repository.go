package warehouse

import (
	"context"

	"github.com/veltra/pos-admin-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, w *model.Warehouse) error
	FindByID(ctx context.Context, id string) (*model.Warehouse, error)
	FindAll(ctx context.Context) ([]model.Warehouse, error)
	Update(ctx context.Context, w *model.Warehouse) error
	Delete(ctx context.Context, id string) error

	IsCodeUnique(ctx context.Context, code, excludeID string) (bool, error)
	HasInventory(ctx context.Context, id string) (bool, error)
}
