package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/model"
	"github.com/veltra/pos-admin-service/internal/warehouse"
	"github.com/veltra/pos-admin-service/internal/warehouse/dto"
)

type warehouseUseCase struct {
	repo   warehouse.Repository
	logger *zap.Logger
}

func NewWarehouseUseCase(repo warehouse.Repository, logger *zap.Logger) warehouse.UseCase {
	return &warehouseUseCase{repo: repo, logger: logger}
}

func (uc *warehouseUseCase) CreateWarehouse(ctx context.Context, input *dto.CreateWarehouseInput) (*model.Warehouse, error) {
	if input.Name == "" || input.Code == "" {
		return nil, apperr.Validation("name and code are required")
	}

	unique, err := uc.repo.IsCodeUnique(ctx, input.Code, "")
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	if !unique {
		return nil, apperr.Conflict("warehouse code already exists")
	}

	now := time.Now()
	var address *string
	if input.Address != "" {
		address = &input.Address
	}

	w := &model.Warehouse{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		Code:      input.Code,
		Address:   address,
		IsActive:  true,
	}

	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, apperr.Upstream(err)
	}
	return w, nil
}

func (uc *warehouseUseCase) GetWarehouse(ctx context.Context, id string) (*model.Warehouse, error) {
	w, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	if w == nil {
		return nil, apperr.NotFound("warehouse not found")
	}
	return w, nil
}

func (uc *warehouseUseCase) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	warehouses, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return warehouses, nil
}

func (uc *warehouseUseCase) UpdateWarehouse(ctx context.Context, input *dto.UpdateWarehouseInput) (*model.Warehouse, error) {
	if input.Name == "" || input.Code == "" {
		return nil, apperr.Validation("name and code are required")
	}

	w, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	if w == nil {
		return nil, apperr.NotFound("warehouse not found")
	}

	if w.Code != input.Code {
		unique, err := uc.repo.IsCodeUnique(ctx, input.Code, w.ID)
		if err != nil {
			return nil, apperr.Upstream(err)
		}
		if !unique {
			return nil, apperr.Conflict("warehouse code already exists")
		}
	}

	w.Name = input.Name
	w.Code = input.Code
	w.IsActive = input.IsActive
	if input.Address != "" {
		addr := input.Address
		w.Address = &addr
	} else {
		w.Address = nil
	}
	w.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, apperr.Upstream(err)
	}
	return w, nil
}

func (uc *warehouseUseCase) DeleteWarehouse(ctx context.Context, id string) error {
	w, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Upstream(err)
	}
	if w == nil {
		return apperr.NotFound("warehouse not found")
	}

	hasStock, err := uc.repo.HasInventory(ctx, id)
	if err != nil {
		return apperr.Upstream(err)
	}
	if hasStock {
		return apperr.Conflict("warehouse still holds inventory")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperr.Upstream(err)
	}
	return nil
}
