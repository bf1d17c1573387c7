package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/apperr"
	"github.com/veltra/pos-admin-service/internal/audit"
	"github.com/veltra/pos-admin-service/internal/model"
	"github.com/veltra/pos-admin-service/internal/sale"
	"github.com/veltra/pos-admin-service/internal/sale/dto"
)

type saleUseCase struct {
	repo     sale.Repository
	recorder *audit.Recorder
	logger   *zap.Logger
}

func NewSaleUseCase(repo sale.Repository, recorder *audit.Recorder, logger *zap.Logger) sale.UseCase {
	return &saleUseCase{repo: repo, recorder: recorder, logger: logger}
}

func (uc *saleUseCase) RecordSale(ctx context.Context, input *dto.RecordSaleInput) (*model.Sale, []model.SaleItem, error) {
	if input.WarehouseID == "" {
		return nil, nil, apperr.Validation("warehouse_id is required")
	}
	if len(input.Lines) == 0 {
		return nil, nil, apperr.Validation("sale lines must not be empty")
	}
	for _, line := range input.Lines {
		if line.ProductID == "" {
			return nil, nil, apperr.Validation("every line needs a product_id")
		}
		if line.Quantity <= 0 {
			return nil, nil, apperr.Validation("quantities must be positive")
		}
		if line.UnitPrice < 0 {
			return nil, nil, apperr.Validation("unit price must not be negative")
		}
	}

	now := time.Now()
	var createdBy *string
	if input.UserEmail != "" {
		createdBy = &input.UserEmail
	}

	s := &model.Sale{
		ID:          uuid.New().String(),
		WarehouseID: input.WarehouseID,
		CreatedBy:   createdBy,
		CreatedAt:   now,
	}

	items := make([]model.SaleItem, len(input.Lines))
	movements := make([]model.StockMovement, len(input.Lines))
	for i, line := range input.Lines {
		s.Total += float64(line.Quantity) * line.UnitPrice

		var sizeCode *string
		if line.SizeCode != "" {
			sc := line.SizeCode
			sizeCode = &sc
		}

		items[i] = model.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    s.ID,
			ProductID: line.ProductID,
			SizeCode:  sizeCode,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		movements[i] = model.StockMovement{
			ID:             uuid.New().String(),
			WarehouseID:    input.WarehouseID,
			ProductID:      line.ProductID,
			MovementType:   "sale",
			QuantityChange: -line.Quantity,
			ReferenceID:    &s.ID,
			Notes:          "pos sale",
			CreatedBy:      createdBy,
			CreatedAt:      now,
		}
	}

	if err := uc.repo.RecordSale(ctx, s, items, movements); err != nil {
		uc.record(audit.Entry{
			Status: model.AuditStatusFailed, EntityType: "sale", EntityID: s.ID,
			WarehouseID: input.WarehouseID, RequestID: input.RequestID,
			UserRole: input.UserRole, Message: "sale recording failed",
		})
		if errors.Is(err, sale.ErrInsufficientStock) {
			return nil, nil, apperr.Conflict("insufficient stock")
		}
		return nil, nil, apperr.Upstream(err)
	}

	uc.record(audit.Entry{
		Status: model.AuditStatusSuccess, EntityType: "sale", EntityID: s.ID,
		WarehouseID: input.WarehouseID, RequestID: input.RequestID, UserRole: input.UserRole,
	})

	return s, items, nil
}

func (uc *saleUseCase) GetSale(ctx context.Context, id string) (*model.Sale, []model.SaleItem, error) {
	s, items, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, apperr.Upstream(err)
	}
	if s == nil {
		return nil, nil, apperr.NotFound("sale not found")
	}
	return s, items, nil
}

func (uc *saleUseCase) record(e audit.Entry) {
	if uc.recorder != nil {
		uc.recorder.Record(e)
	}
}
