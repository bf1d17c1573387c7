package sale

import (
	"context"

	"github.com/veltra/pos-admin-service/internal/model"
	"github.com/veltra/pos-admin-service/internal/sale/dto"
)

type UseCase interface {
	RecordSale(ctx context.Context, input *dto.RecordSaleInput) (*model.Sale, []model.SaleItem, error)
	GetSale(ctx context.Context, id string) (*model.Sale, []model.SaleItem, error)
}
