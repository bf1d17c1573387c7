package product

import (
	"context"

	"github.com/veltra/pos-admin-service/internal/model"
	"github.com/veltra/pos-admin-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string, requestID, userRole string) error
	BulkDeleteProducts(ctx context.Context, ids []string, requestID, userRole string) (int64, error)
}
