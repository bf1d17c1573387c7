package sale

import (
	"context"
	"errors"

	"github.com/veltra/pos-admin-service/internal/model"
)

// ErrInsufficientStock marks a sale line that would drive stock negative.
var ErrInsufficientStock = errors.New("insufficient stock")

type Repository interface {
	// RecordSale persists the sale, its items, the stock decrements and the
	// movement rows in one transaction. Any line failing the stock guard
	// aborts the whole sale with ErrInsufficientStock.
	RecordSale(ctx context.Context, s *model.Sale, items []model.SaleItem, movements []model.StockMovement) error

	FindByID(ctx context.Context, id string) (*model.Sale, []model.SaleItem, error)
}
