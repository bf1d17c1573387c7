package audit

import (
	"context"

	"github.com/veltra/pos-admin-service/internal/model"
)

type Repository interface {
	// Insert appends one log row. Rows are never updated afterwards.
	Insert(ctx context.Context, log *model.AuditLog) error
	FindAll(ctx context.Context, filters *Filters) ([]model.AuditLog, int, error)
}

type Filters struct {
	EntityType string
	EntityID   string
	Status     string
	Page       int
	PageSize   int
}
