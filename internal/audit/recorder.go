package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/internal/model"
)

// Recorder writes audit entries without ever propagating a failure to the
// mutation it records. Insert errors are logged at warn and dropped.
type Recorder struct {
	repo   Repository
	logger *zap.Logger
}

func NewRecorder(repo Repository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

type Entry struct {
	Status      string
	EntityType  string
	EntityID    string
	WarehouseID string
	RequestID   string
	UserRole    string
	Message     string
}

// Record fires the insert on its own goroutine so the caller's request is
// never delayed by the audit write.
func (r *Recorder) Record(e Entry) {
	row := &model.AuditLog{
		ID:         uuid.New().String(),
		Status:     e.Status,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		CreatedAt:  time.Now(),
	}
	if e.WarehouseID != "" {
		row.WarehouseID = &e.WarehouseID
	}
	if e.RequestID != "" {
		row.RequestID = &e.RequestID
	}
	if e.UserRole != "" {
		row.UserRole = &e.UserRole
	}
	if e.Message != "" {
		row.Message = &e.Message
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.repo.Insert(ctx, row); err != nil {
			r.logger.Warn("audit insert failed",
				zap.String("entity_type", e.EntityType),
				zap.String("entity_id", e.EntityID),
				zap.Error(err),
			)
		}
	}()
}
