package model

import "time"

// AuditLog is one append-only record of a mutation attempt. Rows are never
// updated after insert.
type AuditLog struct {
	ID          string    `db:"id" json:"id"`
	Status      string    `db:"status" json:"status"` // success, failed
	EntityType  string    `db:"entity_type" json:"entity_type"`
	EntityID    string    `db:"entity_id" json:"entity_id"`
	WarehouseID *string   `db:"warehouse_id" json:"warehouse_id"`
	RequestID   *string   `db:"request_id" json:"request_id"`
	UserRole    *string   `db:"user_role" json:"user_role"`
	Message     *string   `db:"message" json:"message"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

const (
	AuditStatusSuccess = "success"
	AuditStatusFailed  = "failed"
)
