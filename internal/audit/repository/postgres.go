package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/veltra/pos-admin-service/internal/audit"
	"github.com/veltra/pos-admin-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Insert(ctx context.Context, log *model.AuditLog) error {
	query := `
        INSERT INTO audit_logs (
            id, status, entity_type, entity_id, warehouse_id,
            request_id, user_role, message, created_at
        )
        VALUES (
            :id, :status, :entity_type, :entity_id, :warehouse_id,
            :request_id, :user_role, :message, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, log)
	return err
}

func (r *PGRepository) FindAll(ctx context.Context, f *audit.Filters) ([]model.AuditLog, int, error) {
	var items []model.AuditLog
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.EntityType != "" {
		conditions = append(conditions, "entity_type = :entity_type")
		args["entity_type"] = f.EntityType
	}
	if f.EntityID != "" {
		conditions = append(conditions, "entity_id = :entity_id")
		args["entity_id"] = f.EntityID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM audit_logs" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM audit_logs" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
