package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/veltra/pos-admin-service/internal/inventory/dto"
	"github.com/veltra/pos-admin-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByProduct(ctx context.Context, warehouseID, productID string) (*model.Inventory, error) {
	var inv model.Inventory
	query := `SELECT * FROM inventory WHERE warehouse_id = $1 AND product_id = $2`
	err := r.DB.GetContext(ctx, &inv, query, warehouseID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, int, error) {
	var items []model.Inventory
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.WarehouseID != "" {
		conditions = append(conditions, "warehouse_id = :warehouse_id")
		args["warehouse_id"] = f.WarehouseID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory" + whereClause + " ORDER BY updated_at DESC"
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

func (r *PGRepository) ListSizes(ctx context.Context, warehouseID, productID string) ([]model.InventorySize, error) {
	var sizes []model.InventorySize
	query := `
        SELECT * FROM inventory_sizes
        WHERE warehouse_id = $1 AND product_id = $2
        ORDER BY size_code
    `
	err := r.DB.SelectContext(ctx, &sizes, query, warehouseID, productID)
	return sizes, err
}

const upsertInventoryQuery = `
    INSERT INTO inventory (id, warehouse_id, product_id, quantity, updated_at)
    VALUES (:id, :warehouse_id, :product_id, :quantity, :updated_at)
    ON CONFLICT (warehouse_id, product_id)
    DO UPDATE SET
        quantity = EXCLUDED.quantity,
        updated_at = EXCLUDED.updated_at
`

const insertMovementQuery = `
    INSERT INTO stock_movements (
        id, warehouse_id, product_id, movement_type,
        quantity_change, quantity_before, quantity_after,
        reference_id, notes, created_by, created_at
    )
    VALUES (
        :id, :warehouse_id, :product_id, :movement_type,
        :quantity_change, :quantity_before, :quantity_after,
        :reference_id, :notes, :created_by, :created_at
    )
`

func (r *PGRepository) SetQuantityWithMovement(ctx context.Context, inv *model.Inventory, movement *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, upsertInventoryQuery, inv); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, insertMovementQuery, movement); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) ReplaceSizes(ctx context.Context, aggregate *model.Inventory, rows []model.InventorySize) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM inventory_sizes WHERE warehouse_id = $1 AND product_id = $2`,
		aggregate.WarehouseID, aggregate.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear size rows: %w", err)
	}

	insertSizeQuery := `
        INSERT INTO inventory_sizes (id, warehouse_id, product_id, size_code, quantity)
        VALUES (:id, :warehouse_id, :product_id, :size_code, :quantity)
    `
	for i := range rows {
		if _, err := tx.NamedExecContext(ctx, insertSizeQuery, &rows[i]); err != nil {
			return fmt.Errorf("failed to insert size row: %w", err)
		}
	}

	// The aggregate is derived from the size rows; writing both inside the
	// transaction keeps them consistent even across a crash.
	if _, err := tx.NamedExecContext(ctx, upsertInventoryQuery, aggregate); err != nil {
		return fmt.Errorf("failed to update aggregate: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) IncrementBatch(ctx context.Context, warehouseID string, movements []model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	incrementQuery := `
        INSERT INTO inventory (id, warehouse_id, product_id, quantity, updated_at)
        VALUES ($1, $2, $3, $4, now())
        ON CONFLICT (warehouse_id, product_id)
        DO UPDATE SET
            quantity = inventory.quantity + EXCLUDED.quantity,
            updated_at = now()
        RETURNING quantity
    `

	for i := range movements {
		m := &movements[i]

		var after int64
		err := tx.QueryRowxContext(ctx, incrementQuery,
			m.ID, warehouseID, m.ProductID, m.QuantityChange,
		).Scan(&after)
		if err != nil {
			return fmt.Errorf("failed to increment stock for product %s: %w", m.ProductID, err)
		}

		m.QuantityBefore = after - m.QuantityChange
		m.QuantityAfter = after

		if _, err := tx.NamedExecContext(ctx, insertMovementQuery, m); err != nil {
			return fmt.Errorf("failed to log movement: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) ListMovements(ctx context.Context, warehouseID, productID string, page, pageSize int) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if warehouseID != "" {
		conditions = append(conditions, "warehouse_id = :warehouse_id")
		args["warehouse_id"] = warehouseID
	}
	if productID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = productID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
