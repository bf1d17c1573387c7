package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/veltra/pos-admin-service/internal/model"
	"github.com/veltra/pos-admin-service/internal/sale"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) RecordSale(ctx context.Context, s *model.Sale, items []model.SaleItem, movements []model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The quantity guard keeps stock non-negative; a line with not enough
	// stock aborts the transaction rather than partially applying the sale.
	decrementQuery := `
        UPDATE inventory
        SET quantity = quantity - $1, updated_at = now()
        WHERE warehouse_id = $2 AND product_id = $3 AND quantity >= $1
    `
	decrementSizeQuery := `
        UPDATE inventory_sizes
        SET quantity = quantity - $1
        WHERE warehouse_id = $2 AND product_id = $3 AND size_code = $4 AND quantity >= $1
    `

	for _, item := range items {
		res, err := tx.ExecContext(ctx, decrementQuery, item.Quantity, s.WarehouseID, item.ProductID)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: product %s", sale.ErrInsufficientStock, item.ProductID)
		}

		if item.SizeCode != nil && *item.SizeCode != "" {
			res, err := tx.ExecContext(ctx, decrementSizeQuery, item.Quantity, s.WarehouseID, item.ProductID, *item.SizeCode)
			if err != nil {
				return err
			}
			rows, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("%w: product %s size %s", sale.ErrInsufficientStock, item.ProductID, *item.SizeCode)
			}
		}
	}

	insertSaleQuery := `
        INSERT INTO sales (id, warehouse_id, total, created_by, created_at)
        VALUES (:id, :warehouse_id, :total, :created_by, :created_at)
    `
	if _, err := tx.NamedExecContext(ctx, insertSaleQuery, s); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	insertItemQuery := `
        INSERT INTO sale_items (id, sale_id, product_id, size_code, quantity, unit_price)
        VALUES (:id, :sale_id, :product_id, :size_code, :quantity, :unit_price)
    `
	for i := range items {
		if _, err := tx.NamedExecContext(ctx, insertItemQuery, &items[i]); err != nil {
			return fmt.Errorf("failed to insert sale item: %w", err)
		}
	}

	insertMovementQuery := `
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
	for i := range movements {
		if _, err := tx.NamedExecContext(ctx, insertMovementQuery, &movements[i]); err != nil {
			return fmt.Errorf("failed to log movement: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Sale, []model.SaleItem, error) {
	var s model.Sale
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM sales WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var items []model.SaleItem
	err = r.DB.SelectContext(ctx, &items, `SELECT * FROM sale_items WHERE sale_id = $1`, id)
	if err != nil {
		return nil, nil, err
	}

	return &s, items, nil
}
