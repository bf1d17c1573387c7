package model

import "time"

// Inventory is the aggregate quantity for a (warehouse, product) pair. When
// size rows exist for the pair, Quantity is derived: it always equals the sum
// of the per-size quantities and is recomputed on every size-level write.
type Inventory struct {
	ID          string    `db:"id" json:"id"`
	WarehouseID string    `db:"warehouse_id" json:"warehouse_id"`
	ProductID   string    `db:"product_id" json:"product_id"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// InventorySize is one row of the per-size breakdown.
type InventorySize struct {
	ID          string `db:"id" json:"id"`
	WarehouseID string `db:"warehouse_id" json:"warehouse_id"`
	ProductID   string `db:"product_id" json:"product_id"`
	SizeCode    string `db:"size_code" json:"size_code"`
	Quantity    int64  `db:"quantity" json:"quantity"`
}

type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	WarehouseID    string    `db:"warehouse_id" json:"warehouse_id"`
	ProductID      string    `db:"product_id" json:"product_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"` // sale, return, adjustment
	QuantityChange int64     `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int64     `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int64     `db:"quantity_after" json:"quantity_after"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedBy      *string   `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
