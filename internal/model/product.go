package model

type Product struct {
	BaseModel
	WarehouseID string  `db:"warehouse_id" json:"warehouse_id"`
	Category    *string `db:"category" json:"category"` // Nullable
	SKU         string  `db:"sku" json:"sku"`
	Name        string  `db:"name" json:"name"`
	Price       float64 `db:"price" json:"price"`
	// Version increments on every update and backs optimistic-concurrency
	// checks: writers supply the version they last read.
	Version  int64 `db:"version" json:"version"`
	IsActive bool  `db:"is_active" json:"is_active"`
}
