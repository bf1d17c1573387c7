package model

import "time"

type Sale struct {
	ID          string    `db:"id" json:"id"`
	WarehouseID string    `db:"warehouse_id" json:"warehouse_id"`
	Total       float64   `db:"total" json:"total"`
	CreatedBy   *string   `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type SaleItem struct {
	ID        string  `db:"id" json:"id"`
	SaleID    string  `db:"sale_id" json:"sale_id"`
	ProductID string  `db:"product_id" json:"product_id"`
	SizeCode  *string `db:"size_code" json:"size_code"`
	Quantity  int64   `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}
