package dto

type InventoryFilters struct {
	WarehouseID string
	ProductID   string
	Page        int
	PageSize    int
}
