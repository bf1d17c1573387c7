package dto

type ProductFilters struct {
	WarehouseID string
	Category    string
	IsActive    *bool
	SearchQuery string // name or sku search
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}
