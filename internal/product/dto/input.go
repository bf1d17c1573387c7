package dto

type CreateProductInput struct {
	WarehouseID string
	Category    string
	SKU         string
	Name        string
	Price       float64
	CreatedBy   string
	RequestID   string
	UserRole    string
}

type UpdateProductInput struct {
	ID          string
	Category    string
	SKU         string
	Name        string
	Price       float64
	IsActive    bool
	// Version is the version the caller last read. A stale value is
	// rejected with a conflict instead of overwriting newer data.
	Version   int64
	RequestID string
	UserRole  string
}
