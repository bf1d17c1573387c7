package dto

type SaleLineInput struct {
	ProductID string  `json:"product_id"`
	SizeCode  string  `json:"size_code"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type RecordSaleInput struct {
	WarehouseID string
	Lines       []SaleLineInput
	RequestID   string
	UserRole    string
	UserEmail   string
}
