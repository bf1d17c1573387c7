package dto

// SizeRowInput is one client-supplied size row. Quantities may arrive
// fractional or negative and are coerced before persistence: floored to
// integers and clamped to zero.
type SizeRowInput struct {
	SizeCode string  `json:"size_code"`
	Quantity float64 `json:"quantity"`
}

type ReplaceSizesInput struct {
	WarehouseID string
	ProductID   string
	Rows        []SizeRowInput
	RequestID   string
	UserRole    string
}

type SetQuantityInput struct {
	WarehouseID string
	ProductID   string
	Quantity    int64
	Reason      string
	RequestID   string
	UserRole    string
	UserEmail   string
}

type ReturnItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type ProcessReturnInput struct {
	WarehouseID string
	Items       []ReturnItemInput
	ReferenceID string
	RequestID   string
	UserRole    string
	UserEmail   string
}

// ProcessSaleInput deducts completed-order lines from stock. Quantities are
// the sold amounts, always positive; the deduction applies them negated.
type ProcessSaleInput struct {
	WarehouseID string
	Items       []ReturnItemInput
	ReferenceID string
	RequestID   string
	UserRole    string
	UserEmail   string
}
