package dto

type CreateWarehouseInput struct {
	Name    string
	Code    string
	Address string
}

type UpdateWarehouseInput struct {
	ID       string
	Name     string
	Code     string
	Address  string
	IsActive bool
}
