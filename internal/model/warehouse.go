package model

type Warehouse struct {
	BaseModel
	Name     string  `db:"name" json:"name"`
	Code     string  `db:"code" json:"code"`
	Address  *string `db:"address" json:"address"` // Nullable
	IsActive bool    `db:"is_active" json:"is_active"`
}
