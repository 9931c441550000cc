package entity

// CostCenter centro de costo contra el que se cargan las salidas.
type CostCenter struct {
	ID          int64
	Code        string
	Description string
}
