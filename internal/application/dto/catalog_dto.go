package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto. Los montos llegan como texto tal
// cual los captura la interfaz.
type CreateProductRequest struct {
	Code        string
	Description string
	Unit        string
	Price       string
	MaxQty      string
	MinQty      string
}

// UpdateProductRequest edición de producto. Code y Unit son inmutables y no
// aparecen aquí.
type UpdateProductRequest struct {
	Description string
	Price       string
	MaxQty      string
	MinQty      string
}

// ProductResponse producto expuesto a la capa de interfaz.
type ProductResponse struct {
	ID          int64
	Code        string
	Description string
	Unit        string
	Price       decimal.Decimal
	MaxQty      decimal.Decimal
	MinQty      decimal.Decimal
}

// CreateCostCenterRequest alta de centro de costo.
type CreateCostCenterRequest struct {
	Code        string
	Description string
}

// CostCenterResponse centro de costo expuesto a la capa de interfaz.
type CostCenterResponse struct {
	ID          int64
	Code        string
	Description string
}
