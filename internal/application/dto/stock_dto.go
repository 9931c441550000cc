package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReport corte completo de existencias, una fila por producto en orden
// de id ascendente, con el total del pie del reporte.
type StockReport struct {
	Date       time.Time
	Rows       []StockRowResponse
	TotalValue decimal.Decimal
}

// StockRowResponse existencias actuales de un producto.
type StockRowResponse struct {
	ProductID   int64
	Code        string
	Description string
	Unit        string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Value       decimal.Decimal
}

// MovementResponse un movimiento del historial de un producto.
type MovementResponse struct {
	Stream    string
	Reference string
	Date      time.Time
	Quantity  decimal.Decimal
	Price     decimal.Decimal
}
