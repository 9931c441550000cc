package entity

import "github.com/shopspring/decimal"

// StockRow una fila del corte de existencias actuales. Se deriva del libro
// en cada consulta; no existe un saldo acumulado persistido.
type StockRow struct {
	Product  *Product
	Quantity decimal.Decimal // Σ entradas − Σ salidas + Σ ajustes
	Rate     decimal.Decimal // promedio simple de precios de entrada
	Value    decimal.Decimal // Quantity × Rate
}
