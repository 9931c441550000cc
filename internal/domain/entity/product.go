package entity

import "github.com/shopspring/decimal"

// Product representa un artículo del catálogo maestro.
// Code y Unit son inmutables después de la creación. Price es el precio de
// referencia del catálogo, independiente del precio capturado en cada línea
// de movimiento. Code es único por convención del operador; el esquema no
// lo exige.
type Product struct {
	ID          int64
	Code        string
	Description string
	Unit        string
	Price       decimal.Decimal
	MaxQty      decimal.Decimal
	MinQty      decimal.Decimal
}
