package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// RecordTransactionRequest una transacción completa (cabecera + líneas)
// lista para confirmar. Los campos de cabecera que no aplican al stream se
// dejan vacíos: DNNumber/Supplier solo para entradas, CostCenterCode solo
// para salidas.
type RecordTransactionRequest struct {
	Stream         entity.Stream
	Date           string // DD-MM-YYYY
	DNNumber       string
	Supplier       string
	CostCenterCode string
	Remarks        string
	Lines          []TransactionLineRequest
}

// TransactionLineRequest una línea capturada. Quantity y Price llegan como
// texto; Kind solo aplica a ajustes (increase | decrease) y la cantidad se
// captura siempre en positivo.
type TransactionLineRequest struct {
	ProductCode string
	Quantity    string
	Price       string
	Kind        string
}

// TransactionDocument los datos que resume el documento imprimible de una
// transacción confirmada. La maquetación es asunto de la capa de interfaz.
type TransactionDocument struct {
	Reference      string // IN-7, OUT-3, ADJ-12
	Stream         entity.Stream
	ID             int64
	Date           time.Time
	DNNumber       string
	Supplier       string
	CostCenterCode string
	CostCenterName string
	Remarks        string
	Lines          []DocumentLine
	Total          decimal.Decimal
}

// DocumentLine una línea del documento con el producto ya resuelto.
type DocumentLine struct {
	ProductCode string
	Description string
	Unit        string
	Kind        string // solo ajustes
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}
