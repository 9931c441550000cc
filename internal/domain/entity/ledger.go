package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stream identifica uno de los tres flujos de movimiento del libro.
// Cada stream tiene su propio par cabecera/líneas y su propia secuencia de
// identificadores.
type Stream string

const (
	StreamIncoming   Stream = "incoming"
	StreamOutgoing   Stream = "outgoing"
	StreamAdjustment Stream = "adjustment"
)

// Valid informa si el stream es uno de los tres conocidos.
func (s Stream) Valid() bool {
	switch s {
	case StreamIncoming, StreamOutgoing, StreamAdjustment:
		return true
	}
	return false
}

// ReferencePrefix prefijo del número de documento impreso (IN-, OUT-, ADJ-).
func (s Stream) ReferencePrefix() string {
	switch s {
	case StreamIncoming:
		return "IN-"
	case StreamOutgoing:
		return "OUT-"
	case StreamAdjustment:
		return "ADJ-"
	}
	return ""
}

// Tipos de línea de ajuste. El signo de la cantidad almacenada debe
// coincidir siempre con el tipo: positivo para increase, negativo para
// decrease.
const (
	AdjustmentIncrease = "increase"
	AdjustmentDecrease = "decrease"
)

// IncomingHeader cabecera de una recepción de mercancía.
type IncomingHeader struct {
	ID       int64
	Date     time.Time
	DNNumber string // referencia del proveedor (delivery note)
	Supplier string
	Remarks  string
}

// IncomingLine una línea de recepción. Price es el precio unitario al
// momento de recibir, no el del catálogo.
type IncomingLine struct {
	ID         int64
	IncomingID int64
	ProductID  int64
	Quantity   decimal.Decimal // > 0
	Price      decimal.Decimal // >= 0
}

// OutgoingHeader cabecera de un despacho contra un centro de costo.
type OutgoingHeader struct {
	ID           int64
	Date         time.Time
	CostCenterID int64
	Remarks      string
}

// OutgoingLine una línea de despacho.
type OutgoingLine struct {
	ID         int64
	OutgoingID int64
	ProductID  int64
	Quantity   decimal.Decimal // > 0
	Price      decimal.Decimal // >= 0
}

// AdjustmentHeader cabecera de un ajuste de inventario.
type AdjustmentHeader struct {
	ID      int64
	Date    time.Time
	Remarks string
}

// AdjustmentLine una línea de ajuste. Quantity lleva signo según Kind y
// Amount = Quantity × Price conserva ese signo.
type AdjustmentLine struct {
	ID           int64
	AdjustmentID int64
	ProductID    int64
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	Kind         string // increase | decrease
}

// Movement vista plana de una línea de cualquier stream. Alimenta la
// agregación de existencias y el historial de movimientos por producto.
type Movement struct {
	Stream    Stream
	HeaderID  int64
	ProductID int64
	Date      time.Time
	Quantity  decimal.Decimal
	Price     decimal.Decimal
}
