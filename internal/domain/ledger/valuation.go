package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// DateLayout formato de fecha que captura la interfaz (DD-MM-YYYY).
const DateLayout = "02-01-2006"

// ParseDate interpreta una fecha capturada en DD-MM-YYYY.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrValidation)
	}
	return t, nil
}

// ParseQuantity interpreta una cantidad capturada como texto. Debe ser un
// número estrictamente positivo; el signo de los ajustes se deriva del tipo
// de línea, nunca se captura.
func ParseQuantity(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("cantidad %q: %w", s, domain.ErrValidation)
	}
	if !d.GreaterThan(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("cantidad %q debe ser mayor que cero: %w", s, domain.ErrValidation)
	}
	return d, nil
}

// ParsePrice interpreta un precio capturado como texto. Cero es válido.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("precio %q: %w", s, domain.ErrValidation)
	}
	if d.LessThan(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("precio %q no puede ser negativo: %w", s, domain.ErrValidation)
	}
	return d, nil
}

// SignedQuantity aplica el signo de un ajuste a una cantidad capturada en
// positivo: increase la deja igual, decrease la niega.
func SignedQuantity(kind string, qty decimal.Decimal) (decimal.Decimal, error) {
	switch kind {
	case entity.AdjustmentIncrease:
		return qty, nil
	case entity.AdjustmentDecrease:
		return qty.Neg(), nil
	}
	return decimal.Zero, fmt.Errorf("tipo de ajuste %q: %w", kind, domain.ErrValidation)
}

// Amount importe de una línea: cantidad × precio, conservando el signo de
// la cantidad.
func Amount(qty, price decimal.Decimal) decimal.Decimal {
	return qty.Mul(price)
}

// ComputeStock deriva las existencias actuales agregando los tres streams
// contra el catálogo (servicio de dominio, matemática pura):
//
//	Quantity = Σ entradas − Σ salidas + Σ ajustes   (sin filas → 0)
//	Rate     = promedio simple del precio unitario de las entradas (sin filas → 0)
//	Value    = Quantity × Rate
//
// Devuelve una fila por producto en el orden en que llega products
// (el catálogo lista por id ascendente). Un agregado vacío es cero, nunca
// un valor ausente.
func ComputeStock(products []*entity.Product, movements []entity.Movement) []*entity.StockRow {
	type totals struct {
		incoming   decimal.Decimal
		outgoing   decimal.Decimal
		adjustment decimal.Decimal
		priceSum   decimal.Decimal
		priceCount int64
	}
	byProduct := make(map[int64]*totals, len(products))
	for _, p := range products {
		byProduct[p.ID] = &totals{}
	}

	for _, m := range movements {
		t, ok := byProduct[m.ProductID]
		if !ok {
			continue
		}
		switch m.Stream {
		case entity.StreamIncoming:
			t.incoming = t.incoming.Add(m.Quantity)
			t.priceSum = t.priceSum.Add(m.Price)
			t.priceCount++
		case entity.StreamOutgoing:
			t.outgoing = t.outgoing.Add(m.Quantity)
		case entity.StreamAdjustment:
			// Las cantidades de ajuste ya vienen con signo.
			t.adjustment = t.adjustment.Add(m.Quantity)
		}
	}

	rows := make([]*entity.StockRow, 0, len(products))
	for _, p := range products {
		t := byProduct[p.ID]
		qty := t.incoming.Sub(t.outgoing).Add(t.adjustment)
		rate := decimal.Zero
		if t.priceCount > 0 {
			rate = t.priceSum.Div(decimal.NewFromInt(t.priceCount))
		}
		rows = append(rows, &entity.StockRow{
			Product:  p,
			Quantity: qty,
			Rate:     rate,
			Value:    qty.Mul(rate),
		})
	}
	return rows
}
