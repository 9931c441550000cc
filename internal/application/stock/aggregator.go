package stock

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	ledgerdomain "github.com/jhoicas/inventario-core/internal/domain/ledger"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// Aggregator el lado de lectura del libro: deriva existencias y valuación
// agregando los tres streams contra el catálogo. Cada consulta es un corte
// completo recalculado desde las filas confirmadas; no se mantiene ningún
// saldo acumulado, así que no hay saldo que se pueda desincronizar.
type Aggregator struct {
	productRepo repository.ProductRepository
	ledgerRepo  repository.LedgerRepository
}

// NewAggregator construye el agregador.
func NewAggregator(productRepo repository.ProductRepository, ledgerRepo repository.LedgerRepository) *Aggregator {
	return &Aggregator{productRepo: productRepo, ledgerRepo: ledgerRepo}
}

// CurrentStock corte de existencias actuales: una fila por producto en
// orden de id ascendente, agregados vacíos en cero, y el total del pie del
// reporte.
func (a *Aggregator) CurrentStock(ctx context.Context) (*dto.StockReport, error) {
	products, err := a.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := a.ledgerRepo.AllMovements(ctx)
	if err != nil {
		return nil, err
	}

	rows := ledgerdomain.ComputeStock(products, movements)
	report := &dto.StockReport{
		Date:       time.Now(),
		Rows:       make([]dto.StockRowResponse, 0, len(rows)),
		TotalValue: decimal.Zero,
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, dto.StockRowResponse{
			ProductID:   r.Product.ID,
			Code:        r.Product.Code,
			Description: r.Product.Description,
			Unit:        r.Product.Unit,
			Quantity:    r.Quantity,
			Rate:        r.Rate,
			Value:       r.Value,
		})
		report.TotalValue = report.TotalValue.Add(r.Value)
	}
	return report, nil
}

// ProductMovements historial de movimientos de un producto a través de los
// tres streams, en el orden en que se confirmaron. Es la materia prima de
// los reportes aún no definidos (stock ledger, consumo).
func (a *Aggregator) ProductMovements(ctx context.Context, productID int64) ([]dto.MovementResponse, error) {
	product, err := a.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", productID, domain.ErrNotFound)
	}
	movements, err := a.ledgerRepo.Movements(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			Stream:    string(m.Stream),
			Reference: m.Stream.ReferencePrefix() + strconv.FormatInt(m.HeaderID, 10),
			Date:      m.Date,
			Quantity:  m.Quantity,
			Price:     m.Price,
		})
	}
	return out, nil
}
