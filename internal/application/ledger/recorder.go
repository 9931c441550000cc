package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	ledgerdomain "github.com/jhoicas/inventario-core/internal/domain/ledger"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// Recorder es la única vía de escritura del libro: valida la transacción
// completa, resuelve productos y centro de costo, y confirma cabecera +
// líneas dentro de una sola transacción del almacén. El id lo genera el
// almacén al insertar la cabecera y se devuelve al llamador.
//
// Record no es idempotente a propósito: dos llamadas con las mismas líneas
// producen dos asientos distintos. La defensa contra el doble envío es del
// llamador (deshabilitar el guardado tras el primer éxito).
type Recorder struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	costCenterRepo repository.CostCenterRepository
	log            *logger.Logger
}

// NewRecorder construye el registrador de transacciones.
func NewRecorder(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	costCenterRepo repository.CostCenterRepository,
	log *logger.Logger,
) *Recorder {
	return &Recorder{
		txRunner:       txRunner,
		productRepo:    productRepo,
		costCenterRepo: costCenterRepo,
		log:            log,
	}
}

// línea ya validada y con el producto resuelto.
type resolvedLine struct {
	productID int64
	quantity  decimal.Decimal // con signo en ajustes
	price     decimal.Decimal
	kind      string
}

// Record valida y confirma una transacción. Devuelve el id de cabecera
// asignado por el almacén, o bien:
//
//   - ErrIntegrity si no hay líneas (una cabecera sin líneas jamás se
//     persiste);
//   - ErrValidation si la fecha, una cantidad o un precio no se pueden
//     interpretar, si un código de producto no existe en el catálogo, o si
//     el código de centro de costo de una salida no existe.
//
// Tras un error no queda ninguna escritura parcial.
func (r *Recorder) Record(ctx context.Context, in dto.RecordTransactionRequest) (int64, error) {
	if !in.Stream.Valid() {
		return 0, fmt.Errorf("stream %q: %w", in.Stream, domain.ErrValidation)
	}
	if len(in.Lines) == 0 {
		return 0, fmt.Errorf("transacción sin líneas: %w", domain.ErrIntegrity)
	}
	date, err := ledgerdomain.ParseDate(in.Date)
	if err != nil {
		return 0, err
	}

	var costCenterID int64
	if in.Stream == entity.StreamOutgoing {
		cc, err := r.costCenterRepo.GetByCode(ctx, in.CostCenterCode)
		if err != nil {
			return 0, err
		}
		if cc == nil {
			return 0, fmt.Errorf("centro de costo %q: %w", in.CostCenterCode, domain.ErrValidation)
		}
		costCenterID = cc.ID
	}

	lines := make([]resolvedLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		product, err := r.productRepo.GetByCode(ctx, l.ProductCode)
		if err != nil {
			return 0, err
		}
		if product == nil {
			return 0, fmt.Errorf("línea %d: producto %q: %w", i+1, l.ProductCode, domain.ErrValidation)
		}
		qty, err := ledgerdomain.ParseQuantity(l.Quantity)
		if err != nil {
			return 0, fmt.Errorf("línea %d: %w", i+1, err)
		}
		price, err := ledgerdomain.ParsePrice(l.Price)
		if err != nil {
			return 0, fmt.Errorf("línea %d: %w", i+1, err)
		}
		if in.Stream == entity.StreamAdjustment {
			qty, err = ledgerdomain.SignedQuantity(l.Kind, qty)
			if err != nil {
				return 0, fmt.Errorf("línea %d: %w", i+1, err)
			}
		}
		lines = append(lines, resolvedLine{
			productID: product.ID,
			quantity:  qty,
			price:     price,
			kind:      l.Kind,
		})
	}

	var headerID int64
	err = r.txRunner.Run(ctx, func(repo repository.LedgerRepository) error {
		switch in.Stream {
		case entity.StreamIncoming:
			return r.commitIncoming(ctx, repo, in, date, lines, &headerID)
		case entity.StreamOutgoing:
			return r.commitOutgoing(ctx, repo, in, date, costCenterID, lines, &headerID)
		case entity.StreamAdjustment:
			return r.commitAdjustment(ctx, repo, in, date, lines, &headerID)
		}
		return fmt.Errorf("stream %q: %w", in.Stream, domain.ErrValidation)
	})
	if err != nil {
		return 0, err
	}

	r.log.Info().
		Str("stream", string(in.Stream)).
		Int64("id", headerID).
		Int("lines", len(lines)).
		Msg("transacción confirmada")
	return headerID, nil
}

func (r *Recorder) commitIncoming(ctx context.Context, repo repository.LedgerRepository, in dto.RecordTransactionRequest, date time.Time, lines []resolvedLine, headerID *int64) error {
	id, err := repo.InsertIncoming(ctx, &entity.IncomingHeader{
		Date:     date,
		DNNumber: in.DNNumber,
		Supplier: in.Supplier,
		Remarks:  in.Remarks,
	})
	if err != nil {
		return err
	}
	rows := make([]*entity.IncomingLine, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, &entity.IncomingLine{
			IncomingID: id,
			ProductID:  l.productID,
			Quantity:   l.quantity,
			Price:      l.price,
		})
	}
	if err := repo.InsertIncomingLines(ctx, rows); err != nil {
		return err
	}
	*headerID = id
	return nil
}

func (r *Recorder) commitOutgoing(ctx context.Context, repo repository.LedgerRepository, in dto.RecordTransactionRequest, date time.Time, costCenterID int64, lines []resolvedLine, headerID *int64) error {
	id, err := repo.InsertOutgoing(ctx, &entity.OutgoingHeader{
		Date:         date,
		CostCenterID: costCenterID,
		Remarks:      in.Remarks,
	})
	if err != nil {
		return err
	}
	rows := make([]*entity.OutgoingLine, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, &entity.OutgoingLine{
			OutgoingID: id,
			ProductID:  l.productID,
			Quantity:   l.quantity,
			Price:      l.price,
		})
	}
	if err := repo.InsertOutgoingLines(ctx, rows); err != nil {
		return err
	}
	*headerID = id
	return nil
}

func (r *Recorder) commitAdjustment(ctx context.Context, repo repository.LedgerRepository, in dto.RecordTransactionRequest, date time.Time, lines []resolvedLine, headerID *int64) error {
	id, err := repo.InsertAdjustment(ctx, &entity.AdjustmentHeader{
		Date:    date,
		Remarks: in.Remarks,
	})
	if err != nil {
		return err
	}
	rows := make([]*entity.AdjustmentLine, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, &entity.AdjustmentLine{
			AdjustmentID: id,
			ProductID:    l.productID,
			Quantity:     l.quantity,
			Price:        l.price,
			Kind:         l.kind,
		})
	}
	if err := repo.InsertAdjustmentLines(ctx, rows); err != nil {
		return err
	}
	*headerID = id
	return nil
}
