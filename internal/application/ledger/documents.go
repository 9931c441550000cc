package ledger

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	ledgerdomain "github.com/jhoicas/inventario-core/internal/domain/ledger"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// DocumentUseCase arma los datos que resume el documento imprimible de una
// transacción ya confirmada: cabecera, líneas con el producto resuelto,
// importes y total. No maqueta nada.
type DocumentUseCase struct {
	ledgerRepo     repository.LedgerRepository
	productRepo    repository.ProductRepository
	costCenterRepo repository.CostCenterRepository
}

// NewDocumentUseCase construye el caso de uso de documentos.
func NewDocumentUseCase(
	ledgerRepo repository.LedgerRepository,
	productRepo repository.ProductRepository,
	costCenterRepo repository.CostCenterRepository,
) *DocumentUseCase {
	return &DocumentUseCase{
		ledgerRepo:     ledgerRepo,
		productRepo:    productRepo,
		costCenterRepo: costCenterRepo,
	}
}

// IncomingDocument datos del documento de una recepción.
func (uc *DocumentUseCase) IncomingDocument(ctx context.Context, id int64) (*dto.TransactionDocument, error) {
	h, lines, err := uc.ledgerRepo.GetIncoming(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("recepción %d: %w", id, domain.ErrNotFound)
	}
	doc := &dto.TransactionDocument{
		Reference: reference(entity.StreamIncoming, h.ID),
		Stream:    entity.StreamIncoming,
		ID:        h.ID,
		Date:      h.Date,
		DNNumber:  h.DNNumber,
		Supplier:  h.Supplier,
		Remarks:   h.Remarks,
	}
	for _, l := range lines {
		if err := uc.appendLine(ctx, doc, l.ProductID, l.Quantity, l.Price, ""); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// OutgoingDocument datos del documento de un despacho, con el centro de
// costo resuelto a código y nombre.
func (uc *DocumentUseCase) OutgoingDocument(ctx context.Context, id int64) (*dto.TransactionDocument, error) {
	h, lines, err := uc.ledgerRepo.GetOutgoing(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("despacho %d: %w", id, domain.ErrNotFound)
	}
	cc, err := uc.costCenterRepo.GetByID(ctx, h.CostCenterID)
	if err != nil {
		return nil, err
	}
	if cc == nil {
		return nil, fmt.Errorf("centro de costo %d del despacho %d: %w", h.CostCenterID, id, domain.ErrIntegrity)
	}
	doc := &dto.TransactionDocument{
		Reference:      reference(entity.StreamOutgoing, h.ID),
		Stream:         entity.StreamOutgoing,
		ID:             h.ID,
		Date:           h.Date,
		CostCenterCode: cc.Code,
		CostCenterName: cc.Description,
		Remarks:        h.Remarks,
	}
	for _, l := range lines {
		if err := uc.appendLine(ctx, doc, l.ProductID, l.Quantity, l.Price, ""); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// AdjustmentDocument datos del documento de un ajuste. Los importes
// conservan el signo de cada línea y el total es la suma con signo.
func (uc *DocumentUseCase) AdjustmentDocument(ctx context.Context, id int64) (*dto.TransactionDocument, error) {
	h, lines, err := uc.ledgerRepo.GetAdjustment(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("ajuste %d: %w", id, domain.ErrNotFound)
	}
	doc := &dto.TransactionDocument{
		Reference: reference(entity.StreamAdjustment, h.ID),
		Stream:    entity.StreamAdjustment,
		ID:        h.ID,
		Date:      h.Date,
		Remarks:   h.Remarks,
	}
	for _, l := range lines {
		if err := uc.appendLine(ctx, doc, l.ProductID, l.Quantity, l.Price, l.Kind); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (uc *DocumentUseCase) appendLine(ctx context.Context, doc *dto.TransactionDocument, productID int64, qty, price decimal.Decimal, kind string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		// Una línea confirmada siempre referencia un producto existente.
		return fmt.Errorf("producto %d de %s: %w", productID, doc.Reference, domain.ErrIntegrity)
	}
	amount := ledgerdomain.Amount(qty, price)
	doc.Lines = append(doc.Lines, dto.DocumentLine{
		ProductCode: product.Code,
		Description: product.Description,
		Unit:        product.Unit,
		Kind:        kind,
		Quantity:    qty,
		Rate:        price,
		Amount:      amount,
	})
	doc.Total = doc.Total.Add(amount)
	return nil
}

func reference(stream entity.Stream, id int64) string {
	return stream.ReferencePrefix() + strconv.FormatInt(id, 10)
}
