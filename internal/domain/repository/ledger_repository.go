package repository

import (
	"context"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// LedgerRepository puerto de persistencia del libro de movimientos: los
// tres pares cabecera/líneas. Operaciones tipadas por stream, sin despacho
// por nombre de tabla.
//
// Los Insert* de cabecera devuelven el identificador que genera el almacén
// al insertar; esa es la asignación real de ids. NextID es solo el avance
// que la interfaz muestra antes de guardar y no reserva nada.
//
// Aquí no vive ninguna validación de negocio; eso es del Recorder.
type LedgerRepository interface {
	InsertIncoming(ctx context.Context, h *entity.IncomingHeader) (int64, error)
	InsertIncomingLines(ctx context.Context, lines []*entity.IncomingLine) error
	InsertOutgoing(ctx context.Context, h *entity.OutgoingHeader) (int64, error)
	InsertOutgoingLines(ctx context.Context, lines []*entity.OutgoingLine) error
	InsertAdjustment(ctx context.Context, h *entity.AdjustmentHeader) (int64, error)
	InsertAdjustmentLines(ctx context.Context, lines []*entity.AdjustmentLine) error

	NextID(ctx context.Context, stream entity.Stream) (int64, error)
	Movements(ctx context.Context, productID int64) ([]entity.Movement, error)
	AllMovements(ctx context.Context) ([]entity.Movement, error)

	GetIncoming(ctx context.Context, id int64) (*entity.IncomingHeader, []*entity.IncomingLine, error)
	GetOutgoing(ctx context.Context, id int64) (*entity.OutgoingHeader, []*entity.OutgoingLine, error)
	GetAdjustment(ctx context.Context, id int64) (*entity.AdjustmentHeader, []*entity.AdjustmentLine, error)
}
