package ledger

import (
	"context"

	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén,
// pasando un repositorio del libro atado a esa tx. Es la única frontera de
// atomicidad cabecera+líneas: el Recorder no escribe por ningún otro camino.
type TxRunner interface {
	Run(ctx context.Context, fn func(ledgerRepo repository.LedgerRepository) error) error
}
