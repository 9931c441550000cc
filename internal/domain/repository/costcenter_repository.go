package repository

import (
	"context"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// CostCenterRepository puerto de persistencia para CostCenter.
type CostCenterRepository interface {
	Create(ctx context.Context, cc *entity.CostCenter) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.CostCenter, error)
	GetByCode(ctx context.Context, code string) (*entity.CostCenter, error)
	List(ctx context.Context) ([]*entity.CostCenter, error)
}
