package costcenter

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// UseCase administración de centros de costo.
type UseCase struct {
	repo repository.CostCenterRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CostCenterRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create da de alta un centro de costo. Code y Description son obligatorios.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateCostCenterRequest) (*dto.CostCenterResponse, error) {
	if in.Code == "" || in.Description == "" {
		return nil, fmt.Errorf("code y description requeridos: %w", domain.ErrValidation)
	}
	cc := &entity.CostCenter{Code: in.Code, Description: in.Description}
	id, err := uc.repo.Create(ctx, cc)
	if err != nil {
		return nil, err
	}
	cc.ID = id
	return toResponse(cc), nil
}

// List lista los centros de costo por id ascendente.
func (uc *UseCase) List(ctx context.Context) ([]*dto.CostCenterResponse, error) {
	ccs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CostCenterResponse, 0, len(ccs))
	for _, cc := range ccs {
		out = append(out, toResponse(cc))
	}
	return out, nil
}

// FindByCode busca un centro de costo por código.
func (uc *UseCase) FindByCode(ctx context.Context, code string) (*dto.CostCenterResponse, error) {
	cc, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if cc == nil {
		return nil, fmt.Errorf("centro de costo %q: %w", code, domain.ErrNotFound)
	}
	return toResponse(cc), nil
}

func toResponse(cc *entity.CostCenter) *dto.CostCenterResponse {
	return &dto.CostCenterResponse{ID: cc.ID, Code: cc.Code, Description: cc.Description}
}
