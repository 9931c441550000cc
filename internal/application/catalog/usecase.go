package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	ledgerdomain "github.com/jhoicas/inventario-core/internal/domain/ledger"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// UseCase operaciones del catálogo maestro de productos.
// La unicidad del código es convención del operador, no se exige aquí;
// FindByCode devuelve el primero por orden de creación.
type UseCase struct {
	repo repository.ProductRepository
}

// NewUseCase construye el caso de uso del catálogo.
func NewUseCase(repo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create da de alta un producto. Code y Description son obligatorios; los
// montos llegan como texto y deben ser números no negativos.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" {
		return nil, fmt.Errorf("code requerido: %w", domain.ErrValidation)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("description requerida: %w", domain.ErrValidation)
	}
	price, err := ledgerdomain.ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	maxQty, err := ledgerdomain.ParsePrice(in.MaxQty)
	if err != nil {
		return nil, err
	}
	minQty, err := ledgerdomain.ParsePrice(in.MinQty)
	if err != nil {
		return nil, err
	}
	product := &entity.Product{
		Code:        in.Code,
		Description: in.Description,
		Unit:        in.Unit,
		Price:       price,
		MaxQty:      maxQty,
		MinQty:      minQty,
	}
	id, err := uc.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id
	return toProductResponse(product), nil
}

// Update edita un producto existente. Code y Unit son inmutables: se
// conservan los valores ya persistidos.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Description == "" {
		return nil, fmt.Errorf("description requerida: %w", domain.ErrValidation)
	}
	price, err := ledgerdomain.ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	maxQty, err := ledgerdomain.ParsePrice(in.MaxQty)
	if err != nil {
		return nil, err
	}
	minQty, err := ledgerdomain.ParsePrice(in.MinQty)
	if err != nil {
		return nil, err
	}
	product.Description = in.Description
	product.Price = price
	product.MaxQty = maxQty
	product.MinQty = minQty
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista el catálogo completo por id ascendente.
func (uc *UseCase) List(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// GetByID obtiene un producto por id.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// FindByCode busca un producto por código. No encontrarlo es un error de
// captura del usuario, no una falla del sistema.
func (uc *UseCase) FindByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %q: %w", code, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Description: p.Description,
		Unit:        p.Unit,
		Price:       p.Price,
		MaxQty:      p.MaxQty,
		MinQty:      p.MinQty,
	}
}
