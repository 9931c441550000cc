package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.CostCenterRepository = (*CostCenterRepo)(nil)

// CostCenterRepo implementación de CostCenterRepository sobre sqlite.
type CostCenterRepo struct {
	q Querier
}

// NewCostCenterRepository construye el adaptador. Pasar handle o tx.
func NewCostCenterRepository(q Querier) *CostCenterRepo {
	return &CostCenterRepo{q: q}
}

// Create persiste un centro de costo y devuelve el id generado.
func (r *CostCenterRepo) Create(ctx context.Context, cc *entity.CostCenter) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO costcenters (code, description) VALUES (?, ?)`,
		cc.Code, cc.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("insert costcenter: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert costcenter id: %w", err)
	}
	return id, nil
}

// GetByID obtiene un centro de costo por id; (nil, nil) si no existe.
func (r *CostCenterRepo) GetByID(ctx context.Context, id int64) (*entity.CostCenter, error) {
	return r.get(ctx, `SELECT id, code, description FROM costcenters WHERE id = ?`, id)
}

// GetByCode obtiene un centro de costo por código.
func (r *CostCenterRepo) GetByCode(ctx context.Context, code string) (*entity.CostCenter, error) {
	return r.get(ctx, `SELECT id, code, description FROM costcenters WHERE code = ? ORDER BY id LIMIT 1`, code)
}

func (r *CostCenterRepo) get(ctx context.Context, query string, arg any) (*entity.CostCenter, error) {
	var cc entity.CostCenter
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&cc.ID, &cc.Code, &cc.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get costcenter: %w", err)
	}
	return &cc, nil
}

// List lista los centros de costo por id ascendente.
func (r *CostCenterRepo) List(ctx context.Context) ([]*entity.CostCenter, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, code, description FROM costcenters ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list costcenters: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostCenter
	for rows.Next() {
		var cc entity.CostCenter
		if err := rows.Scan(&cc.ID, &cc.Code, &cc.Description); err != nil {
			return nil, fmt.Errorf("scan costcenter: %w", err)
		}
		list = append(list, &cc)
	}
	return list, rows.Err()
}
