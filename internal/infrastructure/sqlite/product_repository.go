package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre sqlite
// (usable con handle o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para
// productos. Pasar handle o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo y devuelve el id generado.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO products (code, description, unit, price, max_qty, min_qty)
		VALUES (?, ?, ?, ?, ?, ?)`,
		product.Code, product.Description, product.Unit,
		product.Price, product.MaxQty, product.MinQty,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert product id: %w", err)
	}
	return id, nil
}

// GetByID obtiene un producto por id; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `
		SELECT id, code, description, unit, price, max_qty, min_qty
		FROM products WHERE id = ?`, id)
}

// GetByCode obtiene un producto por código. La unicidad del código es por
// convención; ante duplicados gana el primero por orden de creación.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.get(ctx, `
		SELECT id, code, description, unit, price, max_qty, min_qty
		FROM products WHERE code = ? ORDER BY id LIMIT 1`, code)
}

func (r *ProductRepo) get(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.Code, &p.Description, &p.Unit, &p.Price, &p.MaxQty, &p.MinQty,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza descripción, precio y niveles. Code y Unit no se tocan.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE products SET description = ?, price = ?, max_qty = ?, min_qty = ?
		WHERE id = ?`,
		product.Description, product.Price, product.MaxQty, product.MinQty, product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista el catálogo por id ascendente.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, code, description, unit, price, max_qty, min_qty
		FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.Unit, &p.Price, &p.MaxQty, &p.MinQty); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
