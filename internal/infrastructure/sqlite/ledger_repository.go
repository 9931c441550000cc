package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre sqlite (usable con
// handle o tx). Persistencia pura: las fechas van como RFC 3339 y los
// decimales como TEXT, sin pasar por coma flotante.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro. Pasar handle o tx.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

func headerTable(stream entity.Stream) (string, error) {
	switch stream {
	case entity.StreamIncoming:
		return "incoming", nil
	case entity.StreamOutgoing:
		return "outgoing", nil
	case entity.StreamAdjustment:
		return "adjustments", nil
	}
	return "", fmt.Errorf("stream %q: %w", stream, domain.ErrValidation)
}

func formatDate(t time.Time) string {
	return t.Format(time.RFC3339)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored date %q: %w", s, err)
	}
	return t, nil
}

// InsertIncoming persiste una cabecera de recepción y devuelve el id que
// genera el almacén.
func (r *LedgerRepo) InsertIncoming(ctx context.Context, h *entity.IncomingHeader) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO incoming (date, dn_number, supplier, remarks)
		VALUES (?, ?, ?, ?)`,
		formatDate(h.Date), h.DNNumber, h.Supplier, h.Remarks,
	)
	if err != nil {
		return 0, fmt.Errorf("insert incoming header: %w", err)
	}
	return lastID(res, "incoming")
}

// InsertIncomingLines persiste las líneas de una recepción.
func (r *LedgerRepo) InsertIncomingLines(ctx context.Context, lines []*entity.IncomingLine) error {
	for _, l := range lines {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO incoming_lines (incoming_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)`,
			l.IncomingID, l.ProductID, l.Quantity, l.Price,
		)
		if err != nil {
			return fmt.Errorf("insert incoming line: %w", err)
		}
	}
	return nil
}

// InsertOutgoing persiste una cabecera de despacho y devuelve el id.
func (r *LedgerRepo) InsertOutgoing(ctx context.Context, h *entity.OutgoingHeader) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO outgoing (date, costcenter_id, remarks)
		VALUES (?, ?, ?)`,
		formatDate(h.Date), h.CostCenterID, h.Remarks,
	)
	if err != nil {
		return 0, fmt.Errorf("insert outgoing header: %w", err)
	}
	return lastID(res, "outgoing")
}

// InsertOutgoingLines persiste las líneas de un despacho.
func (r *LedgerRepo) InsertOutgoingLines(ctx context.Context, lines []*entity.OutgoingLine) error {
	for _, l := range lines {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO outgoing_lines (outgoing_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)`,
			l.OutgoingID, l.ProductID, l.Quantity, l.Price,
		)
		if err != nil {
			return fmt.Errorf("insert outgoing line: %w", err)
		}
	}
	return nil
}

// InsertAdjustment persiste una cabecera de ajuste y devuelve el id.
func (r *LedgerRepo) InsertAdjustment(ctx context.Context, h *entity.AdjustmentHeader) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO adjustments (date, remarks) VALUES (?, ?)`,
		formatDate(h.Date), h.Remarks,
	)
	if err != nil {
		return 0, fmt.Errorf("insert adjustment header: %w", err)
	}
	return lastID(res, "adjustments")
}

// InsertAdjustmentLines persiste las líneas de un ajuste. La cantidad llega
// ya con el signo de kind.
func (r *LedgerRepo) InsertAdjustmentLines(ctx context.Context, lines []*entity.AdjustmentLine) error {
	for _, l := range lines {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO adjustment_lines (adjustment_id, product_id, quantity, price, kind)
			VALUES (?, ?, ?, ?, ?)`,
			l.AdjustmentID, l.ProductID, l.Quantity, l.Price, l.Kind,
		)
		if err != nil {
			return fmt.Errorf("insert adjustment line: %w", err)
		}
	}
	return nil
}

func lastID(res sql.Result, table string) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s last insert id: %w", table, err)
	}
	return id, nil
}

// NextID avance del próximo id de cabecera de un stream, solo para mostrar
// en pantalla antes de guardar. No reserva nada: el id real lo asigna el
// almacén al insertar.
func (r *LedgerRepo) NextID(ctx context.Context, stream entity.Stream) (int64, error) {
	table, err := headerTable(stream)
	if err != nil {
		return 0, err
	}
	var next int64
	err = r.q.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COALESCE(MAX(id), 0) + 1 FROM %s`, table),
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next id %s: %w", table, err)
	}
	return next, nil
}

const movementsQuery = `
	SELECT 'incoming', l.incoming_id, l.product_id, h.date, l.quantity, l.price
	FROM incoming_lines l JOIN incoming h ON h.id = l.incoming_id
	%[1]s
	UNION ALL
	SELECT 'outgoing', l.outgoing_id, l.product_id, h.date, l.quantity, l.price
	FROM outgoing_lines l JOIN outgoing h ON h.id = l.outgoing_id
	%[1]s
	UNION ALL
	SELECT 'adjustment', l.adjustment_id, l.product_id, h.date, l.quantity, l.price
	FROM adjustment_lines l JOIN adjustments h ON h.id = l.adjustment_id
	%[1]s
	ORDER BY 4, 2`

// Movements todas las líneas de los tres streams para un producto.
func (r *LedgerRepo) Movements(ctx context.Context, productID int64) ([]entity.Movement, error) {
	query := fmt.Sprintf(movementsQuery, "WHERE l.product_id = ?")
	return r.queryMovements(ctx, query, productID, productID, productID)
}

// AllMovements todas las líneas de los tres streams, para la agregación de
// existencias.
func (r *LedgerRepo) AllMovements(ctx context.Context) ([]entity.Movement, error) {
	query := fmt.Sprintf(movementsQuery, "")
	return r.queryMovements(ctx, query)
}

func (r *LedgerRepo) queryMovements(ctx context.Context, query string, args ...any) ([]entity.Movement, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()
	var list []entity.Movement
	for rows.Next() {
		var m entity.Movement
		var stream, date string
		if err := rows.Scan(&stream, &m.HeaderID, &m.ProductID, &date, &m.Quantity, &m.Price); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Stream = entity.Stream(stream)
		if m.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetIncoming obtiene una cabecera de recepción con sus líneas;
// (nil, nil, nil) si no existe.
func (r *LedgerRepo) GetIncoming(ctx context.Context, id int64) (*entity.IncomingHeader, []*entity.IncomingLine, error) {
	var h entity.IncomingHeader
	var date string
	err := r.q.QueryRowContext(ctx, `
		SELECT id, date, dn_number, supplier, remarks FROM incoming WHERE id = ?`, id,
	).Scan(&h.ID, &date, &h.DNNumber, &h.Supplier, &h.Remarks)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get incoming: %w", err)
	}
	if h.Date, err = parseDate(date); err != nil {
		return nil, nil, err
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, incoming_id, product_id, quantity, price
		FROM incoming_lines WHERE incoming_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get incoming lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.IncomingLine
	for rows.Next() {
		var l entity.IncomingLine
		if err := rows.Scan(&l.ID, &l.IncomingID, &l.ProductID, &l.Quantity, &l.Price); err != nil {
			return nil, nil, fmt.Errorf("scan incoming line: %w", err)
		}
		lines = append(lines, &l)
	}
	return &h, lines, rows.Err()
}

// GetOutgoing obtiene una cabecera de despacho con sus líneas.
func (r *LedgerRepo) GetOutgoing(ctx context.Context, id int64) (*entity.OutgoingHeader, []*entity.OutgoingLine, error) {
	var h entity.OutgoingHeader
	var date string
	err := r.q.QueryRowContext(ctx, `
		SELECT id, date, costcenter_id, remarks FROM outgoing WHERE id = ?`, id,
	).Scan(&h.ID, &date, &h.CostCenterID, &h.Remarks)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get outgoing: %w", err)
	}
	if h.Date, err = parseDate(date); err != nil {
		return nil, nil, err
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, outgoing_id, product_id, quantity, price
		FROM outgoing_lines WHERE outgoing_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get outgoing lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.OutgoingLine
	for rows.Next() {
		var l entity.OutgoingLine
		if err := rows.Scan(&l.ID, &l.OutgoingID, &l.ProductID, &l.Quantity, &l.Price); err != nil {
			return nil, nil, fmt.Errorf("scan outgoing line: %w", err)
		}
		lines = append(lines, &l)
	}
	return &h, lines, rows.Err()
}

// GetAdjustment obtiene una cabecera de ajuste con sus líneas.
func (r *LedgerRepo) GetAdjustment(ctx context.Context, id int64) (*entity.AdjustmentHeader, []*entity.AdjustmentLine, error) {
	var h entity.AdjustmentHeader
	var date string
	err := r.q.QueryRowContext(ctx, `
		SELECT id, date, remarks FROM adjustments WHERE id = ?`, id,
	).Scan(&h.ID, &date, &h.Remarks)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get adjustment: %w", err)
	}
	if h.Date, err = parseDate(date); err != nil {
		return nil, nil, err
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, adjustment_id, product_id, quantity, price, kind
		FROM adjustment_lines WHERE adjustment_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get adjustment lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.AdjustmentLine
	for rows.Next() {
		var l entity.AdjustmentLine
		if err := rows.Scan(&l.ID, &l.AdjustmentID, &l.ProductID, &l.Quantity, &l.Price, &l.Kind); err != nil {
			return nil, nil, fmt.Errorf("scan adjustment line: %w", err)
		}
		lines = append(lines, &l)
	}
	return &h, lines, rows.Err()
}
