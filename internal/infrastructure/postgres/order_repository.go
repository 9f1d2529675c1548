package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_ref, client, order_date, stage, position, qty, created_at, updated_at`

const (
	queryOrderInsert = `
		INSERT INTO production_orders (id, order_ref, client, order_date, stage, position, qty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	queryOrderByID    = `SELECT ` + orderColumns + ` FROM production_orders WHERE id = $1`
	queryOrderListAll = `SELECT ` + orderColumns + ` FROM production_orders ORDER BY stage, position`
	queryOrderLockCol = `SELECT pg_advisory_xact_lock(hashtext('production_orders:' || $1))`
	queryOrderNextPos = `SELECT COALESCE(MAX(position) + 1, 0) FROM production_orders WHERE stage = $1`
	queryOrderShift   = `UPDATE production_orders SET position = position + 1 WHERE stage = $1 AND position >= $2`
	queryOrderStage   = `UPDATE production_orders SET stage = $2, position = $3, updated_at = now() WHERE id = $1`
	queryStageInsert  = `
		INSERT INTO order_stage_history (order_id, from_stage, to_stage, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5)`
	queryStageList = `
		SELECT order_id, from_stage, to_stage, changed_by, changed_at
		FROM order_stage_history WHERE order_id = $1 ORDER BY changed_at`
)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	db Querier
}

// NewOrderRepository construye el repositorio; db puede ser el pool o una tx.
func NewOrderRepository(db Querier) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create persiste una orden. order_ref duplicado → domain.ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.db.Exec(ctx, queryOrderInsert,
		o.ID, o.OrderRef, o.Client, o.OrderDate, string(o.Stage), o.Position, o.Qty, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// FindByID obtiene una orden por ID.
func (r *OrderRepo) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, queryOrderByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListAll devuelve todas las órdenes del tablero.
func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.db.Query(ctx, queryOrderListAll)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// lockColumn serializa las escrituras de posición sobre una columna hasta el fin de la tx.
// Fuera de una transacción el lock se libera al terminar la sentencia.
func (r *OrderRepo) lockColumn(ctx context.Context, stage entity.Stage) error {
	if _, err := r.db.Exec(ctx, queryOrderLockCol, string(stage)); err != nil {
		return fmt.Errorf("lock column %s: %w", stage, err)
	}
	return nil
}

// NextPosition devuelve MAX(position)+1 de la columna, o 0 si está vacía.
func (r *OrderRepo) NextPosition(ctx context.Context, stage entity.Stage) (int, error) {
	if err := r.lockColumn(ctx, stage); err != nil {
		return 0, err
	}
	var pos int
	if err := r.db.QueryRow(ctx, queryOrderNextPos, string(stage)).Scan(&pos); err != nil {
		return 0, fmt.Errorf("next position: %w", err)
	}
	return pos, nil
}

// ShiftFrom abre un hueco en position desplazando las órdenes siguientes.
func (r *OrderRepo) ShiftFrom(ctx context.Context, stage entity.Stage, position int) error {
	if err := r.lockColumn(ctx, stage); err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, queryOrderShift, string(stage), position); err != nil {
		return fmt.Errorf("shift positions: %w", err)
	}
	return nil
}

// UpdateStage mueve la orden. domain.ErrNotFound si no existe.
func (r *OrderRepo) UpdateStage(ctx context.Context, id string, stage entity.Stage, position int) error {
	tag, err := r.db.Exec(ctx, queryOrderStage, id, string(stage), position)
	if err != nil {
		return fmt.Errorf("update order stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InsertStageChange registra un movimiento en el historial.
func (r *OrderRepo) InsertStageChange(ctx context.Context, c *entity.StageChange) error {
	_, err := r.db.Exec(ctx, queryStageInsert, c.OrderID, string(c.FromStage), string(c.ToStage), c.ChangedBy, c.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert stage change: %w", err)
	}
	return nil
}

// ListStageChanges devuelve el historial de una orden en orden cronológico.
func (r *OrderRepo) ListStageChanges(ctx context.Context, orderID string) ([]*entity.StageChange, error) {
	rows, err := r.db.Query(ctx, queryStageList, orderID)
	if err != nil {
		return nil, fmt.Errorf("list stage changes: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StageChange, 0)
	for rows.Next() {
		var (
			c        entity.StageChange
			from, to string
		)
		if err := rows.Scan(&c.OrderID, &from, &to, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan stage change: %w", err)
		}
		c.FromStage, c.ToStage = entity.Stage(from), entity.Stage(to)
		list = append(list, &c)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o     entity.Order
		stage string
	)
	err := row.Scan(&o.ID, &o.OrderRef, &o.Client, &o.OrderDate, &stage, &o.Position, &o.Qty, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Stage = entity.Stage(stage)
	return &o, nil
}
