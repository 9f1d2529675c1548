package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rfm-api/internal/application/orders"
	"github.com/jhoicas/rfm-api/internal/domain/repository"
)

var _ orders.OrderTxRunner = (*TxRunner)(nil)

// TxBeginner lo cumplen *pgxpool.Pool y el pool de pgxmock.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool TxBeginner) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrders inicia una transacción, ejecuta fn con el repo de órdenes atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(repo repository.OrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
