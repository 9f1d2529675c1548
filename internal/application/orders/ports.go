package orders

import (
	"context"

	"github.com/jhoicas/rfm-api/internal/domain/repository"
)

// OrderTxRunner ejecuta fn dentro de una transacción con el repositorio atado a ella.
// Si fn retorna error se hace rollback.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(repo repository.OrderRepository) error) error
}
