package ports

import (
	"context"

	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

// TicketRenderer genera la orden de trabajo imprimible de un pedido.
type TicketRenderer interface {
	RenderOrderTicket(ctx context.Context, order *entity.Order, history []*entity.StageChange) ([]byte, error)
}
