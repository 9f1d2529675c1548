package repository

import (
	"context"

	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia del tablero de producción.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	// NextPosition devuelve la posición libre al final de la columna.
	NextPosition(ctx context.Context, stage entity.Stage) (int, error)
	// ShiftFrom desplaza una posición hacia abajo las órdenes de la columna desde position.
	ShiftFrom(ctx context.Context, stage entity.Stage, position int) error
	UpdateStage(ctx context.Context, id string, stage entity.Stage, position int) error
	InsertStageChange(ctx context.Context, change *entity.StageChange) error
	ListStageChanges(ctx context.Context, orderID string) ([]*entity.StageChange, error)
}
