package repository

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

// CanvasRepository define el puerto de persistencia para diseños guardados.
type CanvasRepository interface {
	Create(ctx context.Context, canvas *entity.Canvas) error
	// List devuelve los diseños sin Data, más recientes primero.
	List(ctx context.Context) ([]*entity.Canvas, error)
	FindByID(ctx context.Context, id string) (*entity.Canvas, error)
	Update(ctx context.Context, id, name string, data json.RawMessage) (*entity.Canvas, error)
	Delete(ctx context.Context, id string) error
}
