package repository

import (
	"context"

	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para empleados (tabla users).
// Los métodos Find* devuelven (nil, nil) cuando la fila no existe.
type UserRepository interface {
	Create(ctx context.Context, row *entity.UserRow) error
	FindByID(ctx context.Context, id string) (*entity.UserRow, error)
	FindByEmail(ctx context.Context, email string) (*entity.UserRow, error)
	List(ctx context.Context, filter entity.UserFilter) ([]*entity.UserRow, error)
	// UpdateColumns aplica un UPDATE parcial; domain.ErrNotFound si no afectó filas.
	UpdateColumns(ctx context.Context, id string, set entity.ColumnAssignment) error
	Delete(ctx context.Context, id string) error
	TouchLastLogin(ctx context.Context, id string) error
}
