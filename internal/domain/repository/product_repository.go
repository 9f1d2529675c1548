package repository

import (
	"context"

	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
