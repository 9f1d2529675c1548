package repository

import (
	"context"

	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para cuentas de cliente.
type CustomerRepository interface {
	Create(ctx context.Context, account *entity.CustomerAccount) error
	FindByID(ctx context.Context, id string) (*entity.CustomerAccount, error)
	FindByEmail(ctx context.Context, email string) (*entity.CustomerAccount, error)
	TouchLastLogin(ctx context.Context, id string) error
}
