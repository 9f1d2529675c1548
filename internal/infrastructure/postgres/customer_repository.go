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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, email, password_hash, full_name, phone, address, last_login, created_at, updated_at`

const (
	queryCustomerInsert = `
		INSERT INTO customer_accounts (id, email, password_hash, full_name, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	queryCustomerByID       = `SELECT ` + customerColumns + ` FROM customer_accounts WHERE id = $1`
	queryCustomerByEmail    = `SELECT ` + customerColumns + ` FROM customer_accounts WHERE email = $1`
	queryCustomerTouchLogin = `UPDATE customer_accounts SET last_login = now() WHERE id = $1`
)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	db Querier
}

// NewCustomerRepository construye el repositorio de cuentas de cliente.
func NewCustomerRepository(db Querier) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// Create persiste una cuenta nueva.
func (r *CustomerRepo) Create(ctx context.Context, a *entity.CustomerAccount) error {
	_, err := r.db.Exec(ctx, queryCustomerInsert,
		a.ID, a.Email, a.PasswordHash, a.FullName, a.Phone, a.Address, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert customer account: %w", err)
	}
	return nil
}

// FindByID obtiene una cuenta por ID.
func (r *CustomerRepo) FindByID(ctx context.Context, id string) (*entity.CustomerAccount, error) {
	return r.findOne(ctx, queryCustomerByID, id)
}

// FindByEmail obtiene una cuenta por email (almacenado en minúsculas).
func (r *CustomerRepo) FindByEmail(ctx context.Context, email string) (*entity.CustomerAccount, error) {
	return r.findOne(ctx, queryCustomerByEmail, email)
}

func (r *CustomerRepo) findOne(ctx context.Context, query string, arg string) (*entity.CustomerAccount, error) {
	var a entity.CustomerAccount
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Phone, &a.Address, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer account: %w", err)
	}
	return &a, nil
}

// TouchLastLogin marca last_login = now().
func (r *CustomerRepo) TouchLastLogin(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, queryCustomerTouchLogin, id)
	if err != nil {
		return fmt.Errorf("touch customer last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
