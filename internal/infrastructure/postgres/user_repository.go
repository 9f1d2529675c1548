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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, full_name, email, phone, password_hash, roles, status, hired_date, last_login, created_at, updated_at`

const (
	queryUserInsert = `
		INSERT INTO users (id, full_name, email, phone, password_hash, roles, status, hired_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	queryUserByID    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	queryUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	queryUserList    = `SELECT ` + userColumns + ` FROM users
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR roles ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC`
	queryUserDelete     = `DELETE FROM users WHERE id = $1`
	queryUserTouchLogin = `UPDATE users SET last_login = now() WHERE id = $1`
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para empleados.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo empleado.
func (r *UserRepo) Create(ctx context.Context, row *entity.UserRow) error {
	_, err := r.db.Exec(ctx, queryUserInsert,
		row.ID, row.FullName, row.Email, row.Phone, row.PasswordHash, row.Roles, row.Status,
		row.HiredDate, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID obtiene un empleado por ID.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.UserRow, error) {
	u, err := scanUserRow(r.db.QueryRow(ctx, queryUserByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// FindByEmail obtiene un empleado por email, sin distinguir mayúsculas.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.UserRow, error) {
	u, err := scanUserRow(r.db.QueryRow(ctx, queryUserByEmail, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// List lista empleados filtrando por estado y rol (coincidencia parcial sobre la columna roles).
func (r *UserRepo) List(ctx context.Context, filter entity.UserFilter) ([]*entity.UserRow, error) {
	rows, err := r.db.Query(ctx, queryUserList, filter.Status, filter.Role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.UserRow, 0)
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// UpdateColumns aplica un UPDATE parcial. domain.ErrNotFound si el id no existe.
func (r *UserRepo) UpdateColumns(ctx context.Context, id string, set entity.ColumnAssignment) error {
	if set.Len() == 0 {
		return domain.ErrNoFieldsToUpdate
	}
	query, args := buildUpdate("users", id, set)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un empleado por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, queryUserDelete, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TouchLastLogin marca last_login = now().
func (r *UserRepo) TouchLastLogin(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, queryUserTouchLogin, id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanUserRow lee las columnas de userColumns. roles se escanea sin tipar: el
// driver entrega texto, y la decodificación ocurre en el mapper.
func scanUserRow(row pgx.Row) (*entity.UserRow, error) {
	var u entity.UserRow
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash, &u.Roles, &u.Status,
		&u.HiredDate, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
