package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/rfm-api/internal/application/dto"
	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// Valores del selector de la vista de empleados que no filtran.
const (
	filterAllEmployees = "All Employees"
)

// UserUseCase aplica reglas de negocio para empleados.
type UserUseCase struct {
	repo   repository.UserRepository
	mapper UserMapper
	now    func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, mapper UserMapper) *UserUseCase {
	return &UserUseCase{repo: repo, mapper: mapper, now: time.Now}
}

// List devuelve los empleados según los filtros del selector de la vista.
func (uc *UserUseCase) List(ctx context.Context, q dto.UserListQuery) ([]dto.UserResponse, error) {
	rows, err := uc.repo.List(ctx, listFilter(q))
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, uc.mapper.FromStorageRow(r))
	}
	return out, nil
}

// listFilter traduce los valores del selector: el mismo control envía roles y estados.
func listFilter(q dto.UserListQuery) entity.UserFilter {
	var f entity.UserFilter
	if q.Status != "" && q.Status != filterAllEmployees {
		f.Status = q.Status
	}
	switch q.Role {
	case "", filterAllEmployees, entity.UserStatusActive, entity.UserStatusInactive:
	default:
		f.Role = q.Role
	}
	return f
}

// GetByID obtiene un empleado; domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	row, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrUserNotFound
	}
	out := uc.mapper.FromStorageRow(row)
	return &out, nil
}

// Create da de alta un empleado. El password es opcional: sin él no puede entrar al panel.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	row, err := uc.mapper.NewStorageRow(in, uuid.New().String(), uc.now().UTC())
	if err != nil {
		return nil, err
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		row.PasswordHash = &h
	}
	if err := uc.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	out := uc.mapper.FromStorageRow(row)
	return &out, nil
}

// Update aplica un patch disperso. Patch vacío: domain.ErrNoFieldsToUpdate; sin fila: domain.ErrUserNotFound.
func (uc *UserUseCase) Update(ctx context.Context, id string, patch dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	set, err := uc.mapper.ToStorageAssignment(ctx, patch, func(ctx context.Context) (string, error) {
		row, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		if row == nil {
			return "", domain.ErrUserNotFound
		}
		return row.FullName, nil
	})
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateColumns(ctx, id, set); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un empleado de forma definitiva.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

// TouchLastLogin marca el último acceso del empleado.
func (uc *UserUseCase) TouchLastLogin(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := uc.repo.TouchLastLogin(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}
