package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/rfm-api/internal/application/dto"
	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/person"
)

// Columnas de la tabla users que puede asignar un patch.
const (
	colFullName  = "full_name"
	colEmail     = "email"
	colPhone     = "phone"
	colRoles     = "roles"
	colStatus    = "status"
	colHiredDate = "hired_date"
)

// CurrentNameFunc devuelve el full_name almacenado del registro que se actualiza.
type CurrentNameFunc func(ctx context.Context) (string, error)

// UserMapper traduce entre filas de users y el formato de la API.
type UserMapper struct {
	Casing      person.NameCasing
	RolesFormat person.RoleFormat
}

// FromStorageRow convierte una fila en la respuesta de la API.
func (m UserMapper) FromStorageRow(row *entity.UserRow) dto.UserResponse {
	name := person.SplitName(row.FullName)
	out := dto.UserResponse{
		ID:         row.ID,
		FirstName:  name.First,
		MiddleName: name.Middle,
		LastName:   name.Last,
		Email:      row.Email,
		Phone:      row.Phone,
		Roles:      person.DecodeRoles(row.Roles),
		Status:     row.Status,
		LastLogin:  row.LastLogin,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
		CreatedAtC: row.CreatedAt,
		UpdatedAtC: row.UpdatedAt,
	}
	if row.HiredDate != nil {
		d := row.HiredDate.Format(dto.DateLayout)
		out.HiredDate = &d
	}
	return out
}

// NewStorageRow arma la fila de alta a partir de la petición (sin password_hash).
func (m UserMapper) NewStorageRow(in dto.CreateUserRequest, id string, now time.Time) (*entity.UserRow, error) {
	name := person.SplitName(in.FullName)
	if strings.TrimSpace(in.FullName) == "" {
		name = person.Name{First: in.FirstName, Middle: in.MiddleName, Last: in.LastName}
	}
	hired, err := parseDate(in.HiredDate)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.UserStatusActive
	}
	return &entity.UserRow{
		ID:        id,
		FullName:  person.JoinName(name, m.Casing),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     emptyToNil(in.Phone),
		Roles:     person.EncodeRoles(in.Roles, m.RolesFormat),
		Status:    status,
		HiredDate: hired,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ToStorageAssignment convierte un patch disperso en asignaciones de columnas.
// Si solo llegan algunas partes del nombre, las demás se toman del nombre almacenado
// mediante currentName. Un patch sin campos devuelve domain.ErrNoFieldsToUpdate.
func (m UserMapper) ToStorageAssignment(ctx context.Context, patch dto.UpdateUserRequest, currentName CurrentNameFunc) (entity.ColumnAssignment, error) {
	var set entity.ColumnAssignment

	if patch.HasNameParts() {
		var name person.Name
		if patch.FirstName == nil || patch.MiddleName == nil || patch.LastName == nil {
			stored, err := currentName(ctx)
			if err != nil {
				return entity.ColumnAssignment{}, err
			}
			name = person.SplitName(stored)
		}
		if patch.FirstName != nil {
			name.First = *patch.FirstName
		}
		if patch.MiddleName != nil {
			name.Middle = *patch.MiddleName
		}
		if patch.LastName != nil {
			name.Last = *patch.LastName
		}
		set.Set(colFullName, person.JoinName(name, m.Casing))
	}
	if patch.Email != nil {
		set.Set(colEmail, strings.ToLower(strings.TrimSpace(*patch.Email)))
	}
	if patch.Phone != nil {
		set.Set(colPhone, emptyToNil(patch.Phone))
	}
	if patch.Roles != nil {
		set.Set(colRoles, person.EncodeRoles(*patch.Roles, m.RolesFormat))
	}
	if patch.Status != nil {
		set.Set(colStatus, *patch.Status)
	}
	if patch.HiredDate != nil {
		hired, err := parseDate(patch.HiredDate)
		if err != nil {
			return entity.ColumnAssignment{}, err
		}
		set.Set(colHiredDate, hired)
	}

	if set.Len() == 0 {
		return entity.ColumnAssignment{}, domain.ErrNoFieldsToUpdate
	}
	return set, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, *s)
	}
	return &t, nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
