package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rfm-api/internal/application/dto"
	"github.com/jhoicas/rfm-api/internal/application/usecase"
	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/person"
)

var (
	upperMapper    = usecase.UserMapper{Casing: person.NameCasingUpper, RolesFormat: person.RoleFormatJSON}
	preserveMapper = usecase.UserMapper{Casing: person.NameCasingPreserve, RolesFormat: person.RoleFormatCSV}
)

// storedName simula la consulta del nombre actual y cuenta las llamadas.
func storedName(name string, calls *int) usecase.CurrentNameFunc {
	return func(context.Context) (string, error) {
		*calls++
		return name, nil
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// FromStorageRow
// ──────────────────────────────────────────────────────────────────────────────

func TestFromStorageRow_EmpleadoCompleto(t *testing.T) {
	row := &entity.UserRow{
		ID:       "u-1",
		FullName: "LEO ESPINOSA",
		Roles:    `["Seamster","Cutter"]`,
		Status:   "Active",
	}

	got := upperMapper.FromStorageRow(row)

	assert.Equal(t, "LEO", got.FirstName)
	assert.Empty(t, got.MiddleName)
	assert.Equal(t, "ESPINOSA", got.LastName)
	assert.Equal(t, []string{"Seamster", "Cutter"}, got.Roles)
	assert.Equal(t, "Active", got.Status)
}

// Regresión: updated_at sale de la columna UpdatedAt, nunca de CreatedAt ni vacío.
func TestFromStorageRow_UpdatedAtDesdeColumnaCorrecta(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC)
	row := &entity.UserRow{ID: "u-1", FullName: "Ana", Roles: nil, CreatedAt: created, UpdatedAt: updated}

	got := upperMapper.FromStorageRow(row)

	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, updated, got.UpdatedAt)
	assert.Equal(t, updated, got.UpdatedAtC)
	assert.Equal(t, []string{}, got.Roles)
}

func TestFromStorageRow_FechaContratacion(t *testing.T) {
	hired := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	row := &entity.UserRow{ID: "u-1", FullName: "Jane Q Public", Roles: []byte("Cutter, Designer"), HiredDate: &hired}

	got := preserveMapper.FromStorageRow(row)

	require.NotNil(t, got.HiredDate)
	assert.Equal(t, "2023-09-01", *got.HiredDate)
	assert.Equal(t, "Q", got.MiddleName)
	assert.Equal(t, []string{"Cutter", "Designer"}, got.Roles)
}

// ──────────────────────────────────────────────────────────────────────────────
// ToStorageAssignment
// ──────────────────────────────────────────────────────────────────────────────

func TestToStorageAssignment_PatchVacio(t *testing.T) {
	calls := 0
	set, err := upperMapper.ToStorageAssignment(context.Background(), dto.UpdateUserRequest{}, storedName("Jane Public", &calls))

	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	assert.False(t, errors.Is(err, domain.ErrNotFound), "patch vacío no debe confundirse con not-found")
	assert.Zero(t, set.Len())
	assert.Zero(t, calls, "sin campos no debe consultarse el nombre")
}

func TestToStorageAssignment_SoloSegundoNombre(t *testing.T) {
	tests := []struct {
		name   string
		mapper usecase.UserMapper
		want   string
	}{
		{"mayúsculas", upperMapper, "JANE Q PUBLIC"},
		{"preserva", preserveMapper, "Jane Q Public"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			set, err := tt.mapper.ToStorageAssignment(context.Background(),
				dto.UpdateUserRequest{MiddleName: strPtr("Q")}, storedName("Jane Public", &calls))

			require.NoError(t, err)
			assert.Equal(t, 1, calls, "debe consultar el nombre almacenado")
			assert.Equal(t, []string{"full_name"}, set.Columns)
			assert.Equal(t, []any{tt.want}, set.Values)
		})
	}
}

func TestToStorageAssignment_NombreCompletoSinConsulta(t *testing.T) {
	calls := 0
	patch := dto.UpdateUserRequest{FirstName: strPtr("Ana"), MiddleName: strPtr(""), LastName: strPtr("Ruiz")}

	set, err := preserveMapper.ToStorageAssignment(context.Background(), patch, storedName("X Y", &calls))

	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Equal(t, []any{"Ana Ruiz"}, set.Values)
}

func TestToStorageAssignment_RolesYEscalares(t *testing.T) {
	roles := []string{"Cutter", "Designer"}
	patch := dto.UpdateUserRequest{
		Email:     strPtr(" Ana@Example.com "),
		Phone:     strPtr(""),
		Roles:     &roles,
		Status:    strPtr("Inactive"),
		HiredDate: strPtr("2024-02-29"),
	}
	calls := 0

	set, err := upperMapper.ToStorageAssignment(context.Background(), patch, storedName("", &calls))
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "phone", "roles", "status", "hired_date"}, set.Columns)
	assert.Equal(t, "ana@example.com", set.Values[0])
	assert.Nil(t, set.Values[1])
	assert.Equal(t, `["Cutter","Designer"]`, set.Values[2])
	assert.Equal(t, "Inactive", set.Values[3])
	hired, ok := set.Values[4].(*time.Time)
	require.True(t, ok)
	assert.Equal(t, "2024-02-29", hired.Format(dto.DateLayout))
	assert.Zero(t, calls, "sin partes del nombre no se consulta el nombre")
}

func TestToStorageAssignment_RolesCSV(t *testing.T) {
	roles := []string{"Cutter", "Designer"}
	calls := 0
	set, err := preserveMapper.ToStorageAssignment(context.Background(), dto.UpdateUserRequest{Roles: &roles}, storedName("", &calls))

	require.NoError(t, err)
	assert.Equal(t, []any{"Cutter,Designer"}, set.Values)
}

func TestToStorageAssignment_ErrorDeConsultaSePropaga(t *testing.T) {
	lookup := func(context.Context) (string, error) { return "", domain.ErrUserNotFound }

	_, err := upperMapper.ToStorageAssignment(context.Background(), dto.UpdateUserRequest{LastName: strPtr("Doe")}, lookup)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestToStorageAssignment_FechaInvalida(t *testing.T) {
	calls := 0
	_, err := upperMapper.ToStorageAssignment(context.Background(), dto.UpdateUserRequest{HiredDate: strPtr("01/02/2024")}, storedName("", &calls))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// NewStorageRow
// ──────────────────────────────────────────────────────────────────────────────

func TestNewStorageRow_DesdePartesDelNombre(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := dto.CreateUserRequest{
		FirstName: "José", MiddleName: "", LastName: "Niño",
		Email: "JOSE@rfm.test", Roles: []string{"Designer"},
	}

	row, err := upperMapper.NewStorageRow(in, "u-9", now)
	require.NoError(t, err)

	assert.Equal(t, "JOSÉ NIÑO", row.FullName)
	assert.Equal(t, "jose@rfm.test", row.Email)
	assert.Equal(t, `["Designer"]`, row.Roles)
	assert.Equal(t, entity.UserStatusActive, row.Status)
	assert.Equal(t, now, row.CreatedAt)
	assert.Equal(t, now, row.UpdatedAt)
}

func TestNewStorageRow_FullNameTienePrioridad(t *testing.T) {
	in := dto.CreateUserRequest{FullName: "  mary   ann  lee ", FirstName: "ignored", Email: "m@rfm.test", Roles: []string{"Cutter"}, Status: "Inactive"}

	row, err := preserveMapper.NewStorageRow(in, "u-1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "mary ann lee", row.FullName)
	assert.Equal(t, "Cutter", row.Roles)
	assert.Equal(t, "Inactive", row.Status)
}
