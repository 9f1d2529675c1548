package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

var userCols = []string{"id", "full_name", "email", "phone", "password_hash", "roles", "status", "hired_date", "last_login", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepo_FindByID_LeeColumnasNativas(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewUserRepository(mock)

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)
	phone := "555-0101"
	mock.ExpectQuery(regexp.QuoteMeta(queryUserByID)).
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(
			"u-1", "LEO ESPINOSA", "leo@rfm.test", &phone, (*string)(nil), `["Seamster","Cutter"]`, "Active",
			(*time.Time)(nil), (*time.Time)(nil), created, updated,
		))

	row, err := repo.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, "LEO ESPINOSA", row.FullName)
	assert.Equal(t, `["Seamster","Cutter"]`, row.Roles)
	assert.Equal(t, "555-0101", *row.Phone)
	assert.Nil(t, row.PasswordHash)
	assert.Equal(t, updated, row.UpdatedAt, "updated_at viene de su propia columna")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_FindByID_NoExiste(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(queryUserByID)).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows(userCols))

	row, err := repo.FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, row)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_List_Filtros(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewUserRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(queryUserList)).
		WithArgs("Active", "Cutter").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("u-1", "A B", "a@rfm.test", (*string)(nil), (*string)(nil), "Cutter,Designer", "Active", (*time.Time)(nil), (*time.Time)(nil), now, now).
			AddRow("u-2", "C D", "c@rfm.test", (*string)(nil), (*string)(nil), "Cutter", "Active", (*time.Time)(nil), (*time.Time)(nil), now, now))

	list, err := repo.List(context.Background(), entity.UserFilter{Role: "Cutter", Status: "Active"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "u-2", list[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_EmailDuplicado(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(queryUserInsert)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	err := repo.Create(context.Background(), &entity.UserRow{ID: "u-1", Email: "dup@rfm.test", Roles: "[]"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateColumns(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewUserRepository(mock)
	set := entity.ColumnAssignment{}
	set.Set("full_name", "JANE Q PUBLIC")
	set.Set("status", "Inactive")

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET full_name = $1, status = $2, updated_at = now() WHERE id = $3`)).
		WithArgs("JANE Q PUBLIC", "Inactive", "u-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET full_name = $1, status = $2, updated_at = now() WHERE id = $3`)).
		WithArgs("JANE Q PUBLIC", "Inactive", "nope").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.UpdateColumns(context.Background(), "u-1", set))
	assert.ErrorIs(t, repo.UpdateColumns(context.Background(), "nope", set), domain.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateColumns(context.Background(), "u-1", entity.ColumnAssignment{}), domain.ErrNoFieldsToUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_DeleteYTouchLastLogin(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(queryUserDelete)).WithArgs("u-1").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta(queryUserTouchLogin)).WithArgs("u-1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.ErrorIs(t, repo.Delete(context.Background(), "u-1"), domain.ErrNotFound)
	assert.NoError(t, repo.TouchLastLogin(context.Background(), "u-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}
