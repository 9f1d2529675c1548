package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/repository"
)

var orderCols = []string{"id", "order_ref", "client", "order_date", "stage", "position", "qty", "created_at", "updated_at"}

func TestTxRunner_MovimientoCompletoHaceCommit(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	runner := NewTxRunner(mock)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(queryOrderByID)).
		WithArgs("o-1").
		WillReturnRows(pgxmock.NewRows(orderCols).AddRow("o-1", "RFM-1", "Club", (*time.Time)(nil), "designing", 0, 10, now, now))
	mock.ExpectExec(regexp.QuoteMeta(queryOrderLockCol)).
		WithArgs("ripping").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec(regexp.QuoteMeta(queryOrderShift)).
		WithArgs("ripping", 0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectExec(regexp.QuoteMeta(queryOrderStage)).
		WithArgs("o-1", "ripping", 0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(queryStageInsert)).
		WithArgs("o-1", "designing", "ripping", "admin-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := runner.RunOrders(context.Background(), func(repo repository.OrderRepository) error {
		ctx := context.Background()
		o, err := repo.FindByID(ctx, "o-1")
		if err != nil {
			return err
		}
		require.NotNil(t, o)
		assert.Equal(t, entity.StageDesigning, o.Stage)
		if err := repo.ShiftFrom(ctx, entity.StageRipping, 0); err != nil {
			return err
		}
		if err := repo.UpdateStage(ctx, "o-1", entity.StageRipping, 0); err != nil {
			return err
		}
		return repo.InsertStageChange(ctx, &entity.StageChange{
			OrderID: "o-1", FromStage: entity.StageDesigning, ToStage: entity.StageRipping, ChangedBy: "admin-1", ChangedAt: now,
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_ErrorHaceRollback(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	runner := NewTxRunner(mock)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("fallo en el caso de uso")
	err := runner.RunOrders(context.Background(), func(repository.OrderRepository) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_NextPositionYHistorial(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(queryOrderLockCol)).
		WithArgs("qc").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(regexp.QuoteMeta(queryOrderNextPos)).
		WithArgs("qc").
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(queryStageList)).
		WithArgs("o-1").
		WillReturnRows(pgxmock.NewRows([]string{"order_id", "from_stage", "to_stage", "changed_by", "changed_at"}).
			AddRow("o-1", "designing", "ripping", "admin-1", at))

	pos, err := repo.NextPosition(context.Background(), entity.StageQC)
	require.NoError(t, err)
	assert.Equal(t, 3, pos)

	hist, err := repo.ListStageChanges(context.Background(), "o-1")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.StageRipping, hist[0].ToStage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_NextPosition_SinLockNoLeeColumna(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(queryOrderLockCol)).
		WithArgs("designing").
		WillReturnError(errors.New("lock timeout"))

	_, err := repo.NextPosition(context.Background(), entity.StageDesigning)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock column designing")
	assert.NoError(t, mock.ExpectationsWereMet(), "MAX(position) no se consulta sin el lock")
}
