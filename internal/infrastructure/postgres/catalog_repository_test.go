package postgres

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

var productCols = []string{"id", "product_name", "category", "base_price", "description", "image_url", "cloudinary_public_id",
	"status", "stock_quantity", "sku", "sizes", "tags", "created_at", "updated_at"}

func TestProductRepo_ListConFiltros(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewProductRepository(mock)
	now := time.Now().UTC()
	sku := "JER-001"

	mock.ExpectQuery(regexp.QuoteMeta(queryProductList)).
		WithArgs("Jerseys", "").
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow("p-1", "Jersey", "Jerseys", decimal.RequireFromString("350.00"), "", "https://img/j.png", "rfm/j",
				"Active", 5, &sku, []string{"S", "M"}, []string{"sport"}, now, now).
			AddRow("p-2", "Jersey Kids", "Jerseys", decimal.NewFromInt(250), "", "https://img/k.png", "",
				"Archived", 0, (*string)(nil), []string{}, []string{}, now, now))

	list, err := repo.List(context.Background(), entity.ProductFilter{Category: "Jerseys"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "JER-001", list[0].SKU)
	assert.True(t, list[0].BasePrice.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, []string{"S", "M"}, list[0].Sizes)
	assert.Empty(t, list[1].SKU)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_SetStatusNoExiste(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(queryProductStatus)).
		WithArgs("p-404", entity.ProductStatusArchived).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetStatus(context.Background(), "p-404", entity.ProductStatusArchived)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanvasRepo_UpdateDevuelveFila(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	repo := NewCanvasRepository(mock)
	now := time.Now().UTC()
	data := json.RawMessage(`{"objects":[]}`)
	cols := []string{"id", "name", "canvas_data", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta(queryCanvasUpdate)).
		WithArgs("c-1", "Logo", data).
		WillReturnRows(pgxmock.NewRows(cols).AddRow("c-1", "Logo", data, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(queryCanvasUpdate)).
		WithArgs("c-404", "Logo", data).
		WillReturnRows(pgxmock.NewRows(cols))

	c, err := repo.Update(context.Background(), "c-1", "Logo", data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"objects":[]}`, string(c.Data))

	_, err = repo.Update(context.Background(), "c-404", "Logo", data)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
