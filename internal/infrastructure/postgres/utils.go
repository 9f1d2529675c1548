package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

// Querier abstrae *pgxpool.Pool y pgx.Tx para que los repos funcionen dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolationCode = "23505"

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}

// buildUpdate arma un UPDATE parcial con placeholders posicionales y updated_at = now().
// Las columnas vienen de constantes del mapper, nunca de la petición.
func buildUpdate(table, id string, set entity.ColumnAssignment) (string, []any) {
	parts := make([]string, 0, set.Len()+1)
	args := make([]any, 0, set.Len()+1)
	for i, col := range set.Columns {
		parts = append(parts, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, set.Values[i])
	}
	parts = append(parts, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(parts, ", "), len(args))
	return query, args
}
