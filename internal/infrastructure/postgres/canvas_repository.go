package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/repository"
)

var _ repository.CanvasRepository = (*CanvasRepo)(nil)

const (
	queryCanvasInsert = `
		INSERT INTO canvas_designs (id, name, canvas_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	queryCanvasList = `SELECT id, name, created_at, updated_at FROM canvas_designs ORDER BY updated_at DESC`
	queryCanvasByID = `SELECT id, name, canvas_data, created_at, updated_at FROM canvas_designs WHERE id = $1`
	queryCanvasUpdate = `
		UPDATE canvas_designs SET name = $2, canvas_data = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, name, canvas_data, created_at, updated_at`
	queryCanvasDelete = `DELETE FROM canvas_designs WHERE id = $1`
)

// CanvasRepo implementación del puerto CanvasRepository sobre PostgreSQL (canvas_data JSONB).
type CanvasRepo struct {
	db Querier
}

// NewCanvasRepository construye el repositorio de diseños.
func NewCanvasRepository(db Querier) *CanvasRepo {
	return &CanvasRepo{db: db}
}

// Create persiste un diseño.
func (r *CanvasRepo) Create(ctx context.Context, c *entity.Canvas) error {
	if _, err := r.db.Exec(ctx, queryCanvasInsert, c.ID, c.Name, c.Data, c.CreatedAt, c.UpdatedAt); err != nil {
		return fmt.Errorf("insert canvas: %w", err)
	}
	return nil
}

// List lista diseños sin contenido, más recientes primero.
func (r *CanvasRepo) List(ctx context.Context) ([]*entity.Canvas, error) {
	rows, err := r.db.Query(ctx, queryCanvasList)
	if err != nil {
		return nil, fmt.Errorf("list canvas: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Canvas, 0)
	for rows.Next() {
		var c entity.Canvas
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan canvas: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// FindByID obtiene un diseño con su contenido.
func (r *CanvasRepo) FindByID(ctx context.Context, id string) (*entity.Canvas, error) {
	c, err := scanCanvas(r.db.QueryRow(ctx, queryCanvasByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get canvas: %w", err)
	}
	return c, nil
}

// Update reemplaza nombre y contenido. domain.ErrNotFound si no existe.
func (r *CanvasRepo) Update(ctx context.Context, id, name string, data json.RawMessage) (*entity.Canvas, error) {
	c, err := scanCanvas(r.db.QueryRow(ctx, queryCanvasUpdate, id, name, data))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update canvas: %w", err)
	}
	return c, nil
}

// Delete elimina un diseño. domain.ErrNotFound si no existe.
func (r *CanvasRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, queryCanvasDelete, id)
	if err != nil {
		return fmt.Errorf("delete canvas: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCanvas(row pgx.Row) (*entity.Canvas, error) {
	var c entity.Canvas
	if err := row.Scan(&c.ID, &c.Name, &c.Data, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
