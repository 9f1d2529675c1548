package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rfm-api/internal/application/dto"
	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/repository"
)

// CanvasUseCase guarda y recupera diseños del editor.
type CanvasUseCase struct {
	repo repository.CanvasRepository
}

// NewCanvasUseCase construye el caso de uso.
func NewCanvasUseCase(repo repository.CanvasRepository) *CanvasUseCase {
	return &CanvasUseCase{repo: repo}
}

// Save persiste un diseño nuevo.
func (uc *CanvasUseCase) Save(ctx context.Context, in dto.SaveCanvasRequest) (*dto.CanvasResponse, error) {
	if !json.Valid(in.CanvasData) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	c := &entity.Canvas{
		ID:        uuid.New().String(),
		Name:      canvasName(in.Name),
		Data:      in.CanvasData,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toCanvasResponse(c)
	return &out, nil
}

// List devuelve los diseños sin su contenido, más recientes primero.
func (uc *CanvasUseCase) List(ctx context.Context) ([]dto.CanvasResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CanvasResponse, 0, len(list))
	for _, c := range list {
		r := toCanvasResponse(c)
		r.CanvasData = nil
		out = append(out, r)
	}
	return out, nil
}

// Get devuelve un diseño con su contenido.
func (uc *CanvasUseCase) Get(ctx context.Context, id string) (*dto.CanvasResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := toCanvasResponse(c)
	return &out, nil
}

// Update reemplaza contenido y nombre de un diseño.
func (uc *CanvasUseCase) Update(ctx context.Context, id string, in dto.SaveCanvasRequest) (*dto.CanvasResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if !json.Valid(in.CanvasData) {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.Update(ctx, id, canvasName(in.Name), in.CanvasData)
	if err != nil {
		return nil, err
	}
	out := toCanvasResponse(c)
	return &out, nil
}

// Delete elimina un diseño.
func (uc *CanvasUseCase) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func canvasName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return entity.DefaultCanvasName
}

// validateID rechaza ids que no son UUID antes de llegar a la base.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func toCanvasResponse(c *entity.Canvas) dto.CanvasResponse {
	return dto.CanvasResponse{
		ID:         c.ID,
		Name:       c.Name,
		CanvasData: c.Data,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
