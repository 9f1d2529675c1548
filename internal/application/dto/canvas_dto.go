package dto

import (
	"encoding/json"
	"time"
)

// SaveCanvasRequest entrada para guardar o reemplazar un diseño.
type SaveCanvasRequest struct {
	CanvasData json.RawMessage `json:"canvasData" validate:"required"`
	Name       string          `json:"name" validate:"max=200"`
}

// CanvasResponse diseño guardado; CanvasData se omite en listados.
type CanvasResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CanvasData json.RawMessage `json:"canvasData,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
