package entity

import (
	"encoding/json"
	"time"
)

// DefaultCanvasName nombre asignado cuando el diseño se guarda sin nombre.
const DefaultCanvasName = "Untitled Canvas"

// Canvas es una instantánea del editor de diseño (JSON serializado por el front).
type Canvas struct {
	ID        string
	Name      string
	Data      json.RawMessage // nil en listados
	CreatedAt time.Time
	UpdatedAt time.Time
}
