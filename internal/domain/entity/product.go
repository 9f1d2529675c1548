package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un producto del catálogo. Archived es el borrado lógico.
const (
	ProductStatusActive   = "Active"
	ProductStatusArchived = "Archived"
)

// Product representa una prenda del catálogo.
type Product struct {
	ID                 string
	Name               string
	Category           string
	BasePrice          decimal.Decimal
	Description        string
	ImageURL           string
	CloudinaryPublicID string // referencia a la imagen; la subida ocurre en el front
	Status             string
	StockQuantity      int
	SKU                string
	Sizes              []string
	Tags               []string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProductFilter filtros del listado del catálogo. Cadena vacía = sin filtro.
type ProductFilter struct {
	Category string
	Status   string
}
