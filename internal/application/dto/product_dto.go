package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	ProductName        string          `json:"product_name" validate:"required,min=1,max=200"`
	Category           string          `json:"category" validate:"required,max=100"`
	BasePrice          decimal.Decimal `json:"base_price"`
	Description        string          `json:"description"`
	ImageURL           string          `json:"image_url" validate:"required,url"`
	CloudinaryPublicID string          `json:"cloudinary_public_id" validate:"max=255"`
	Status             string          `json:"status" validate:"omitempty,oneof=Active Archived"`
	StockQuantity      int             `json:"stock_quantity" validate:"min=0"`
	SKU                string          `json:"sku" validate:"max=100"`
	Sizes              []string        `json:"sizes" validate:"dive,required"`
	Tags               []string        `json:"tags" validate:"dive,required"`
}

// UpdateProductRequest actualización parcial: nil = sin cambio.
type UpdateProductRequest struct {
	ProductName        *string          `json:"product_name" validate:"omitempty,min=1,max=200"`
	Category           *string          `json:"category" validate:"omitempty,max=100"`
	BasePrice          *decimal.Decimal `json:"base_price"`
	Description        *string          `json:"description"`
	ImageURL           *string          `json:"image_url" validate:"omitempty,url"`
	CloudinaryPublicID *string          `json:"cloudinary_public_id" validate:"omitempty,max=255"`
	Status             *string          `json:"status" validate:"omitempty,oneof=Active Archived"`
	StockQuantity      *int             `json:"stock_quantity" validate:"omitempty,min=0"`
	SKU                *string          `json:"sku" validate:"omitempty,max=100"`
	Sizes              *[]string        `json:"sizes"`
	Tags               *[]string        `json:"tags"`
}

// ProductListQuery filtros del listado público.
type ProductListQuery struct {
	Category string `query:"category"`
	Status   string `query:"status"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                 string          `json:"id"`
	ProductName        string          `json:"product_name"`
	Category           string          `json:"category"`
	BasePrice          decimal.Decimal `json:"base_price"`
	Description        string          `json:"description"`
	ImageURL           string          `json:"image_url"`
	CloudinaryPublicID string          `json:"cloudinary_public_id,omitempty"`
	Status             string          `json:"status"`
	StockQuantity      int             `json:"stock_quantity"`
	SKU                string          `json:"sku,omitempty"`
	Sizes              []string        `json:"sizes"`
	Tags               []string        `json:"tags"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
