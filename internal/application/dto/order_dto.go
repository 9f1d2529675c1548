package dto

import "time"

// CreateOrderRequest alta de una orden en el tablero.
type CreateOrderRequest struct {
	OrderRef string  `json:"orderRef" validate:"required,max=50"`
	Client   string  `json:"client" validate:"required,max=200"`
	Date     *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Qty      int     `json:"qty" validate:"required,gt=0"`
	Stage    string  `json:"stage" validate:"omitempty,oneof=designing ripping heatpress cutting assembly qc done"`
}

// MoveOrderRequest mueve una orden a otra columna. Position nil = al final.
type MoveOrderRequest struct {
	Stage    string `json:"stage" validate:"required,oneof=designing ripping heatpress cutting assembly qc done"`
	Position *int   `json:"position" validate:"omitempty,min=0"`
}

// OrderResponse orden del tablero.
type OrderResponse struct {
	ID        string    `json:"id"`
	OrderRef  string    `json:"orderRef"`
	Client    string    `json:"client"`
	Date      *string   `json:"date,omitempty"`
	Qty       int       `json:"qty"`
	Stage     string    `json:"stage"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardColumn columna del tablero con sus órdenes ordenadas por posición.
type BoardColumn struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Orders []OrderResponse `json:"orders"`
}

// BoardResponse tablero completo en el orden de producción.
type BoardResponse struct {
	Columns []BoardColumn `json:"columns"`
}
