package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rfm-api/internal/application/dto"
)

type orderService interface {
	Board(ctx context.Context) (*dto.BoardResponse, error)
	Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Move(ctx context.Context, id, userID string, in dto.MoveOrderRequest) (*dto.OrderResponse, error)
	Ticket(ctx context.Context, id string) ([]byte, string, error)
}

// OrderHandler tablero de producción.
type OrderHandler struct {
	uc orderService
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc orderService) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Board godoc
// @Summary      Tablero de producción
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BoardResponse
// @Router       /api/orders/board [get]
func (h *OrderHandler) Board(c *fiber.Ctx) error {
	out, err := h.uc.Board(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear orden de producción
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOrderRequest  true  "orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Move godoc
// @Summary      Mover orden a otra etapa
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.MoveOrderRequest  true  "stage, position"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/stage [patch]
func (h *OrderHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Move(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ticket godoc
// @Summary      Ticket PDF de la orden
// @Tags         orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ticket [get]
func (h *OrderHandler) Ticket(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Ticket(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdf)
}
