package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rfm-api/internal/application/dto"
)

type canvasService interface {
	Save(ctx context.Context, in dto.SaveCanvasRequest) (*dto.CanvasResponse, error)
	List(ctx context.Context) ([]dto.CanvasResponse, error)
	Get(ctx context.Context, id string) (*dto.CanvasResponse, error)
	Update(ctx context.Context, id string, in dto.SaveCanvasRequest) (*dto.CanvasResponse, error)
	Delete(ctx context.Context, id string) error
}

// CanvasHandler diseños del editor.
type CanvasHandler struct {
	uc canvasService
}

// NewCanvasHandler construye el handler.
func NewCanvasHandler(uc canvasService) *CanvasHandler {
	return &CanvasHandler{uc: uc}
}

// Save godoc
// @Summary      Guardar diseño
// @Tags         canvas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveCanvasRequest  true  "canvasData, name"
// @Success      201   {object}  dto.CanvasResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/canvas/save [post]
func (h *CanvasHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveCanvasRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar diseños (sin datos)
// @Tags         canvas
// @Produce      json
// @Success      200  {array}  dto.CanvasResponse
// @Router       /api/canvas/list [get]
func (h *CanvasHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener diseño
// @Tags         canvas
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.CanvasResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/canvas/{id} [get]
func (h *CanvasHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar diseño
// @Tags         canvas
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID"
// @Param        body  body  dto.SaveCanvasRequest  true  "canvasData, name"
// @Success      200   {object}  dto.CanvasResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/canvas/{id} [put]
func (h *CanvasHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveCanvasRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar diseño
// @Tags         canvas
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/canvas/{id} [delete]
func (h *CanvasHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "diseño eliminado"})
}
