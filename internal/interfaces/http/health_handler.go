package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Pinger lo implementan *pgxpool.Pool y el adaptador de Redis.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler estado del servidor y sus dependencias.
type HealthHandler struct {
	db    Pinger
	redis Pinger // nil: Redis deshabilitado
}

// NewHealthHandler construye el handler.
func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// HealthResponse estado de la API y de cada dependencia.
type HealthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Check godoc
// @Summary      Health check con dependencias
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	out := HealthResponse{Status: "OK", Message: "servidor en ejecución", Timestamp: time.Now().UTC(), Checks: map[string]string{}}
	if h.db != nil {
		out.Checks["database"] = checkStatus("database", h.db.Ping(ctx))
	}
	if h.redis != nil {
		out.Checks["redis"] = checkStatus("redis", h.redis.Ping(ctx))
	} else {
		out.Checks["redis"] = "disabled"
	}
	for _, s := range out.Checks {
		if s == "error" {
			out.Status = "ERROR"
			out.Message = "falla en una dependencia"
			return c.Status(fiber.StatusServiceUnavailable).JSON(out)
		}
	}
	return c.JSON(out)
}

func checkStatus(name string, err error) string {
	if err != nil {
		log.Warn().Err(err).Str("dependencia", name).Msg("health check fallido")
		return "error"
	}
	return "ok"
}
