package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/rfm-api/internal/application/auth"
	"github.com/jhoicas/rfm-api/internal/application/dto"
	"github.com/jhoicas/rfm-api/internal/application/orders"
	"github.com/jhoicas/rfm-api/internal/application/usecase"
	"github.com/jhoicas/rfm-api/internal/domain/person"
	"github.com/jhoicas/rfm-api/pkg/config"
	"github.com/jhoicas/rfm-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	CanvasUC  *usecase.CanvasUseCase
	ProductUC *usecase.ProductUseCase
	OrderUC   *orders.UseCase
	DB        Pinger
	Redis     Pinger // nil si Redis está deshabilitado
	JWTSecret string
	RateLimit config.RateLimitConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", Index)

	api := app.Group("/api")
	api.Get("/health", NewHealthHandler(deps.DB, deps.Redis).Check)

	var checker revocationChecker
	if deps.AuthUC != nil {
		checker = deps.AuthUC
	}
	authMW := AuthMiddleware(deps.JWTSecret, checker)
	adminOnly := []fiber.Handler{authMW, RequireKind(jwt.KindEmployee), RequireRole(person.RoleAdmin)}

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	limiter := RateLimitByIP(rate.Limit(deps.RateLimit.AuthPerSecond), deps.RateLimit.AuthBurst)
	authGroup.Post("/register", limiter, authHandler.Register)
	authGroup.Post("/login", limiter, authHandler.Login)
	authGroup.Post("/logout", authMW, authHandler.Logout)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Canvas (público, igual que el editor)
	canvas := api.Group("/canvas")
	canvasHandler := NewCanvasHandler(deps.CanvasUC)
	canvas.Post("/save", canvasHandler.Save)
	canvas.Get("/list", canvasHandler.List)
	canvas.Get("/:id", canvasHandler.Get)
	canvas.Put("/:id", canvasHandler.Update)
	canvas.Delete("/:id", canvasHandler.Delete)

	// Catálogo: lectura pública, escritura admin
	catalog := api.Group("/catalog")
	productHandler := NewProductHandler(deps.ProductUC)
	catalog.Get("/", productHandler.List)
	catalog.Get("/:id", productHandler.GetByID)
	catalog.Post("/", append(adminOnly, productHandler.Create)...)
	catalog.Put("/:id", append(adminOnly, productHandler.Update)...)
	catalog.Patch("/:id/archive", append(adminOnly, productHandler.Archive)...)
	catalog.Patch("/:id/restore", append(adminOnly, productHandler.Restore)...)
	catalog.Delete("/:id", append(adminOnly, productHandler.Delete)...)

	// Empleados (admin)
	users := api.Group("/users", adminOnly...)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/last-login", userHandler.TouchLastLogin)
	users.Patch("/:id/login", userHandler.TouchLastLogin)

	// Tablero de producción (admin)
	ordersGroup := api.Group("/orders", adminOnly...)
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Get("/board", orderHandler.Board)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Patch("/:id/stage", orderHandler.Move)
	ordersGroup.Get("/:id/ticket", orderHandler.Ticket)

	api.Use(NotFound)
}

// Index describe la API y sus endpoints.
func Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "RFM Backend API Server",
		"version": "1.0.0",
		"docs":    "/docs",
		"endpoints": fiber.Map{
			"health":  "/api/health",
			"auth":    []string{"POST /api/auth/register", "POST /api/auth/login", "POST /api/auth/logout", "GET /api/auth/me"},
			"canvas":  []string{"POST /api/canvas/save", "GET /api/canvas/list", "GET /api/canvas/:id", "PUT /api/canvas/:id", "DELETE /api/canvas/:id"},
			"catalog": []string{"GET /api/catalog", "GET /api/catalog/:id", "POST /api/catalog", "PUT /api/catalog/:id", "PATCH /api/catalog/:id/archive", "PATCH /api/catalog/:id/restore", "DELETE /api/catalog/:id"},
			"users":   []string{"GET /api/users", "GET /api/users/:id", "POST /api/users", "PUT /api/users/:id", "DELETE /api/users/:id", "PATCH /api/users/:id/last-login"},
			"orders":  []string{"GET /api/orders/board", "POST /api/orders", "PATCH /api/orders/:id/stage", "GET /api/orders/:id/ticket"},
		},
	})
}

// NotFound respuesta para rutas inexistentes bajo /api.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "endpoint no encontrado: " + c.OriginalURL()})
}
