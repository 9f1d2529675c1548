package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/rfm-api/internal/application/auth"
	"github.com/jhoicas/rfm-api/internal/application/orders"
	"github.com/jhoicas/rfm-api/internal/application/ports"
	"github.com/jhoicas/rfm-api/internal/application/usecase"
	"github.com/jhoicas/rfm-api/internal/domain/person"
	infrapdf "github.com/jhoicas/rfm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/rfm-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/rfm-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/rfm-api/internal/interfaces/http"
	"github.com/jhoicas/rfm-api/pkg/config"
	"github.com/jhoicas/rfm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin REDIS_ADDR no hay caché de catálogo ni revocación de tokens.
	rdb, err := infraredis.NewClient(ctx, cfg.Redis, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	var (
		catalogCache ports.CatalogCache
		tokenStore   ports.TokenStore
		redisPinger  httpRouter.Pinger
	)
	if rdb != nil {
		defer rdb.Close()
		catalogCache = infraredis.NewCatalogCache(rdb, time.Duration(cfg.Redis.CatalogCacheTTL)*time.Second)
		tokenStore = infraredis.NewTokenStore(rdb)
		redisPinger = infraredis.NewPinger(rdb)
	} else {
		log.Warn().Msg("Redis deshabilitado: sin caché de catálogo ni revocación de tokens")
	}

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	canvasRepo := postgres.NewCanvasRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mapper := usecase.UserMapper{
		Casing:      person.NameCasing(cfg.Users.NameCasing),
		RolesFormat: person.RoleFormat(cfg.Users.RolesFormat),
	}
	userUC := usecase.NewUserUseCase(userRepo, mapper)
	canvasUC := usecase.NewCanvasUseCase(canvasRepo)
	productUC := usecase.NewProductUseCase(productRepo, catalogCache)

	// PDF: ticket de producción de cada orden del tablero
	ticketGenerator := infrapdf.NewTicketGenerator(strings.ToUpper(cfg.App.Name))
	orderUC := orders.NewUseCase(orderRepo, txRunner, ticketGenerator)

	authUC := auth.NewAuthUseCase(customerRepo, userRepo, tokenStore, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RFM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    userUC,
		CanvasUC:  canvasUC,
		ProductUC: productUC,
		OrderUC:   orderUC,
		DB:        pool,
		Redis:     redisPinger,
		JWTSecret: cfg.JWT.Secret,
		RateLimit: cfg.RateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
