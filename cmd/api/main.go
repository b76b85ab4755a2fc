package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sanalas/distripos-api/internal/application/auth"
	"github.com/sanalas/distripos-api/internal/application/cash"
	"github.com/sanalas/distripos-api/internal/application/ledger"
	"github.com/sanalas/distripos-api/internal/application/sales"
	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/infrastructure/postgres"
	httpRouter "github.com/sanalas/distripos-api/internal/interfaces/http"
	"github.com/sanalas/distripos-api/pkg/config"
	"github.com/sanalas/distripos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas fuera de transacción).
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	txRunner := postgres.NewTxRunner(pool)

	stockLedger := ledger.NewStockLedger(txRunner, log)
	saleUC := sales.NewSaleUseCase(txRunner, stockLedger, productRepo, warehouseRepo, log)
	sessionUC := cash.NewSessionUseCase(txRunner, userRepo, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Política de conveniencia: abrir caja en la bodega principal al arrancar.
	if cfg.POS.AutoOpenSession && cfg.POS.PrimaryWarehouseID != "" {
		_, err := sessionUC.Open(ctx, cfg.POS.PrimaryWarehouseID, cfg.POS.DefaultOpeningAmount, "system")
		switch {
		case err == nil:
			log.Info().Str("warehouse_id", cfg.POS.PrimaryWarehouseID).Msg("caja auto-abierta")
		case errors.Is(err, domain.ErrSessionAlreadyOpen):
			log.Info().Str("warehouse_id", cfg.POS.PrimaryWarehouseID).Msg("ya hay una caja abierta")
		default:
			log.Warn().Err(err).Msg("auto-apertura de caja falló")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DistriPOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		StockLedger:   stockLedger,
		SaleUC:        saleUC,
		SessionUC:     sessionUC,
		ProductRepo:   productRepo,
		WarehouseRepo: warehouseRepo,
		StockRepo:     stockRepo,
		MovementRepo:  movementRepo,
		NotifRepo:     notifRepo,
		SaleRepo:      saleRepo,
		OrderRepo:     orderRepo,
		JWTSecret:     cfg.JWT.Secret,
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
