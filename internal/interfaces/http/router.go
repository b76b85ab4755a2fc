package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanalas/distripos-api/internal/application/auth"
	"github.com/sanalas/distripos-api/internal/application/cash"
	"github.com/sanalas/distripos-api/internal/application/ledger"
	"github.com/sanalas/distripos-api/internal/application/sales"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	StockLedger *ledger.StockLedger
	SaleUC      *sales.SaleUseCase
	SessionUC   *cash.SessionUseCase

	ProductRepo   repository.ProductRepository
	WarehouseRepo repository.WarehouseRepository
	StockRepo     repository.StockLevelRepository
	MovementRepo  repository.InventoryMovementRepository
	NotifRepo     repository.NotificationRepository
	SaleRepo      repository.SaleRepository
	OrderRepo     repository.OrderRepository

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido; escritura solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseRepo)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Products (protegido; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductRepo)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Deactivate)
	products.Post("/:id/presentations", RequireRole(entity.RoleAdmin), productHandler.CreatePresentation)

	// Inventory (protegido; movimientos y traslados para admin y bodeguero)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockLedger, deps.StockRepo, deps.MovementRepo, deps.NotifRepo)
	invGroup.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.RegisterMovement)
	invGroup.Post("/transfers", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.Transfer)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/stock", inventoryHandler.ListStock)
	invGroup.Put("/min-stock", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.SetMinStock)
	invGroup.Get("/notifications", inventoryHandler.ListNotifications)

	// Sales y fiados (protegido; admin y cajero)
	saleHandler := NewSaleHandler(deps.SaleUC, deps.SaleRepo, deps.OrderRepo)
	salesGroup := protected.Group("/sales", RequireRole(entity.RoleAdmin, entity.RoleCajero))
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", saleHandler.Delete)

	orders := protected.Group("/orders", RequireRole(entity.RoleAdmin, entity.RoleCajero))
	orders.Post("/", saleHandler.CreateOrder)
	orders.Get("/:id", saleHandler.GetOrder)
	orders.Post("/:id/pay", saleHandler.PayOrder)
	orders.Post("/:id/cancel", saleHandler.CancelOrder)
	orders.Delete("/:id", saleHandler.DeleteOrder)

	// Caja (protegido; admin y cajero)
	cashHandler := NewCashHandler(deps.SessionUC)
	cashGroup := protected.Group("/cash", RequireRole(entity.RoleAdmin, entity.RoleCajero))
	cashGroup.Post("/open", cashHandler.Open)
	cashGroup.Post("/movements", cashHandler.RegisterMovement)
	cashGroup.Get("/preview", cashHandler.Preview)
	cashGroup.Post("/close", cashHandler.Close)
}
