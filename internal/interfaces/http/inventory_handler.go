package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sanalas/distripos-api/internal/application/dto"
	"github.com/sanalas/distripos-api/internal/application/ledger"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del ledger de inventario
// (protegido): movimientos, traslados, niveles y umbrales de stock mínimo.
type InventoryHandler struct {
	stockLedger *ledger.StockLedger
	stockRepo   repository.StockLevelRepository
	movRepo     repository.InventoryMovementRepository
	notifRepo   repository.NotificationRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	stockLedger *ledger.StockLedger,
	stockRepo repository.StockLevelRepository,
	movRepo repository.InventoryMovementRepository,
	notifRepo repository.NotificationRepository,
) *InventoryHandler {
	return &InventoryHandler{stockLedger: stockLedger, stockRepo: stockRepo, movRepo: movRepo, notifRepo: notifRepo}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  IN suma, OUT resta (rechazado si deja el nivel negativo),
//               ADJUST fija el nivel absoluto. Entradas con unit_cost
//               recalculan el costo promedio del producto.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, warehouse_id, type, quantity, unit_cost (entradas)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.stockLedger.ApplyMovement(c.Context(), ledger.MovementInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		ReferenceID: in.ReferenceID,
		UserID:      userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Transfer godoc
// @Summary      Trasladar stock entre bodegas
// @Description  Registra atómicamente la salida en origen y la entrada en
//               destino; ambas patas comparten el mismo reference_id.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, from_warehouse_id, to_warehouse_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.stockLedger.TransferStock(c.Context(), in.ProductID, in.FromWarehouseID, in.ToWarehouseID, in.Quantity, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListStock godoc
// @Summary      Niveles de stock por bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "Bodega"
// @Param        limit         query  int     false  "Máximo de filas (default 100)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {array}   entity.StockLevel
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	levels, err := h.stockRepo.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(levels), "stock": levels})
}

// SetMinStock godoc
// @Summary      Fijar stock mínimo de un producto en una bodega
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "product_id, warehouse_id, min_stock"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/min-stock [put]
func (h *InventoryHandler) SetMinStock(c *fiber.Ctx) error {
	var in struct {
		ProductID   string `json:"product_id"`
		WarehouseID string `json:"warehouse_id"`
		MinStock    int64  `json:"min_stock"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.WarehouseID == "" || in.MinStock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, warehouse_id y min_stock >= 0 son requeridos"})
	}
	if err := h.stockRepo.SetMinStock(in.ProductID, in.WarehouseID, in.MinStock); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock mínimo actualizado"})
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Filtra por producto o por bodega, con ventana temporal opcional
//               (from/to en RFC3339).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Producto"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        reference_id  query  string  false  "Id de correlación (traslados, ventas)"
// @Param        from          query  string  false  "Desde (RFC3339)"
// @Param        to            query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}

	var movs []*entity.InventoryMovement
	switch {
	case c.Query("reference_id") != "":
		movs, err = h.movRepo.ListByReference(c.Query("reference_id"))
	case c.Query("product_id") != "":
		movs, err = h.movRepo.ListByProduct(c.Query("product_id"), from, to, limit, offset)
	case c.Query("warehouse_id") != "":
		movs, err = h.movRepo.ListByWarehouse(c.Query("warehouse_id"), from, to, limit, offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, warehouse_id o reference_id es requerido"})
	}
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ListNotifications godoc
// @Summary      Notificaciones de stock bajo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Notification
// @Router       /api/inventory/notifications [get]
func (h *InventoryHandler) ListNotifications(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	notifications, err := h.notifRepo.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(notifications), "notifications": notifications})
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		ReferenceID: m.ReferenceID,
		CreatedAt:   m.CreatedAt,
	}
}

// parseTimeQuery convierte un query param opcional a *time.Time (RFC3339).
func parseTimeQuery(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
