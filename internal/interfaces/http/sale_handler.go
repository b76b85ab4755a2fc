package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanalas/distripos-api/internal/application/dto"
	"github.com/sanalas/distripos-api/internal/application/sales"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// SaleHandler maneja las peticiones HTTP de ventas y fiados (protegido).
type SaleHandler struct {
	uc        *sales.SaleUseCase
	saleRepo  repository.SaleRepository
	orderRepo repository.OrderRepository
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, saleRepo repository.SaleRepository, orderRepo repository.OrderRepository) *SaleHandler {
	return &SaleHandler{uc: uc, saleRepo: saleRepo, orderRepo: orderRepo}
}

// Create godoc
// @Summary      Crear venta
// @Description  Persiste atómicamente la venta, sus líneas, el descuento de stock
//               por línea y, si hay caja abierta y el pago es en efectivo, el
//               ingreso de caja. Si una línea falla nada queda escrito.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "warehouse_id, items, payment_method, price_type"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.CreateSale(c.Context(), sales.CreateSaleInput{
		WarehouseID:   in.WarehouseID,
		Items:         toItemInputs(in.Items),
		PaymentMethod: in.PaymentMethod,
		PriceType:     in.PriceType,
		CashReceived:  in.CashReceived,
		Change:        in.Change,
		Domicilio:     in.Domicilio,
		UserID:        userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	sale, err := h.saleRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	items, err := h.saleRepo.ListItems(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sale": toSaleResponse(sale), "items": items})
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Revierte el stock de cada línea, elimina el ingreso de caja
//               asociado y borra la venta, todo en una transacción.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.DeleteSale(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta eliminada y stock restaurado"})
}

// CreateOrder godoc
// @Summary      Crear fiado
// @Description  El stock se descuenta de inmediato; el efectivo entra cuando el
//               fiado se paga.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "warehouse_id, customer_name, items"
// @Success      201   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *SaleHandler) CreateOrder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CreateOrder(c.Context(), sales.CreateOrderInput{
		WarehouseID:  in.WarehouseID,
		CustomerName: in.CustomerName,
		Items:        toItemInputs(in.Items),
		UserID:       userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetOrder godoc
// @Summary      Obtener fiado con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del fiado"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *SaleHandler) GetOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	order, err := h.orderRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	items, err := h.orderRepo.ListItems(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"order": order, "items": items})
}

// PayOrder godoc
// @Summary      Cobrar fiado
// @Description  Genera la venta asociada, registra el ingreso en la caja abierta
//               (si la hay) y marca el fiado como PAID. Solo fiados PENDING.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del fiado"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pay [post]
func (h *SaleHandler) PayOrder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	sale, err := h.uc.PayOrder(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// CancelOrder godoc
// @Summary      Cancelar fiado
// @Description  Devuelve el stock y marca el fiado como CANCELLED. Solo PENDING.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del fiado"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *SaleHandler) CancelOrder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.CancelOrder(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "fiado cancelado y stock restaurado"})
}

// DeleteOrder godoc
// @Summary      Eliminar fiado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del fiado"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *SaleHandler) DeleteOrder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.DeleteOrder(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "fiado eliminado"})
}

func toItemInputs(items []dto.SaleItemRequest) []sales.SaleItemInput {
	out := make([]sales.SaleItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, sales.SaleItemInput{
			ProductID:      it.ProductID,
			PresentationID: it.PresentationID,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			BaseQuantity:   it.BaseQuantity,
		})
	}
	return out
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID,
		WarehouseID:   s.WarehouseID,
		Subtotal:      s.Subtotal,
		Domicilio:     s.Domicilio,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		PriceType:     s.PriceType,
		CreatedAt:     s.CreatedAt,
	}
}
