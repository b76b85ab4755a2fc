package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanalas/distripos-api/internal/application/cash"
	"github.com/sanalas/distripos-api/internal/application/dto"
)

// CashHandler maneja las peticiones HTTP de caja (protegido): apertura,
// movimientos manuales, vista previa de conciliación y cierre.
type CashHandler struct {
	uc *cash.SessionUseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *cash.SessionUseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir caja
// @Description  A lo sumo una sesión abierta por bodega; un segundo intento
//               devuelve 409.
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "warehouse_id, opening_amount"
// @Success      201   {object}  entity.CashSession
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/open [post]
func (h *CashHandler) Open(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.OpenSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.Open(c.Context(), in.WarehouseID, in.OpeningAmount, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// RegisterMovement godoc
// @Summary      Registrar ingreso/egreso manual de caja
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashMovementRequest  true  "warehouse_id, type (IN|OUT), amount, concept"
// @Success      201   {object}  entity.CashMovement
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/movements [post]
func (h *CashHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RegisterMovement(c.Context(), in.WarehouseID, in.Type, in.Amount, in.Concept, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// Preview godoc
// @Summary      Vista previa de conciliación
// @Description  Calcula el efectivo esperado de la sesión abierta sin cerrarla
//               ni persistir nada.
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "Bodega"
// @Success      200  {object}  dto.SessionSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash/preview [get]
func (h *CashHandler) Preview(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	summary, err := h.uc.Preview(c.Context(), warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSummaryResponse(summary))
}

// Close godoc
// @Summary      Cerrar caja
// @Description  Re-autentica con la contraseña de quien cierra, concilia el turno
//               y clasifica la diferencia (CUADRADO, SOBRANTE o FALTANTE). Solo
//               quien abrió la sesión, o un admin, puede cerrarla.
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseSessionRequest  true  "warehouse_id, closing_amount, password"
// @Success      200   {object}  dto.SessionSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/close [post]
func (h *CashHandler) Close(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CloseSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	summary, err := h.uc.Close(c.Context(), cash.CloseInput{
		WarehouseID:   in.WarehouseID,
		ClosingAmount: in.ClosingAmount,
		ActingUserID:  userID,
		Credentials:   in.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSummaryResponse(summary))
}

func toSummaryResponse(s *cash.Summary) dto.SessionSummaryResponse {
	return dto.SessionSummaryResponse{
		SessionID:           s.SessionID,
		WarehouseID:         s.WarehouseID,
		OpenedAt:            s.OpenedAt,
		OpeningAmount:       s.OpeningAmount,
		TotalSales:          s.TotalSales,
		TotalCash:           s.TotalCash,
		TotalTransfer:       s.TotalTransfer,
		TotalFiados:         s.TotalFiados,
		TotalFiadosCobrados: s.TotalFiadosCobrados,
		TotalExpensesCash:   s.TotalExpensesCash,
		TotalPurchasesCash:  s.TotalPurchasesCash,
		TotalLoansCash:      s.TotalLoansCash,
		SalesCount:          s.SalesCount,
		ExpectedCash:        s.ExpectedCash,
		ClosingAmount:       s.ClosingAmount,
		CashDifference:      s.CashDifference,
		Status:              s.Status,
	}
}
