package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sanalas/distripos-api/internal/application/dto"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	repo repository.ProductRepository
}

// NewProductHandler construye el handler.
func NewProductHandler(repo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, base_unit, cost, default_price"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.BaseUnit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y base_unit son requeridos"})
	}
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.NewString(),
		Name:         in.Name,
		BaseUnit:     in.BaseUnit,
		Cost:         in.Cost,
		DefaultPrice: in.DefaultPrice,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.repo.Create(p); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	products, err := h.repo.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "products": out})
}

// GetByID godoc
// @Summary      Obtener producto con sus presentaciones
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	p, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	presentations, err := h.repo.ListPresentations(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": toProductResponse(p), "presentations": presentations})
}

// Update godoc
// @Summary      Actualizar producto (nombre y precio)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "name, default_price"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.DefaultPrice != nil {
		p.DefaultPrice = *in.DefaultPrice
	}
	p.UpdatedAt = time.Now()
	if err := h.repo.Update(p); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductResponse(p))
}

// Deactivate godoc
// @Summary      Desactivar producto
// @Description  Los productos nunca se eliminan: se desactivan para preservar el
//               historial de movimientos y ventas.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.repo.Deactivate(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto desactivado"})
}

// CreatePresentation godoc
// @Summary      Crear presentación de empaque
// @Description  El factor almacenado es la fuente autoritativa para convertir
//               unidades de venta a unidades base.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del producto"
// @Param        body  body  dto.CreatePresentationRequest  true  "name, factor, price"
// @Success      201   {object}  entity.Presentation
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/presentations [post]
func (h *ProductHandler) CreatePresentation(c *fiber.Ctx) error {
	var in dto.CreatePresentationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Factor <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y factor > 0 son requeridos"})
	}
	productID := c.Params("id")
	if _, err := h.repo.GetByID(productID); err != nil {
		return respondError(c, err)
	}
	p := &entity.Presentation{
		ID:        uuid.NewString(),
		ProductID: productID,
		Name:      in.Name,
		Factor:    in.Factor,
		Price:     in.Price,
		CreatedAt: time.Now(),
	}
	if err := h.repo.CreatePresentation(p); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		BaseUnit:     p.BaseUnit,
		BaseStock:    p.BaseStock,
		Cost:         p.Cost,
		DefaultPrice: p.DefaultPrice,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
	}
}
