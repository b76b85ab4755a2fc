package repository

import (
	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y sus presentaciones.
// Contrato de ausencia: GetByID, GetForUpdate y GetPresentation devuelven
// (nil, nil) cuando el registro no existe; el caller decide si eso es ErrNotFound.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para serializar
	// los descuentos concurrentes de BaseStock.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateCost(productID string, cost decimal.Decimal) error
	// AdjustBaseStock suma delta (puede ser negativo) al contador BaseStock.
	AdjustBaseStock(productID string, delta int64) error
	List(limit, offset int) ([]*entity.Product, error)
	Deactivate(id string) error

	CreatePresentation(presentation *entity.Presentation) error
	GetPresentation(id string) (*entity.Presentation, error)
	ListPresentations(productID string) ([]*entity.Presentation, error)
}
