package repository

import (
	"time"

	"github.com/sanalas/distripos-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para el ledger de
// movimientos (append-only: no hay Update ni Delete).
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByReference(referenceID string) ([]*entity.InventoryMovement, error)
}
