package ledger

import (
	"context"

	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de inventario:
// si fn retorna error, todo lo escrito dentro se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}
