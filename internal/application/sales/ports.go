package sales

import (
	"context"

	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios que
// necesita una venta o un fiado: ledger de stock, producto, venta/fiado y el
// ledger de caja para el asiento automático.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
		saleRepo repository.SaleRepository,
		orderRepo repository.OrderRepository,
		sessionRepo repository.CashSessionRepository,
		cashMovRepo repository.CashMovementRepository,
	) error) error
}
