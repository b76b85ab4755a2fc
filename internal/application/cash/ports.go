package cash

import (
	"context"

	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios del
// subsistema de caja: sesión y movimientos, más las fuentes de agregados que la
// conciliación lee (ventas, fiados y colaboradores financieros).
type TxRunner interface {
	RunCash(ctx context.Context, fn func(
		sessionRepo repository.CashSessionRepository,
		cashMovRepo repository.CashMovementRepository,
		saleRepo repository.SaleRepository,
		orderRepo repository.OrderRepository,
		financeRepo repository.FinanceRepository,
	) error) error
}
