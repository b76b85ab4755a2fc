package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

var _ repository.FinanceRepository = (*FinanceRepo)(nil)

// FinanceRepo agrega las salidas de efectivo de los colaboradores excluidos del
// motor (gastos, compras, préstamos) para la conciliación. Las ventanas filtran
// por created_at (registrado durante este turno), no por fecha de negocio.
type FinanceRepo struct {
	q Querier
}

// NewFinanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinanceRepository(q Querier) *FinanceRepo {
	return &FinanceRepo{q: q}
}

// TotalExpensesCash suma gastos con método efectivo-o-vacío creados en la ventana.
func (r *FinanceRepo) TotalExpensesCash(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE warehouse_id = $1
		  AND (payment_method = '' OR payment_method IS NULL OR payment_method = $2)
		  AND created_at >= $3 AND created_at <= $4`
	return r.sum(query, warehouseID, from, to)
}

// TotalPurchasesCash suma compras pagadas en efectivo creadas en la ventana.
func (r *FinanceRepo) TotalPurchasesCash(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM purchases
		WHERE warehouse_id = $1
		  AND (payment_method = '' OR payment_method IS NULL OR payment_method = $2)
		  AND created_at >= $3 AND created_at <= $4`
	return r.sum(query, warehouseID, from, to)
}

// TotalLoansCash suma desembolsos de préstamos en efectivo creados en la ventana.
func (r *FinanceRepo) TotalLoansCash(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM loans
		WHERE warehouse_id = $1
		  AND (payment_method = '' OR payment_method IS NULL OR payment_method = $2)
		  AND created_at >= $3 AND created_at <= $4`
	return r.sum(query, warehouseID, from, to)
}

func (r *FinanceRepo) sum(query, warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query,
		warehouseID, entity.PaymentMethodCash, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("finance window sum: %w", err)
	}
	return total, nil
}
