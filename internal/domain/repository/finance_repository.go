package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceRepository es el puerto hacia los colaboradores excluidos del motor
// (gastos, compras, préstamos): la conciliación solo consume sus agregados de
// efectivo por ventana. Las ventanas filtran por timestamp de creación (lo
// registrado durante este turno), no por fecha de negocio; es una decisión de
// producto deliberada.
type FinanceRepository interface {
	// TotalExpensesCash suma gastos con método efectivo-o-vacío creados en la ventana.
	TotalExpensesCash(warehouseID string, from, to time.Time) (decimal.Decimal, error)
	// TotalPurchasesCash suma compras pagadas en efectivo creadas en la ventana.
	TotalPurchasesCash(warehouseID string, from, to time.Time) (decimal.Decimal, error)
	// TotalLoansCash suma desembolsos de préstamos en efectivo creados en la ventana.
	TotalLoansCash(warehouseID string, from, to time.Time) (decimal.Decimal, error)
}
