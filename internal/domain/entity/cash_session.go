package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación de la diferencia de caja al cierre.
const (
	CashStatusCuadrado = "CUADRADO" // diferencia = 0
	CashStatusSobrante = "SOBRANTE" // contado > esperado
	CashStatusFaltante = "FALTANTE" // contado < esperado
)

// CashSession es el ciclo de vida de un turno de caja por bodega.
// Invariante: a lo sumo una sesión con ClosedAt == nil por bodega (índice único
// parcial en la tabla). El cierre es terminal: fija ClosingAmount, ExpectedCash,
// CashDifference y los totales agregados del turno.
type CashSession struct {
	ID            string
	WarehouseID   string
	OpeningAmount decimal.Decimal
	OpenedBy      string
	OpenedAt      time.Time

	// Fijados únicamente al cierre.
	ClosedBy       string
	ClosedAt       *time.Time
	ClosingAmount  *decimal.Decimal
	ExpectedCash   *decimal.Decimal
	CashDifference *decimal.Decimal
	TotalSales     decimal.Decimal
	TotalCash      decimal.Decimal
	TotalTransfer  decimal.Decimal
	TotalFiados    decimal.Decimal
	SalesCount     int64
}

// IsOpen indica si la sesión sigue activa.
func (s *CashSession) IsOpen() bool {
	return s != nil && s.ClosedAt == nil
}

// Tipos de movimiento de caja.
const (
	CashMovementIN  = "IN"
	CashMovementOUT = "OUT"
)

// Tipos de referencia de un movimiento de caja automático.
const (
	CashRefSale        = "SALE"
	CashRefExpense     = "EXPENSE"
	CashRefPurchase    = "PURCHASE"
	CashRefLoan        = "LOAN"
	CashRefLoanPayment = "LOAN_PAYMENT"
)

// CashMovement es un evento del ledger de caja: ingresos/egresos manuales y
// asientos automáticos (venta, gasto, compra, préstamo). Los movimientos nunca se
// modifican; una anulación elimina el asiento junto con su operación de origen.
type CashMovement struct {
	ID            string
	SessionID     string
	Type          string // IN | OUT
	Amount        decimal.Decimal
	Concept       string
	ReferenceType string // opcional; SALE, EXPENSE, ...
	ReferenceID   string // opcional; id del evento de origen
	CreatedBy     string
	CreatedAt     time.Time
}
