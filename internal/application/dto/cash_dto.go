package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenSessionRequest apertura de caja.
type OpenSessionRequest struct {
	WarehouseID   string          `json:"warehouse_id"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

// CashMovementRequest ingreso/egreso manual de efectivo.
type CashMovementRequest struct {
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"` // IN | OUT
	Amount      decimal.Decimal `json:"amount"`
	Concept     string          `json:"concept"`
}

// CloseSessionRequest cierre de caja: monto contado + credenciales de quien cierra.
type CloseSessionRequest struct {
	WarehouseID   string          `json:"warehouse_id"`
	ClosingAmount decimal.Decimal `json:"closing_amount"`
	Password      string          `json:"password"`
}

// SessionSummaryResponse resumen de conciliación (preview o cierre).
type SessionSummaryResponse struct {
	SessionID           string           `json:"session_id"`
	WarehouseID         string           `json:"warehouse_id"`
	OpenedAt            time.Time        `json:"opened_at"`
	OpeningAmount       decimal.Decimal  `json:"opening_amount"`
	TotalSales          decimal.Decimal  `json:"total_sales"`
	TotalCash           decimal.Decimal  `json:"total_cash"`
	TotalTransfer       decimal.Decimal  `json:"total_transfer"`
	TotalFiados         decimal.Decimal  `json:"total_fiados"`
	TotalFiadosCobrados decimal.Decimal  `json:"total_fiados_cobrados"`
	TotalExpensesCash   decimal.Decimal  `json:"total_expenses_cash"`
	TotalPurchasesCash  decimal.Decimal  `json:"total_purchases_cash"`
	TotalLoansCash      decimal.Decimal  `json:"total_loans_cash"`
	SalesCount          int64            `json:"sales_count"`
	ExpectedCash        decimal.Decimal  `json:"expected_cash"`
	ClosingAmount       *decimal.Decimal `json:"closing_amount,omitempty"`
	CashDifference      *decimal.Decimal `json:"cash_difference,omitempty"`
	Status              string           `json:"status,omitempty"`
}
