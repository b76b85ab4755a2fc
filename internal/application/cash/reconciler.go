package cash

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// Summary es el resultado de conciliar una sesión sobre su ventana
// [openedAt, now]: agregados de ventas por método de pago, crédito otorgado y
// cobrado, salidas de efectivo de los colaboradores y el efectivo esperado.
// CashDifference y Status solo se llenan cuando hay monto contado (cierre).
type Summary struct {
	SessionID     string
	WarehouseID   string
	OpenedAt      time.Time
	OpeningAmount decimal.Decimal

	TotalSales          decimal.Decimal
	TotalCash           decimal.Decimal
	TotalTransfer       decimal.Decimal
	TotalFiados         decimal.Decimal // crédito otorgado en la ventana (aún no es caja)
	TotalFiadosCobrados decimal.Decimal // crédito cobrado en efectivo en la ventana
	TotalExpensesCash   decimal.Decimal
	TotalPurchasesCash  decimal.Decimal
	TotalLoansCash      decimal.Decimal
	SalesCount          int64

	ExpectedCash   decimal.Decimal
	ClosingAmount  *decimal.Decimal
	CashDifference *decimal.Decimal
	Status         string // CUADRADO | SOBRANTE | FALTANTE
}

// summarize calcula la fórmula de conciliación para la sesión:
//
//	expectedCash = apertura + ventasEfectivo + fiadosCobrados
//	             − gastosEfectivo − comprasEfectivo − préstamosEfectivo
//
// Las ventanas de gastos/compras/préstamos filtran por timestamp de creación
// ("registrado durante este turno"), no por fecha de negocio.
func summarize(
	session *entity.CashSession,
	now time.Time,
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	financeRepo repository.FinanceRepository,
) (*Summary, error) {
	from, to := session.OpenedAt, now

	saleTotals, err := saleRepo.TotalsInWindow(session.WarehouseID, from, to)
	if err != nil {
		return nil, err
	}
	fiados, err := orderRepo.TotalPendingCreatedIn(session.WarehouseID, from, to)
	if err != nil {
		return nil, err
	}
	fiadosCobrados, err := orderRepo.TotalPaidIn(session.WarehouseID, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := financeRepo.TotalExpensesCash(session.WarehouseID, from, to)
	if err != nil {
		return nil, err
	}
	purchases, err := financeRepo.TotalPurchasesCash(session.WarehouseID, from, to)
	if err != nil {
		return nil, err
	}
	loans, err := financeRepo.TotalLoansCash(session.WarehouseID, from, to)
	if err != nil {
		return nil, err
	}

	expected := session.OpeningAmount.
		Add(saleTotals.TotalCash).
		Add(fiadosCobrados).
		Sub(expenses).
		Sub(purchases).
		Sub(loans)

	return &Summary{
		SessionID:           session.ID,
		WarehouseID:         session.WarehouseID,
		OpenedAt:            session.OpenedAt,
		OpeningAmount:       session.OpeningAmount,
		TotalSales:          saleTotals.TotalSales,
		TotalCash:           saleTotals.TotalCash,
		TotalTransfer:       saleTotals.TotalTransfer,
		TotalFiados:         fiados,
		TotalFiadosCobrados: fiadosCobrados,
		TotalExpensesCash:   expenses,
		TotalPurchasesCash:  purchases,
		TotalLoansCash:      loans,
		SalesCount:          saleTotals.SalesCount,
		ExpectedCash:        expected,
	}, nil
}

// settle completa el resumen con el monto contado: diferencia y clasificación.
func (s *Summary) settle(counted decimal.Decimal) {
	diff := counted.Sub(s.ExpectedCash)
	s.ClosingAmount = &counted
	s.CashDifference = &diff
	s.Status = classifyDifference(diff)
}

// classifyDifference clasifica contado − esperado.
func classifyDifference(diff decimal.Decimal) string {
	switch {
	case diff.IsZero():
		return entity.CashStatusCuadrado
	case diff.IsPositive():
		return entity.CashStatusSobrante
	default:
		return entity.CashStatusFaltante
	}
}
