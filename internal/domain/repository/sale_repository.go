package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain/entity"
)

// SaleWindowTotals agrega las ventas de una ventana de sesión, partidas por método
// de pago. Un método vacío cuenta como efectivo; las ventas canceladas se excluyen.
type SaleWindowTotals struct {
	TotalSales    decimal.Decimal
	TotalCash     decimal.Decimal
	TotalTransfer decimal.Decimal
	SalesCount    int64
}

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
// Contrato de ausencia: GetByID devuelve domain.ErrNotFound si la venta no existe.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	ListItems(saleID string) ([]*entity.SaleItem, error)
	Delete(id string) error
	TotalsInWindow(warehouseID string, from, to time.Time) (*SaleWindowTotals, error)
}
