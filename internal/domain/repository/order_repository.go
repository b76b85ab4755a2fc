package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para fiados.
// Contrato de ausencia: GetByID y GetForUpdate devuelven domain.ErrNotFound si
// el fiado no existe.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del fiado para que pagar y cancelar no corran.
	GetForUpdate(id string) (*entity.Order, error)
	ListItems(orderID string) ([]*entity.OrderItem, error)
	Update(order *entity.Order) error
	Delete(id string) error

	// TotalPendingCreatedIn suma fiados PENDING creados en la ventana (crédito otorgado).
	TotalPendingCreatedIn(warehouseID string, from, to time.Time) (decimal.Decimal, error)
	// TotalPaidIn suma fiados PAID cuyo PaidAt cae en la ventana (crédito cobrado en efectivo).
	TotalPaidIn(warehouseID string, from, to time.Time) (decimal.Decimal, error)
}
