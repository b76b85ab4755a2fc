package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del fiado (venta a crédito).
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusReturned  = "RETURNED"
)

// Order es un fiado: la mercancía sale antes del pago, así que su creación
// descuenta stock de inmediato. Al pagarse se genera una Sale y pasa a PAID;
// cancelarlo (o eliminarlo en PENDING) devuelve el stock.
type Order struct {
	ID           string
	WarehouseID  string
	CustomerName string
	Total        decimal.Decimal
	Status       string
	SaleID       string // venta generada al pagar; vacío mientras PENDING
	PaidAt       *time.Time
	CreatedBy    string
	CreatedAt    time.Time
}

// OrderItem es una línea del fiado, en unidades base ya convertidas.
type OrderItem struct {
	ID           string
	OrderID      string
	ProductID    string
	Quantity     decimal.Decimal
	BaseQuantity int64
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}
