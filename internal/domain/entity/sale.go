package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago. Un método vacío se trata como efectivo en la conciliación.
const (
	PaymentMethodCash     = "efectivo"
	PaymentMethodTransfer = "transferencia"
	// PaymentMethodFiado marca la venta generada al cobrar un fiado: su efectivo
	// ya se cuenta vía totalFiadosCobrados, así que la partición por método de
	// pago no debe sumarla ni a efectivo ni a transferencia.
	PaymentMethodFiado = "fiado"
)

// Tipos de precio (listas).
const (
	PriceTypePublico   = "publico"
	PriceTypeSanAlas   = "sanAlas"
	PriceTypeEmpleados = "empleados"
)

// Estados de la venta.
const (
	SaleStatusActive    = "ACTIVE"
	SaleStatusCancelled = "CANCELLED"
)

// Sale es una transacción de punto de venta completada. Se crea atómicamente con
// sus líneas; es inmutable una vez persistida salvo su eliminación, que debe
// revertir el efecto sobre el stock.
type Sale struct {
	ID            string
	WarehouseID   string
	Subtotal      decimal.Decimal
	Domicilio     decimal.Decimal // tarifa de entrega opcional
	Total         decimal.Decimal
	PaymentMethod string // vacío = efectivo
	PriceType     string
	CashReceived  *decimal.Decimal
	Change        *decimal.Decimal
	Status        string
	CreatedBy     string
	CreatedAt     time.Time
}

// SaleItem es una línea de venta. Quantity va en unidades de venta (de la
// presentación si aplica); BaseQuantity es la conversión a unidades base y es lo
// que realmente se descuenta del stock.
type SaleItem struct {
	ID             string
	SaleID         string
	ProductID      string
	PresentationID string // vacío = unidad base
	Quantity       decimal.Decimal
	BaseQuantity   int64
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
}
