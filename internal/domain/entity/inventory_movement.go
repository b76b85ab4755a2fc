package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN     = "IN"     // entrada
	MovementTypeOUT    = "OUT"    // salida
	MovementTypeADJUST = "ADJUST" // ajuste: fija el nivel absoluto, no un delta
)

// InventoryMovement es un hecho inmutable del ledger de inventario: nunca se
// modifica ni se elimina; una reversión es un movimiento compensatorio nuevo.
// Quantity va con signo: negativo para OUT, positivo para IN; para ADJUST se
// registra el nivel absoluto fijado.
// ReferenceID correlaciona operaciones de varios pasos: las dos patas de un
// traslado o las líneas de una venta comparten el mismo id.
type InventoryMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    int64            // con signo (ver arriba)
	UnitCost    *decimal.Decimal // opcional; presente en entradas de compra
	ReferenceID string           // opcional; id de correlación
	CreatedAt   time.Time
	CreatedBy   string // UserID
}
