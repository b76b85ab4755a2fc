package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo del distribuidor.
// BaseStock es la cantidad disponible en unidades base (contador legado, agregado
// de todas las bodegas); el detalle por bodega vive en StockLevel. Ambos se mutan
// dentro de la misma transacción para que no diverjan.
// Cost es costo promedio ponderado, recalculado en cada entrada de compra.
type Product struct {
	ID           string
	Name         string
	BaseUnit     string          // unidad indivisible: "kg", "unidad", etc.
	BaseStock    int64           // disponible en unidades base
	Cost         decimal.Decimal // costo promedio ponderado
	DefaultPrice decimal.Decimal // precio de venta por unidad base
	Active       bool            // nunca se elimina; se desactiva
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Presentation es una variante de empaque de un producto (ej. caja, bulto) con su
// propio precio y un factor que convierte sus unidades a unidades base.
// El factor almacenado es la fuente autoritativa: el motor de ventas no confía en
// multiplicadores calculados por el cliente.
type Presentation struct {
	ID        string
	ProductID string
	Name      string
	Factor    int64 // unidades base contenidas en una unidad de la presentación
	Price     decimal.Decimal
	CreatedAt time.Time
}
