package entity

import "time"

// Warehouse es una bodega o punto de venta donde se almacena inventario y opera
// una caja.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	IsPrimary bool
	CreatedAt time.Time
}
