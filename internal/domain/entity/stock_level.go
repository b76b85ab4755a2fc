package entity

import "time"

// StockLevel es el contador de existencias por (producto, bodega); único por par.
// OnHand nunca es negativo: toda mutación pasa por el ledger, que lo garantiza.
// Se crea de forma perezosa en el primer movimiento del par (semántica "ensure").
type StockLevel struct {
	ProductID   string
	WarehouseID string
	OnHand      int64 // unidades base, >= 0
	MinStock    int64 // umbral de notificación de stock bajo
	UpdatedAt   time.Time
}
