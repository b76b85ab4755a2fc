package repository

import "github.com/sanalas/distripos-api/internal/domain/entity"

// StockLevelRepository define el puerto de persistencia para los niveles de stock
// por (producto, bodega). Get/GetForUpdate devuelven un nivel en cero cuando el par
// aún no existe (semántica "ensure": el primer Upsert lo materializa).
type StockLevelRepository interface {
	Get(productID, warehouseID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); es el candado que serializa
	// a los escritores concurrentes del mismo par producto/bodega.
	GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	SetMinStock(productID, warehouseID string, minStock int64) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error)
}
