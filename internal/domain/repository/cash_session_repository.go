package repository

import "github.com/sanalas/distripos-api/internal/domain/entity"

// CashSessionRepository define el puerto de persistencia para sesiones de caja.
// El registro de sesiones es el índice único parcial (warehouse_id WHERE closed_at
// IS NULL): Create hace check-and-insert atómico y devuelve ErrSessionAlreadyOpen
// si ya hay una abierta para la bodega.
type CashSessionRepository interface {
	Create(session *entity.CashSession) error
	GetByID(id string) (*entity.CashSession, error)
	// GetOpen devuelve la sesión abierta de la bodega, o ErrNoOpenSession.
	GetOpen(warehouseID string) (*entity.CashSession, error)
	// GetOpenForUpdate bloquea la fila de la sesión abierta (para el cierre).
	GetOpenForUpdate(warehouseID string) (*entity.CashSession, error)
	// Close persiste los campos de cierre y estampa closed_at (escritura terminal).
	Close(session *entity.CashSession) error
}

// CashMovementRepository define el puerto para el ledger de movimientos de caja.
type CashMovementRepository interface {
	Create(movement *entity.CashMovement) error
	ListBySession(sessionID string) ([]*entity.CashMovement, error)
	// DeleteByReference retira los asientos automáticos de una operación anulada
	// (ej. eliminar una venta elimina su CashMovement SALE).
	DeleteByReference(referenceType, referenceID string) error
}
