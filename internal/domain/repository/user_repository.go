package repository

import "github.com/sanalas/distripos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
// Contrato de ausencia: GetByID y FindByEmail devuelven domain.ErrUserNotFound.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}

// WarehouseRepository define el puerto de persistencia para Warehouse.
// Contrato de ausencia: GetByID devuelve domain.ErrNotFound.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	List() ([]*entity.Warehouse, error)
}
