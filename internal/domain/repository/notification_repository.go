package repository

import "github.com/sanalas/distripos-api/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	List(limit, offset int) ([]*entity.Notification, error)
}
