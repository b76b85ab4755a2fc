package entity

import "time"

// Tipos de notificación.
const (
	NotificationLowStock = "LOW_STOCK"
)

// Notification es un evento de dominio emitido hacia la capa de persistencia
// (ej. stock bajo tras un movimiento). Su creación es fire-and-forget: un fallo
// se registra en el log pero nunca revierte el movimiento que la disparó.
type Notification struct {
	ID          string
	Type        string
	ProductID   string
	WarehouseID string
	OnHand      int64
	MinStock    int64
	Message     string
	CreatedAt   time.Time
}
