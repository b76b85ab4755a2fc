package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
	"github.com/sanalas/distripos-api/pkg/logger"
)

// LowStockNotifier emite una notificación LOW_STOCK cuando, tras un movimiento,
// el nivel queda en o bajo su umbral mínimo. Es fire-and-forget respecto al
// movimiento: un fallo al insertar la notificación se registra en el log y se
// descarta, nunca revierte el movimiento.
type LowStockNotifier struct {
	log *logger.Logger
}

// NewLowStockNotifier construye el notificador.
func NewLowStockNotifier(log *logger.Logger) *LowStockNotifier {
	return &LowStockNotifier{log: log.Component("low_stock_notifier")}
}

// Notify evalúa el nivel resultante y crea la notificación si aplica.
func (n *LowStockNotifier) Notify(notifRepo repository.NotificationRepository, level *entity.StockLevel, now time.Time) {
	if level.OnHand > level.MinStock {
		return
	}
	notif := &entity.Notification{
		ID:          uuid.New().String(),
		Type:        entity.NotificationLowStock,
		ProductID:   level.ProductID,
		WarehouseID: level.WarehouseID,
		OnHand:      level.OnHand,
		MinStock:    level.MinStock,
		Message:     fmt.Sprintf("stock bajo: %d disponibles (mínimo %d)", level.OnHand, level.MinStock),
		CreatedAt:   now,
	}
	if err := notifRepo.Create(notif); err != nil {
		n.log.Warn().
			Err(err).
			Str("product_id", level.ProductID).
			Str("warehouse_id", level.WarehouseID).
			Int64("on_hand", level.OnHand).
			Msg("no se pudo crear la notificación de stock bajo")
	}
}
