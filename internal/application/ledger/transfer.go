package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// TransferStock traslada quantity unidades base entre bodegas: OUT en origen e
// IN en destino, ambos en una sola transacción y compartiendo un id de
// correlación. Si la salida falla (stock insuficiente en origen), la entrada
// nunca se ejecuta. El efecto neto sobre el producto entre todas las bodegas es
// cero; la entrada no lleva costo unitario para no tocar el costo promedio.
func (l *StockLedger) TransferStock(ctx context.Context, productID, fromWarehouseID, toWarehouseID string, quantity decimal.Decimal, userID string) (*entity.InventoryMovement, error) {
	if productID == "" || fromWarehouseID == "" || toWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if fromWarehouseID == toWarehouseID {
		return nil, domain.ErrInvalidInput
	}

	refID := uuid.New().String()
	now := time.Now()

	var inMov *entity.InventoryMovement
	err := l.txRunner.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
	) error {
		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		if _, err := l.ApplyMovementInTx(stockRepo, movRepo, productRepo, notifRepo, MovementInput{
			ProductID:   productID,
			WarehouseID: fromWarehouseID,
			Type:        entity.MovementTypeOUT,
			Quantity:    quantity,
			ReferenceID: refID,
			UserID:      userID,
		}, now); err != nil {
			return err
		}

		inMov, err = l.ApplyMovementInTx(stockRepo, movRepo, productRepo, notifRepo, MovementInput{
			ProductID:   productID,
			WarehouseID: toWarehouseID,
			Type:        entity.MovementTypeIN,
			Quantity:    quantity,
			ReferenceID: refID,
			UserID:      userID,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inMov, nil
}
