package sales

import (
	"context"
	"time"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// DeleteSale elimina una venta revirtiendo su efecto completo: por cada línea
// devuelve las unidades base debitadas (incremento de BaseStock + movimiento IN
// compensatorio con el id de la venta como referencia) y retira el asiento de
// caja que la referencia. Todo en una transacción.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, saleID, userID string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	err := uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
		saleRepo repository.SaleRepository,
		_ repository.OrderRepository,
		_ repository.CashSessionRepository,
		cashMovRepo repository.CashMovementRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		items, err := saleRepo.ListItems(saleID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := creditBaseStock(stockRepo, movRepo, productRepo, notifRepo,
				uc.stockLedger, item.ProductID, sale.WarehouseID,
				item.BaseQuantity, sale.ID, userID, now); err != nil {
				return err
			}
		}
		if err := cashMovRepo.DeleteByReference(entity.CashRefSale, sale.ID); err != nil {
			return err
		}
		return saleRepo.Delete(sale.ID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("sale_id", saleID).Msg("venta eliminada y stock revertido")
	return nil
}
