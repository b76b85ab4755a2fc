package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// CreateOrderInput entrada para crear un fiado (venta a crédito).
type CreateOrderInput struct {
	WarehouseID  string
	CustomerName string
	Items        []SaleItemInput
	UserID       string
}

// CreateOrder crea un fiado: la mercancía sale de inmediato, así que el stock se
// descuenta en la creación (movimientos OUT con el id del fiado como referencia)
// aunque el efectivo aún no entre.
func (uc *SaleUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.Order, error) {
	if len(in.Items) == 0 || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.warehouseRepo.GetByID(in.WarehouseID); err != nil {
		return nil, err
	}

	lines, err := uc.resolveLines(in.Items)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.subtotal)
	}

	now := time.Now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		WarehouseID:  in.WarehouseID,
		CustomerName: in.CustomerName,
		Total:        total,
		Status:       entity.OrderStatusPending,
		CreatedBy:    in.UserID,
		CreatedAt:    now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
		_ repository.SaleRepository,
		orderRepo repository.OrderRepository,
		_ repository.CashSessionRepository,
		_ repository.CashMovementRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, line := range lines {
			item := &entity.OrderItem{
				ID:           uuid.New().String(),
				OrderID:      order.ID,
				ProductID:    line.input.ProductID,
				Quantity:     line.input.Quantity,
				BaseQuantity: line.baseQty,
				UnitPrice:    line.unitPrice,
				Subtotal:     line.subtotal,
			}
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
			if err := debitBaseStock(stockRepo, movRepo, productRepo, notifRepo,
				uc.stockLedger, line.input.ProductID, order.WarehouseID,
				line.baseQty, order.ID, in.UserID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("total", order.Total.StringFixed(2)).
		Msg("fiado creado")
	return order, nil
}

// PayOrder cobra un fiado PENDING: genera la venta correspondiente (sin tocar el
// stock, que ya salió al crear el fiado), estampa PaidAt y deja el fiado en PAID.
// La venta generada lleva método "fiado" para que la conciliación no la sume dos
// veces: el efectivo cobrado entra por totalFiadosCobrados.
func (uc *SaleUseCase) PayOrder(ctx context.Context, orderID, userID string) (*entity.Sale, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	var sale *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(
		_ repository.StockLevelRepository,
		_ repository.InventoryMovementRepository,
		_ repository.ProductRepository,
		_ repository.NotificationRepository,
		saleRepo repository.SaleRepository,
		orderRepo repository.OrderRepository,
		sessionRepo repository.CashSessionRepository,
		cashMovRepo repository.CashMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}

		items, err := orderRepo.ListItems(orderID)
		if err != nil {
			return err
		}

		sale = &entity.Sale{
			ID:            uuid.New().String(),
			WarehouseID:   order.WarehouseID,
			Subtotal:      order.Total,
			Domicilio:     decimal.Zero,
			Total:         order.Total,
			PaymentMethod: entity.PaymentMethodFiado,
			PriceType:     entity.PriceTypePublico,
			Status:        entity.SaleStatusActive,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, it := range items {
			if err := saleRepo.CreateItem(&entity.SaleItem{
				ID:           uuid.New().String(),
				SaleID:       sale.ID,
				ProductID:    it.ProductID,
				Quantity:     it.Quantity,
				BaseQuantity: it.BaseQuantity,
				UnitPrice:    it.UnitPrice,
				Subtotal:     it.Subtotal,
			}); err != nil {
				return err
			}
		}

		// El cobro sí es efectivo que entra al cajón: asiento IN referenciando el fiado.
		if session, err := sessionRepo.GetOpenForUpdate(order.WarehouseID); err == nil {
			if err := cashMovRepo.Create(&entity.CashMovement{
				ID:            uuid.New().String(),
				SessionID:     session.ID,
				Type:          entity.CashMovementIN,
				Amount:        order.Total,
				Concept:       "Cobro fiado",
				ReferenceType: entity.CashRefLoanPayment,
				ReferenceID:   order.ID,
				CreatedBy:     userID,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		} else if err != domain.ErrNoOpenSession {
			return err
		}

		order.Status = entity.OrderStatusPaid
		order.SaleID = sale.ID
		order.PaidAt = &now
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", orderID).Str("sale_id", sale.ID).Msg("fiado cobrado")
	return sale, nil
}

// CancelOrder cancela un fiado PENDING devolviendo el stock (IN compensatorio por
// línea, referencia al fiado).
func (uc *SaleUseCase) CancelOrder(ctx context.Context, orderID, userID string) error {
	return uc.revertPendingOrder(ctx, orderID, userID, false)
}

// DeleteOrder elimina un fiado PENDING; también devuelve el stock.
func (uc *SaleUseCase) DeleteOrder(ctx context.Context, orderID, userID string) error {
	return uc.revertPendingOrder(ctx, orderID, userID, true)
}

func (uc *SaleUseCase) revertPendingOrder(ctx context.Context, orderID, userID string, remove bool) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	return uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
		_ repository.SaleRepository,
		orderRepo repository.OrderRepository,
		_ repository.CashSessionRepository,
		_ repository.CashMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}
		items, err := orderRepo.ListItems(orderID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := creditBaseStock(stockRepo, movRepo, productRepo, notifRepo,
				uc.stockLedger, it.ProductID, order.WarehouseID,
				it.BaseQuantity, order.ID, userID, now); err != nil {
				return err
			}
		}
		if remove {
			return orderRepo.Delete(order.ID)
		}
		order.Status = entity.OrderStatusCancelled
		return orderRepo.Update(order)
	})
}
