package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/money"
	"github.com/sanalas/distripos-api/internal/domain/repository"
	"github.com/sanalas/distripos-api/pkg/logger"
)

// StockLedger es el único camino por el que cambia la cantidad disponible de un
// (producto, bodega). Aplica movimientos con signo sobre el contador, garantiza
// la no-negatividad y deja un registro inmutable por cada cambio.
// Disciplina de concurrencia: bloqueo pesimista de fila; toda lectura previa a
// escritura va con SELECT FOR UPDATE dentro de la transacción de la operación.
type StockLedger struct {
	txRunner TxRunner
	notifier *LowStockNotifier
}

// NewStockLedger construye el ledger.
func NewStockLedger(txRunner TxRunner, log *logger.Logger) *StockLedger {
	return &StockLedger{
		txRunner: txRunner,
		notifier: NewLowStockNotifier(log),
	}
}

// MovementInput entrada para aplicar un movimiento de inventario.
// Quantity se normaliza: truncada hacia cero, valor absoluto; debe quedar > 0.
// Para ADJUST la cantidad es el nivel absoluto a fijar, no un delta.
type MovementInput struct {
	ProductID   string
	WarehouseID string
	Type        string // IN | OUT | ADJUST
	Quantity    decimal.Decimal
	UnitCost    *decimal.Decimal // entradas de compra: recalcula costo promedio
	ReferenceID string           // opcional: correlaciona operaciones multi-paso
	UserID      string
}

// ApplyMovement aplica un movimiento dentro de su propia transacción y devuelve
// el registro creado.
func (l *StockLedger) ApplyMovement(ctx context.Context, input MovementInput) (*entity.InventoryMovement, error) {
	var mov *entity.InventoryMovement
	err := l.txRunner.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
	) error {
		var err error
		mov, err = l.ApplyMovementInTx(stockRepo, movRepo, productRepo, notifRepo, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyMovementInTx aplica el movimiento usando repositorios ya atados a la
// transacción del caller; lo usan ventas, fiados y traslados para componer varios
// movimientos en una sola unidad atómica.
func (l *StockLedger) ApplyMovementInTx(
	stockRepo repository.StockLevelRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
	input MovementInput,
	now time.Time,
) (*entity.InventoryMovement, error) {
	qty := input.Quantity.Truncate(0).Abs().IntPart()
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}

	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUST:
	default:
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Bloquea la fila del nivel (SELECT FOR UPDATE); si el par no existe aún, el
	// repositorio devuelve un nivel en cero y el Upsert de abajo lo materializa.
	level, err := stockRepo.GetForUpdate(input.ProductID, input.WarehouseID)
	if err != nil {
		return nil, err
	}

	var newOnHand int64
	switch input.Type {
	case entity.MovementTypeIN:
		newOnHand = level.OnHand + qty
	case entity.MovementTypeOUT:
		newOnHand = level.OnHand - qty
	case entity.MovementTypeADJUST:
		// Fija el nivel absoluto.
		newOnHand = qty
	}
	if newOnHand < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID:   input.ProductID,
			WarehouseID: input.WarehouseID,
			Requested:   qty,
			Available:   level.OnHand,
		}
	}

	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	// Entrada de compra: recalcular costo promedio ponderado del producto.
	if input.Type == entity.MovementTypeIN && input.UnitCost != nil {
		newCost := money.AverageCost(level.OnHand, product.Cost, qty, *input.UnitCost)
		if err := productRepo.UpdateCost(input.ProductID, newCost); err != nil {
			return nil, err
		}
	}

	// BaseStock del producto se mantiene aquí, en paso con el contador por
	// bodega: IN suma, OUT resta y ADJUST rebasa por la diferencia. Un traslado
	// lo deja neto en cero (OUT origen + IN destino).
	if delta := newOnHand - level.OnHand; delta != 0 {
		if err := productRepo.AdjustBaseStock(input.ProductID, delta); err != nil {
			return nil, err
		}
	}

	level.OnHand = newOnHand
	level.UpdatedAt = now
	if err := stockRepo.Upsert(level); err != nil {
		return nil, err
	}

	signed := qty
	if input.Type == entity.MovementTypeOUT {
		signed = -qty
	}
	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		WarehouseID: input.WarehouseID,
		Type:        input.Type,
		Quantity:    signed,
		UnitCost:    input.UnitCost,
		ReferenceID: input.ReferenceID,
		CreatedAt:   now,
		CreatedBy:   input.UserID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	l.notifier.Notify(notifRepo, level, now)
	return mov, nil
}

// EnsureStockLevel devuelve el nivel del par (producto, bodega), creándolo en
// cero si no existe. Idempotente; seguro de llamar repetidamente dentro de una
// transacción.
func (l *StockLedger) EnsureStockLevel(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	var level *entity.StockLevel
	err := l.txRunner.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		_ repository.InventoryMovementRepository,
		_ repository.ProductRepository,
		_ repository.NotificationRepository,
	) error {
		var err error
		level, err = stockRepo.Get(productID, warehouseID)
		if err != nil {
			return err
		}
		if level.UpdatedAt.IsZero() {
			level.UpdatedAt = time.Now()
			return stockRepo.Upsert(level)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return level, nil
}
