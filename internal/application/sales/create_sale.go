package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/money"
	"github.com/sanalas/distripos-api/internal/domain/repository"
	"github.com/sanalas/distripos-api/internal/application/ledger"
	"github.com/sanalas/distripos-api/pkg/logger"
)

// SaleUseCase crea y elimina ventas de punto de venta, y gestiona fiados.
// Toda mutación (cabecera, líneas, descuento de stock, movimientos del ledger y
// asiento de caja) ocurre en una sola transacción: cualquier fallo la aborta
// completa, sin líneas huérfanas ni stock a medio descontar.
type SaleUseCase struct {
	txRunner      TxRunner
	stockLedger   *ledger.StockLedger
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	stockLedger *ledger.StockLedger,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:      txRunner,
		stockLedger:   stockLedger,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log.Component("sales"),
	}
}

// SaleItemInput una línea de la canasta. Quantity va en unidades de venta (de la
// presentación si se indica). UnitPrice es un override opcional; si falta se usa
// el precio de la presentación o el del producto. BaseQuantity es opcional: el
// motor la calcula con el factor almacenado de la presentación y, si el caller
// la envía y no coincide, la venta se rechaza.
type SaleItemInput struct {
	ProductID      string
	PresentationID string
	Quantity       decimal.Decimal
	UnitPrice      *decimal.Decimal
	BaseQuantity   int64
}

// CreateSaleInput entrada para crear una venta.
type CreateSaleInput struct {
	WarehouseID   string
	Items         []SaleItemInput
	PaymentMethod string // vacío = efectivo
	PriceType     string
	CashReceived  *decimal.Decimal
	Change        *decimal.Decimal
	Domicilio     decimal.Decimal // tarifa de entrega opcional
	UserID        string
}

// saleLine es una línea ya resuelta: producto cargado, precio y conversión a
// unidades base verificados.
type saleLine struct {
	input     SaleItemInput
	product   *entity.Product
	unitPrice decimal.Decimal
	baseQty   int64
	subtotal  decimal.Decimal
}

// resolveLines valida y resuelve cada línea fuera de la transacción (solo
// lecturas): producto activo, cantidad positiva, factor de presentación desde la
// BD y chequeo preliminar de stock. El chequeo definitivo se repite dentro de la
// transacción bajo el candado de fila.
func (uc *SaleUseCase) resolveLines(items []SaleItemInput) ([]saleLine, error) {
	lines := make([]saleLine, 0, len(items))
	required := make(map[string]int64) // acumulado por producto en unidades base
	for _, item := range items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, domain.ErrNotFound
		}

		factor := int64(1)
		unitPrice := product.DefaultPrice
		if item.PresentationID != "" {
			pres, err := uc.productRepo.GetPresentation(item.PresentationID)
			if err != nil {
				return nil, err
			}
			if pres == nil || pres.ProductID != item.ProductID {
				return nil, domain.ErrNotFound
			}
			factor = pres.Factor
			unitPrice = pres.Price
		}
		if item.UnitPrice != nil {
			if item.UnitPrice.LessThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			unitPrice = *item.UnitPrice
		}

		baseQty := item.Quantity.Mul(decimal.NewFromInt(factor)).Truncate(0).IntPart()
		if baseQty <= 0 {
			return nil, domain.ErrInvalidInput
		}
		// El multiplicador lo resuelve el motor; una BaseQuantity del caller que
		// no coincida con la aritmética del servidor se rechaza.
		if item.BaseQuantity != 0 && item.BaseQuantity != baseQty {
			return nil, domain.ErrInvalidInput
		}

		required[item.ProductID] += baseQty
		if product.BaseStock < required[item.ProductID] {
			return nil, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: required[item.ProductID],
				Available: product.BaseStock,
			}
		}

		lines = append(lines, saleLine{
			input:     item,
			product:   product,
			unitPrice: unitPrice,
			baseQty:   baseQty,
			subtotal:  money.LineSubtotal(unitPrice, item.Quantity),
		})
	}
	return lines, nil
}

// CreateSale valida la canasta completa, calcula los importes y persiste venta,
// líneas, descuento de stock y movimientos del ledger como una unidad atómica.
// Si hay sesión de caja abierta y el pago es en efectivo, asienta el ingreso.
func (uc *SaleUseCase) CreateSale(ctx context.Context, in CreateSaleInput) (*entity.Sale, error) {
	if len(in.Items) == 0 || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.warehouseRepo.GetByID(in.WarehouseID); err != nil {
		return nil, err
	}
	if in.Domicilio.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	lines, err := uc.resolveLines(in.Items)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.subtotal)
	}
	total := subtotal.Add(in.Domicilio)

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		WarehouseID:   in.WarehouseID,
		Subtotal:      subtotal,
		Domicilio:     in.Domicilio,
		Total:         total,
		PaymentMethod: in.PaymentMethod,
		PriceType:     in.PriceType,
		CashReceived:  in.CashReceived,
		Change:        in.Change,
		Status:        entity.SaleStatusActive,
		CreatedBy:     in.UserID,
		CreatedAt:     now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
		saleRepo repository.SaleRepository,
		_ repository.OrderRepository,
		sessionRepo repository.CashSessionRepository,
		cashMovRepo repository.CashMovementRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, line := range lines {
			item := &entity.SaleItem{
				ID:             uuid.New().String(),
				SaleID:         sale.ID,
				ProductID:      line.input.ProductID,
				PresentationID: line.input.PresentationID,
				Quantity:       line.input.Quantity,
				BaseQuantity:   line.baseQty,
				UnitPrice:      line.unitPrice,
				Subtotal:       line.subtotal,
			}
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			if err := debitBaseStock(stockRepo, movRepo, productRepo, notifRepo,
				uc.stockLedger, line.input.ProductID, sale.WarehouseID,
				line.baseQty, sale.ID, in.UserID, now); err != nil {
				return err
			}
		}
		return postSaleIncome(sessionRepo, cashMovRepo, sale, now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("warehouse_id", sale.WarehouseID).
		Str("total", sale.Total.StringFixed(2)).
		Int("items", len(lines)).
		Msg("venta creada")
	return sale, nil
}

// debitBaseStock descuenta unidades base de un producto dentro de la tx: re-lee
// el producto bajo candado de fila (el chequeo preliminar pudo quedar obsoleto
// por un descuento concurrente) y aplica el OUT en el ledger, que es quien
// mantiene BaseStock en paso con el contador por bodega.
func debitBaseStock(
	stockRepo repository.StockLevelRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
	stockLedger *ledger.StockLedger,
	productID, warehouseID string,
	baseQty int64,
	referenceID, userID string,
	now time.Time,
) error {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.BaseStock < baseQty {
		return &domain.InsufficientStockError{
			ProductID: productID,
			Requested: baseQty,
			Available: product.BaseStock,
		}
	}
	_, err = stockLedger.ApplyMovementInTx(stockRepo, movRepo, productRepo, notifRepo, ledger.MovementInput{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Type:        entity.MovementTypeOUT,
		Quantity:    decimal.NewFromInt(baseQty),
		ReferenceID: referenceID,
		UserID:      userID,
	}, now)
	return err
}

// creditBaseStock revierte un débito con el IN compensatorio; el ledger devuelve
// BaseStock junto con el contador por bodega.
func creditBaseStock(
	stockRepo repository.StockLevelRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
	stockLedger *ledger.StockLedger,
	productID, warehouseID string,
	baseQty int64,
	referenceID, userID string,
	now time.Time,
) error {
	_, err := stockLedger.ApplyMovementInTx(stockRepo, movRepo, productRepo, notifRepo, ledger.MovementInput{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Type:        entity.MovementTypeIN,
		Quantity:    decimal.NewFromInt(baseQty),
		ReferenceID: referenceID,
		UserID:      userID,
	}, now)
	return err
}

// postSaleIncome asienta el ingreso en la caja abierta de la bodega, si la hay y
// el pago es en efectivo (método vacío cuenta como efectivo). Sin sesión abierta
// no es error: la venta vale igual. La sesión se lee bajo candado de fila para
// no asentar sobre una que un cierre concurrente esté finalizando.
func postSaleIncome(
	sessionRepo repository.CashSessionRepository,
	cashMovRepo repository.CashMovementRepository,
	sale *entity.Sale,
	now time.Time,
) error {
	if sale.PaymentMethod != "" && sale.PaymentMethod != entity.PaymentMethodCash {
		return nil
	}
	session, err := sessionRepo.GetOpenForUpdate(sale.WarehouseID)
	if err != nil {
		if err == domain.ErrNoOpenSession {
			return nil
		}
		return err
	}
	return cashMovRepo.Create(&entity.CashMovement{
		ID:            uuid.New().String(),
		SessionID:     session.ID,
		Type:          entity.CashMovementIN,
		Amount:        sale.Total,
		Concept:       "Venta",
		ReferenceType: entity.CashRefSale,
		ReferenceID:   sale.ID,
		CreatedBy:     sale.CreatedBy,
		CreatedAt:     now,
	})
}
