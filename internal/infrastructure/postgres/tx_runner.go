package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanalas/distripos-api/internal/application/cash"
	"github.com/sanalas/distripos-api/internal/application/ledger"
	"github.com/sanalas/distripos-api/internal/application/sales"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

// Ensure TxRunner implements the per-subsystem runners.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ cash.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL: Begin, fn con
// repositorios atados a la tx, Commit si fn retorna nil, Rollback si no. Es la
// única pieza que conoce el ciclo de vida de la transacción; los casos de uso
// solo ven repositorios.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción con los repositorios del ledger de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockLevelRepository(tx),
		NewInventoryMovementRepository(tx),
		NewProductRepository(tx),
		NewNotificationRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale transacción con los repositorios de una venta o fiado (ledger + venta
// + asiento de caja).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	sessionRepo repository.CashSessionRepository,
	cashMovRepo repository.CashMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockLevelRepository(tx),
		NewInventoryMovementRepository(tx),
		NewProductRepository(tx),
		NewNotificationRepository(tx),
		NewSaleRepository(tx),
		NewOrderRepository(tx),
		NewCashSessionRepository(tx),
		NewCashMovementRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCash transacción con los repositorios del subsistema de caja y las fuentes
// de agregados de la conciliación.
func (r *TxRunner) RunCash(ctx context.Context, fn func(
	sessionRepo repository.CashSessionRepository,
	cashMovRepo repository.CashMovementRepository,
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	financeRepo repository.FinanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewCashSessionRepository(tx),
		NewCashMovementRepository(tx),
		NewSaleRepository(tx),
		NewOrderRepository(tx),
		NewFinanceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
