package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, warehouse_id, subtotal, domicilio, total, payment_method,
			price_type, cash_received, change, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.WarehouseID, s.Subtotal, s.Domicilio, s.Total, s.PaymentMethod,
		s.PriceType, s.CashReceived, s.Change, s.Status, s.CreatedBy, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, presentation_id, quantity,
			base_quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.PresentationID,
		item.Quantity, item.BaseQuantity, item.UnitPrice, item.Subtotal)
	if err != nil {
		return fmt.Errorf("create sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta; domain.ErrNotFound si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, warehouse_id, subtotal, domicilio, total, payment_method,
			price_type, cash_received, change, status, created_by, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.WarehouseID, &s.Subtotal, &s.Domicilio, &s.Total, &s.PaymentMethod,
		&s.PriceType, &s.CashReceived, &s.Change, &s.Status, &s.CreatedBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// ListItems lista las líneas de una venta.
func (r *SaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, COALESCE(presentation_id, ''), quantity,
			base_quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.PresentationID,
			&it.Quantity, &it.BaseQuantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Delete elimina la venta y sus líneas (cascade en la FK).
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// TotalsInWindow agrega las ventas de la ventana por método de pago. Método
// vacío cuenta como efectivo; canceladas fuera; el método "fiado" suma al total
// pero a ninguna de las dos particiones (su efectivo entra por fiados cobrados).
func (r *SaleRepo) TotalsInWindow(warehouseID string, from, to time.Time) (*repository.SaleWindowTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(total), 0),
			COALESCE(SUM(total) FILTER (WHERE payment_method = '' OR payment_method = $4), 0),
			COALESCE(SUM(total) FILTER (WHERE payment_method = $5), 0),
			COUNT(*)
		FROM sales
		WHERE warehouse_id = $1
		  AND created_at >= $2 AND created_at <= $3
		  AND status <> $6`
	var t repository.SaleWindowTotals
	err := r.q.QueryRow(context.Background(), query,
		warehouseID, from, to,
		entity.PaymentMethodCash, entity.PaymentMethodTransfer, entity.SaleStatusCancelled,
	).Scan(&t.TotalSales, &t.TotalCash, &t.TotalTransfer, &t.SalesCount)
	if err != nil {
		return nil, fmt.Errorf("sale totals in window: %w", err)
	}
	return &t, nil
}
