package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (fiados) sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, warehouse_id, customer_name, total, status, sale_id, paid_at, created_by, created_at`

// Create inserta un fiado.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.WarehouseID, o.CustomerName, o.Total, o.Status, o.SaleID, o.PaidAt, o.CreatedBy, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea del fiado.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, base_quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.BaseQuantity, item.UnitPrice, item.Subtotal)
	if err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	return nil
}

// GetByID obtiene un fiado; domain.ErrNotFound si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el fiado bloqueando la fila (pagar y cancelar no corren).
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *OrderRepo) scanOne(query, id string) (*entity.Order, error) {
	var o entity.Order
	var saleID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.WarehouseID, &o.CustomerName, &o.Total, &o.Status, &saleID, &o.PaidAt, &o.CreatedBy, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if saleID != nil {
		o.SaleID = *saleID
	}
	return &o, nil
}

// ListItems lista las líneas de un fiado.
func (r *OrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, base_quantity, unit_price, subtotal
		FROM order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity,
			&it.BaseQuantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Update persiste estado, venta asociada y paid_at.
func (r *OrderRepo) Update(o *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $2, sale_id = NULLIF($3, ''), paid_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, o.ID, o.Status, o.SaleID, o.PaidAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// Delete elimina el fiado y sus líneas (cascade en la FK).
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// TotalPendingCreatedIn suma fiados PENDING creados en la ventana.
func (r *OrderRepo) TotalPendingCreatedIn(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE warehouse_id = $1 AND status = $2
		  AND created_at >= $3 AND created_at <= $4`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, warehouseID, entity.OrderStatusPending, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total pending orders: %w", err)
	}
	return total, nil
}

// TotalPaidIn suma fiados PAID cuyo paid_at cae en la ventana.
func (r *OrderRepo) TotalPaidIn(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE warehouse_id = $1 AND status = $2
		  AND paid_at >= $3 AND paid_at <= $4`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, warehouseID, entity.OrderStatusPaid, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total paid orders: %w", err)
	}
	return total, nil
}
