package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockLevelColumns = `product_id, warehouse_id, on_hand, min_stock, updated_at`

// Get obtiene el nivel del par; si no existe devuelve uno en cero (semántica ensure).
func (r *StockLevelRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	query := `
		SELECT ` + stockLevelColumns + `
		FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(query, productID, warehouseID)
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE).
func (r *StockLevelRepo) GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error) {
	query := `
		SELECT ` + stockLevelColumns + `
		FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.scanOne(query, productID, warehouseID)
}

func (r *StockLevelRepo) scanOne(query, productID, warehouseID string) (*entity.StockLevel, error) {
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.OnHand, &s.MinStock, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el nivel (por producto y bodega).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (product_id, warehouse_id, on_hand, min_stock, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		level.ProductID, level.WarehouseID, level.OnHand, level.MinStock)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// SetMinStock fija el umbral de notificación del par.
func (r *StockLevelRepo) SetMinStock(productID, warehouseID string, minStock int64) error {
	query := `
		INSERT INTO stock_levels (product_id, warehouse_id, on_hand, min_stock, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET min_stock = EXCLUDED.min_stock, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, productID, warehouseID, minStock)
	if err != nil {
		return fmt.Errorf("set min stock: %w", err)
	}
	return nil
}

// ListByWarehouse lista los niveles de una bodega.
func (r *StockLevelRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT ` + stockLevelColumns + `
		FROM stock_levels WHERE warehouse_id = $1
		ORDER BY product_id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()

	var levels []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.OnHand, &s.MinStock, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		levels = append(levels, &s)
	}
	return levels, rows.Err()
}
