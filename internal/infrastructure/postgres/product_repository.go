package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sanalas/distripos-api/internal/domain/entity"
	"github.com/sanalas/distripos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, base_unit, base_stock, cost, default_price, active, created_at, updated_at`

// Create inserta un producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.BaseUnit, p.BaseStock, p.Cost, p.DefaultPrice, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE);
// serializa los descuentos concurrentes de base_stock.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *ProductRepo) scanOne(query, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.BaseUnit, &p.BaseStock, &p.Cost, &p.DefaultPrice,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables del producto.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, base_unit = $3, default_price = $4, active = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.Name, p.BaseUnit, p.DefaultPrice, p.Active)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateCost fija el costo promedio ponderado.
func (r *ProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	query := `UPDATE products SET cost = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, productID, cost)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}

// AdjustBaseStock suma delta (puede ser negativo) al contador base_stock.
func (r *ProductRepo) AdjustBaseStock(productID string, delta int64) error {
	query := `UPDATE products SET base_stock = base_stock + $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, productID, delta)
	if err != nil {
		return fmt.Errorf("adjust base stock: %w", err)
	}
	return nil
}

// List lista productos (activos primero).
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY active DESC, name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.BaseUnit, &p.BaseStock, &p.Cost,
			&p.DefaultPrice, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// Deactivate desactiva el producto (nunca se elimina).
func (r *ProductRepo) Deactivate(id string) error {
	query := `UPDATE products SET active = false, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

// CreatePresentation inserta una presentación de empaque.
func (r *ProductRepo) CreatePresentation(p *entity.Presentation) error {
	query := `
		INSERT INTO presentations (id, product_id, name, factor, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ProductID, p.Name, p.Factor, p.Price, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create presentation: %w", err)
	}
	return nil
}

// GetPresentation obtiene una presentación; nil si no existe.
func (r *ProductRepo) GetPresentation(id string) (*entity.Presentation, error) {
	query := `
		SELECT id, product_id, name, factor, price, created_at
		FROM presentations WHERE id = $1`
	var p entity.Presentation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ProductID, &p.Name, &p.Factor, &p.Price, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get presentation: %w", err)
	}
	return &p, nil
}

// ListPresentations lista las presentaciones de un producto.
func (r *ProductRepo) ListPresentations(productID string) ([]*entity.Presentation, error) {
	query := `
		SELECT id, product_id, name, factor, price, created_at
		FROM presentations WHERE product_id = $1
		ORDER BY factor`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	defer rows.Close()

	var presentations []*entity.Presentation
	for rows.Next() {
		var p entity.Presentation
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Name, &p.Factor, &p.Price, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan presentation: %w", err)
		}
		presentations = append(presentations, &p)
	}
	return presentations, rows.Err()
}
