package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	BaseUnit     string          `json:"base_unit"`
	Cost         decimal.Decimal `json:"cost"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

// UpdateProductRequest actualización de nombre y precios.
type UpdateProductRequest struct {
	Name         string           `json:"name,omitempty"`
	DefaultPrice *decimal.Decimal `json:"default_price,omitempty"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	BaseUnit     string          `json:"base_unit"`
	BaseStock    int64           `json:"base_stock"`
	Cost         decimal.Decimal `json:"cost"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreatePresentationRequest alta de presentación de empaque.
type CreatePresentationRequest struct {
	Name   string          `json:"name"`
	Factor int64           `json:"factor"`
	Price  decimal.Decimal `json:"price"`
}

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}
