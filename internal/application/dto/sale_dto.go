package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea de la canasta. base_quantity es opcional: el
// servidor la deriva del factor de la presentación y rechaza valores que no
// coincidan.
type SaleItemRequest struct {
	ProductID      string           `json:"product_id"`
	PresentationID string           `json:"presentation_id,omitempty"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
	BaseQuantity   int64            `json:"base_quantity,omitempty"`
}

// CreateSaleRequest entrada HTTP para crear una venta.
type CreateSaleRequest struct {
	WarehouseID   string            `json:"warehouse_id"`
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	PriceType     string            `json:"price_type,omitempty"`
	CashReceived  *decimal.Decimal  `json:"cash_received,omitempty"`
	Change        *decimal.Decimal  `json:"change,omitempty"`
	Domicilio     decimal.Decimal   `json:"domicilio,omitempty"`
}

// SaleResponse venta persistida.
type SaleResponse struct {
	ID            string          `json:"id"`
	WarehouseID   string          `json:"warehouse_id"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Domicilio     decimal.Decimal `json:"domicilio"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	PriceType     string          `json:"price_type"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateOrderRequest entrada HTTP para crear un fiado.
type CreateOrderRequest struct {
	WarehouseID  string            `json:"warehouse_id"`
	CustomerName string            `json:"customer_name"`
	Items        []SaleItemRequest `json:"items"`
}
