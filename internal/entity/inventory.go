package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
)

// InventoryItem represents one stocked product for data transfer between layers.
type InventoryItem struct {
	ID       uuid.UUID            `json:"id"`
	Name     string               `json:"name"`
	Store    string               `json:"store"`
	Date     string               `json:"date"` // purchase date, YYYY-MM-DD
	Price    decimal.Decimal      `json:"price"`
	Quantity int                  `json:"quantity"`
	Status   constants.ItemStatus `json:"status"`
}

// RebuyItem is a finished inventory item annotated with a price comparison
// against the current best price seen across stores.
type RebuyItem struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	LastStore      string                `json:"last_store"`
	LastDate       string                `json:"last_date"`
	LastPrice      decimal.Decimal       `json:"last_price"`
	Quantity       int                   `json:"quantity"`
	BestStore      string                `json:"best_store,omitempty"`
	BestPrice      decimal.Decimal       `json:"best_price"`
	PriceChangePct float64               `json:"price_change_pct"`
	Status         constants.PriceStatus `json:"status"`
}
