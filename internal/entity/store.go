package entity

import (
	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
)

// StoreItemStats summarizes one product's price history at a single store.
type StoreItemStats struct {
	Name      string          `json:"name"`
	LastPrice decimal.Decimal `json:"last_price"`
	AvgPrice  decimal.Decimal `json:"avg_price"`
	Purchases int             `json:"purchases"`
}

// StoreSummary aggregates purchase history per store.
type StoreSummary struct {
	Name       string               `json:"name"`
	TotalSpent decimal.Decimal      `json:"total_spent"`
	Visits     int                  `json:"visits"`
	LastVisit  string               `json:"last_visit"` // YYYY-MM-DD
	AvgBasket  decimal.Decimal      `json:"avg_basket"`
	Items      []StoreItemStats     `json:"items"`
	Trend      constants.SpendTrend `json:"trend"`
}
