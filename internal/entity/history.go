package entity

import "github.com/shopspring/decimal"

// PurchaseRecord is one historical purchase fact used as comparison context
// by the confidence scorer. Records are owned by the inventory store and are
// read-only to the scoring engine.
type PurchaseRecord struct {
	Name           string          `json:"name"`
	NormalizedName string          `json:"normalized_name"`
	Store          string          `json:"store"`
	Date           string          `json:"date"` // YYYY-MM-DD
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	Purchases      int             `json:"purchases"` // observed purchase count
}
