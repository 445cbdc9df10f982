package constants

// ItemStatus is the canonical status for rows in inventory_items.
type ItemStatus string

// Stable values (store these exact strings in DB).
const (
	ItemAvailable ItemStatus = "available" // in stock
	ItemFinished  ItemStatus = "finished"  // used up, candidate for the rebuy list
)

// PriceStatus classifies a rebuy item's current best price against the last
// price paid.
type PriceStatus string

const (
	PriceCheaper   PriceStatus = "cheaper"
	PriceExpensive PriceStatus = "expensive"
	PriceStable    PriceStatus = "stable"
)

// SpendTrend classifies a store's most recent basket against its average.
type SpendTrend string

const (
	TrendUp     SpendTrend = "up"
	TrendDown   SpendTrend = "down"
	TrendStable SpendTrend = "stable"
)
