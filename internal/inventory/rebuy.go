package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
)

// Price changes within this percentage of the last paid price count as
// stable.
var stableBandPct = decimal.NewFromInt(5)

// RebuySummary is the rebuy list plus the total potential savings of buying
// every item at its current best store.
type RebuySummary struct {
	Items        []entity.RebuyItem `json:"items"`
	TotalSavings decimal.Decimal    `json:"total_savings"`
}

// RebuyList compares every finished item against the best price currently
// seen across stores and classifies the change as cheaper, expensive or
// stable.
func (s *Service) RebuyList(ctx context.Context) (*RebuySummary, error) {
	finished, err := s.inventory.List(ctx, "", constants.ItemFinished)
	if err != nil {
		return nil, fmt.Errorf("list finished items: %w", err)
	}

	summary := &RebuySummary{Items: make([]entity.RebuyItem, 0, len(finished))}
	for _, item := range finished {
		rebuy := entity.RebuyItem{
			ID:        item.ID,
			Name:      item.Name,
			LastStore: item.Store,
			LastDate:  item.Date,
			LastPrice: item.Price,
			Quantity:  item.Quantity,
			BestPrice: item.Price,
			BestStore: item.Store,
			Status:    constants.PriceStable,
		}

		history, err := s.history.FindComparable(ctx, item.Name)
		if err != nil {
			return nil, fmt.Errorf("history lookup for %q: %w", item.Name, err)
		}
		if best, store, ok := bestCurrentPrice(history); ok {
			rebuy.BestPrice = best
			rebuy.BestStore = store
			rebuy.PriceChangePct = changePct(item.Price, best)
			rebuy.Status = classifyChange(item.Price, best)
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		summary.TotalSavings = summary.TotalSavings.Add(item.Price.Sub(rebuy.BestPrice).Mul(qty))
		summary.Items = append(summary.Items, rebuy)
	}
	return summary, nil
}

// bestCurrentPrice picks the lowest of each store's most recent price.
// History is most-recent-first, so the first record seen per store is its
// latest.
func bestCurrentPrice(history []entity.PurchaseRecord) (decimal.Decimal, string, bool) {
	seen := make(map[string]struct{})
	var best decimal.Decimal
	var bestStore string
	found := false

	for _, rec := range history {
		if _, ok := seen[rec.Store]; ok {
			continue
		}
		seen[rec.Store] = struct{}{}
		if !found || rec.Price.LessThan(best) {
			best = rec.Price
			bestStore = rec.Store
			found = true
		}
	}
	return best, bestStore, found
}

func changePct(last, current decimal.Decimal) float64 {
	if last.IsZero() {
		return 0
	}
	pct, _ := current.Sub(last).Div(last).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

func classifyChange(last, current decimal.Decimal) constants.PriceStatus {
	if last.IsZero() {
		return constants.PriceStable
	}
	pct := current.Sub(last).Div(last).Mul(decimal.NewFromInt(100))
	switch {
	case pct.LessThan(stableBandPct.Neg()):
		return constants.PriceCheaper
	case pct.GreaterThan(stableBandPct):
		return constants.PriceExpensive
	default:
		return constants.PriceStable
	}
}
