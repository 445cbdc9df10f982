package markets

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/repository"
)

// A store's most recent basket within this percentage of its average basket
// counts as a stable trend.
var trendBandPct = decimal.NewFromInt(10)

// Service aggregates purchase history into per-store summaries.
type Service struct {
	logger  *slog.Logger
	history repository.HistoryRepository
}

func NewService(logger *slog.Logger, history repository.HistoryRepository) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, history: history}
}

// Summaries computes total spend, visit count, average basket, per-item
// price stats and a spend trend for every store in the purchase history.
func (s *Service) Summaries(ctx context.Context) ([]entity.StoreSummary, error) {
	records, err := s.history.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load purchase history: %w", err)
	}

	byStore := make(map[string][]entity.PurchaseRecord)
	for _, rec := range records {
		byStore[rec.Store] = append(byStore[rec.Store], rec)
	}

	summaries := make([]entity.StoreSummary, 0, len(byStore))
	for store, recs := range byStore {
		summaries = append(summaries, summarize(store, recs))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].TotalSpent.GreaterThan(summaries[j].TotalSpent)
	})
	return summaries, nil
}

// summarize aggregates one store's records; they arrive most-recent-first.
func summarize(store string, recs []entity.PurchaseRecord) entity.StoreSummary {
	summary := entity.StoreSummary{Name: store}

	baskets := make(map[string]decimal.Decimal) // tx_date -> basket total
	type itemAgg struct {
		lastPrice decimal.Decimal
		priceSum  decimal.Decimal
		count     int
	}
	items := make(map[string]*itemAgg)
	var itemOrder []string

	for _, rec := range recs {
		lineTotal := rec.Price.Mul(decimal.NewFromInt(int64(rec.Quantity)))
		summary.TotalSpent = summary.TotalSpent.Add(lineTotal)
		baskets[rec.Date] = baskets[rec.Date].Add(lineTotal)
		if rec.Date > summary.LastVisit {
			summary.LastVisit = rec.Date
		}

		agg, ok := items[rec.Name]
		if !ok {
			agg = &itemAgg{lastPrice: rec.Price} // first seen is the latest
			items[rec.Name] = agg
			itemOrder = append(itemOrder, rec.Name)
		}
		agg.priceSum = agg.priceSum.Add(rec.Price)
		agg.count++
	}

	summary.Visits = len(baskets)
	if summary.Visits > 0 {
		summary.AvgBasket = summary.TotalSpent.Div(decimal.NewFromInt(int64(summary.Visits))).Round(2)
	}

	for _, name := range itemOrder {
		agg := items[name]
		summary.Items = append(summary.Items, entity.StoreItemStats{
			Name:      name,
			LastPrice: agg.lastPrice,
			AvgPrice:  agg.priceSum.Div(decimal.NewFromInt(int64(agg.count))).Round(2),
			Purchases: agg.count,
		})
	}

	summary.Trend = trend(baskets[summary.LastVisit], summary.AvgBasket)
	return summary
}

func trend(lastBasket, avgBasket decimal.Decimal) constants.SpendTrend {
	if avgBasket.IsZero() {
		return constants.TrendStable
	}
	pct := lastBasket.Sub(avgBasket).Div(avgBasket).Mul(decimal.NewFromInt(100))
	switch {
	case pct.GreaterThan(trendBandPct):
		return constants.TrendUp
	case pct.LessThan(trendBandPct.Neg()):
		return constants.TrendDown
	default:
		return constants.TrendStable
	}
}
