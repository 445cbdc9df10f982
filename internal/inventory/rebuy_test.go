package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
)

func TestRebuyList(t *testing.T) {
	inv := newFakeInventoryRepo()
	// Most recent first, mirroring the repository contract. Costco's latest
	// price is 3.50; Aldi's latest is 3.00; Costco's stale 3.80 is ignored.
	history := &fakeHistoryRepo{records: []entity.PurchaseRecord{
		{Name: "ORGANIC BANANAS", Store: "Costco", Date: "2024-12-01", Price: decimal.RequireFromString("3.50"), Quantity: 1},
		{Name: "ORGANIC BANANAS", Store: "Aldi", Date: "2024-11-15", Price: decimal.RequireFromString("3.00"), Quantity: 1},
		{Name: "ORGANIC BANANAS", Store: "Costco", Date: "2024-11-01", Price: decimal.RequireFromString("3.80"), Quantity: 1},
	}}
	svc := NewService(nil, &fakeReceiptRepo{}, inv, history)

	finished := &entity.InventoryItem{
		Name:     "ORGANIC BANANAS",
		Store:    "Costco",
		Date:     "2024-12-01",
		Price:    decimal.RequireFromString("4.00"),
		Quantity: 2,
		Status:   constants.ItemFinished,
	}
	require.NoError(t, inv.Insert(context.Background(), finished))

	summary, err := svc.RebuyList(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)

	item := summary.Items[0]
	assert.Equal(t, "Aldi", item.BestStore)
	assert.True(t, item.BestPrice.Equal(decimal.RequireFromString("3.00")), "best price %s", item.BestPrice)
	assert.InDelta(t, -25.0, item.PriceChangePct, 1e-9)
	assert.Equal(t, constants.PriceCheaper, item.Status)

	// Two units at a dollar less each.
	assert.True(t, summary.TotalSavings.Equal(decimal.RequireFromString("2.00")), "savings %s", summary.TotalSavings)
}

func TestRebuyList_NoHistoryKeepsLastPrice(t *testing.T) {
	inv := newFakeInventoryRepo()
	svc := NewService(nil, &fakeReceiptRepo{}, inv, &fakeHistoryRepo{})

	finished := &entity.InventoryItem{
		Name:     "SAFFRON",
		Store:    "Wegmans",
		Price:    decimal.RequireFromString("12.00"),
		Quantity: 1,
		Status:   constants.ItemFinished,
	}
	require.NoError(t, inv.Insert(context.Background(), finished))

	summary, err := svc.RebuyList(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)

	item := summary.Items[0]
	assert.Equal(t, "Wegmans", item.BestStore)
	assert.True(t, item.BestPrice.Equal(finished.Price))
	assert.Equal(t, constants.PriceStable, item.Status)
	assert.True(t, summary.TotalSavings.IsZero())
}

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		name    string
		last    string
		current string
		want    constants.PriceStatus
	}{
		{"well below", "4.00", "3.00", constants.PriceCheaper},
		{"well above", "4.00", "5.00", constants.PriceExpensive},
		{"small dip stays stable", "4.00", "3.85", constants.PriceStable},
		{"small rise stays stable", "4.00", "4.15", constants.PriceStable},
		{"exactly the band edge", "4.00", "4.20", constants.PriceStable},
		{"zero last price", "0", "2.00", constants.PriceStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyChange(decimal.RequireFromString(tt.last), decimal.RequireFromString(tt.current))
			assert.Equal(t, tt.want, got)
		})
	}
}
