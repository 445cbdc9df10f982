package confidence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
)

func record(name, store, date string, price float64, qty, purchases int) entity.PurchaseRecord {
	return entity.PurchaseRecord{
		Name:      name,
		Store:     store,
		Date:      date,
		Price:     decimal.NewFromFloat(price),
		Quantity:  qty,
		Purchases: purchases,
	}
}

// Regular cadence at the same store: every sub-score hits its maximum and the
// sum clamps to 1.
func TestScore_ClampsAtOne(t *testing.T) {
	history := []entity.PurchaseRecord{
		record("Organic Bananas", "Costco", "2024-03-01", 3.99, 2, 5),
		record("Organic Bananas", "Costco", "2024-01-31", 3.99, 2, 4),
		record("Organic Bananas", "Costco", "2024-01-01", 3.99, 2, 3),
	}
	obs := Observation{
		Name:     "ORGANIC BANANAS",
		Store:    "Costco",
		Date:     "2024-03-31",
		Price:    decimal.NewFromFloat(3.99),
		Quantity: 2,
	}

	assert.Equal(t, 1.0, Score(obs, history, constants.SourceValidatedReceipt))
}

// An unknown zero-priced item from a low-quality scan sums below zero and
// clamps to 0.
func TestScore_ClampsAtZero(t *testing.T) {
	obs := Observation{
		Name:     "GLORBLE FLEEB",
		Store:    "Costco",
		Date:     "2024-03-31",
		Price:    decimal.Zero,
		Quantity: 1,
	}

	score := Score(obs, nil, constants.SourcePartialOCR)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, DecisionReject, Decide(score))
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name    string
		obs     string
		history []entity.PurchaseRecord
		want    float64
	}{
		{
			"exact normalized match with enough purchases",
			"ORGANIC BANANAS",
			[]entity.PurchaseRecord{record("organic bananas!", "Costco", "2024-01-01", 3.99, 1, 4)},
			0.40,
		},
		{
			"exact match but too few purchases falls to similarity",
			"ORGANIC BANANAS",
			[]entity.PurchaseRecord{record("organic bananas", "Costco", "2024-01-01", 3.99, 1, 3)},
			0.20,
		},
		{
			"token overlap above 0.7",
			"BANANAS ORGANIC",
			[]entity.PurchaseRecord{record("ORGANIC BANANAS", "Costco", "2024-01-01", 3.99, 1, 2)},
			0.20,
		},
		{
			"generic term with no history",
			"MILK",
			nil,
			-0.20,
		},
		{
			"unknown specific item",
			"DRAGONFRUIT SALSA",
			nil,
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := Observation{Name: tt.obs}
			assert.InDelta(t, tt.want, MatchScore(obs, tt.history), 1e-9)
		})
	}
}

func TestTimeScore(t *testing.T) {
	regular := []entity.PurchaseRecord{
		record("Coffee", "Costco", "2024-03-01", 9.99, 1, 3),
		record("Coffee", "Costco", "2024-01-31", 9.99, 1, 2),
		record("Coffee", "Costco", "2024-01-01", 9.99, 1, 1),
	}

	t.Run("no history", func(t *testing.T) {
		assert.Zero(t, TimeScore(Observation{Date: "2024-03-31"}, nil))
	})

	t.Run("same store on cadence compounds both bonuses", func(t *testing.T) {
		obs := Observation{Store: "Costco", Date: "2024-03-31"}
		assert.InDelta(t, 0.25, TimeScore(obs, regular), 1e-9)
	})

	t.Run("different store on cadence keeps interval bonus", func(t *testing.T) {
		obs := Observation{Store: "Aldi", Date: "2024-03-31"}
		assert.InDelta(t, 0.10, TimeScore(obs, regular), 1e-9)
	})

	t.Run("way off cadence at another store", func(t *testing.T) {
		// Single record: the default 30-day interval applies, and a 100-day
		// gap deviates by more than 200% of it.
		history := regular[2:]
		obs := Observation{Store: "Aldi", Date: "2024-04-10"}
		assert.InDelta(t, -0.15, TimeScore(obs, history), 1e-9)
	})

	t.Run("unparseable observation date counts zero days", func(t *testing.T) {
		obs := Observation{Store: "Aldi", Date: "not-a-date"}
		// daysSince becomes 0, deviation 30 is within neither band.
		assert.Zero(t, TimeScore(obs, regular))
	})
}

func TestQuantityScore(t *testing.T) {
	history := []entity.PurchaseRecord{
		record("Eggs", "Costco", "2024-03-01", 4.99, 1, 2),
		record("Eggs", "Costco", "2024-02-01", 4.99, 3, 1),
	}

	tests := []struct {
		name string
		qty  int
		want float64
	}{
		{"rounded mean", 2, 0.15},
		{"within one sigma", 1, 0.05},
		{"zero quantity", 0, -0.30},
		{"implausibly large", 11, -0.30},
		{"outside sigma but plausible", 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := Observation{Quantity: tt.qty}
			assert.InDelta(t, tt.want, QuantityScore(obs, history), 1e-9)
		})
	}

	assert.Zero(t, QuantityScore(Observation{Quantity: 3}, nil))
}

func TestPriceScore(t *testing.T) {
	history := []entity.PurchaseRecord{
		record("Cheese", "Costco", "2024-03-01", 1.00, 1, 2),
		record("Cheese", "Costco", "2024-02-01", 3.00, 1, 1),
	}

	tests := []struct {
		name    string
		price   string
		history []entity.PurchaseRecord
		want    float64
	}{
		{"non-positive price always penalized", "0", nil, -0.30},
		{"negative price with history", "-1.50", history, -0.30},
		{"no history", "2.00", nil, 0},
		{"within one sigma", "2.50", history, 0.10},
		{"beyond two sigma", "5.00", history, -0.10},
		{"between one and two sigma", "3.50", history, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := Observation{Price: decimal.RequireFromString(tt.price)}
			assert.InDelta(t, tt.want, PriceScore(obs, tt.history), 1e-9)
		})
	}
}

func TestSourceScore(t *testing.T) {
	assert.Equal(t, 0.20, SourceScore(constants.SourceValidatedReceipt))
	assert.Equal(t, 0.05, SourceScore(constants.SourceManualEntry))
	assert.Equal(t, -0.10, SourceScore(constants.SourcePartialOCR))
	assert.Zero(t, SourceScore(constants.SourceType("bogus")))
}
