package confidence

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/parser"
)

// Observation is the current item being evaluated against purchase history.
// Date stands in for "now"; the scorer never reads the wall clock.
type Observation struct {
	Name     string
	Store    string
	Date     string // YYYY-MM-DD
	Price    decimal.Decimal
	Quantity int
}

// Score combines five independent signals into a single trust value in [0,1].
// Each sub-score is computed from the same inputs and summed; none
// short-circuits another. Pure and deterministic for identical inputs.
// History is expected most-recent-first; ordering is the caller's contract.
func Score(obs Observation, history []entity.PurchaseRecord, source constants.SourceType) float64 {
	score := MatchScore(obs, history) +
		TimeScore(obs, history) +
		QuantityScore(obs, history) +
		PriceScore(obs, history) +
		SourceScore(source)

	return clamp01(score)
}

// genericTerms are names too vague to trust without a strong historical match.
var genericTerms = []string{"milk", "bread", "eggs", "water", "juice"}

// MatchScore rewards names the household has bought before: +0.40 for an
// exact normalized match with more than 3 recorded purchases, +0.20 for a
// token-set similarity above 0.7, -0.20 for a bare generic term.
func MatchScore(obs Observation, history []entity.PurchaseRecord) float64 {
	normalized := parser.NormalizeProductName(obs.Name)

	for _, h := range history {
		if parser.NormalizeProductName(h.Name) == normalized && h.Purchases > 3 {
			return 0.40
		}
	}

	maxSimilarity := 0.0
	for _, h := range history {
		if s := tokenSimilarity(obs.Name, h.Name); s > maxSimilarity {
			maxSimilarity = s
		}
	}
	if maxSimilarity > 0.7 {
		return 0.20
	}

	for _, term := range genericTerms {
		if normalized == term {
			return -0.20
		}
	}
	return 0
}

// tokenSimilarity is the Jaccard similarity of the normalized token sets of
// two product names.
func tokenSimilarity(name1, name2 string) float64 {
	set1 := tokenSet(name1)
	set2 := tokenSet(name2)

	intersection := 0
	for tok := range set1 {
		if _, ok := set2[tok]; ok {
			intersection++
		}
	}
	union := len(set2)
	for tok := range set1 {
		if _, ok := set2[tok]; !ok {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(name string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Split(parser.NormalizeProductName(name), " ") {
		set[tok] = struct{}{}
	}
	return set
}

// defaultIntervalDays is assumed when history is too short to estimate a
// purchase cadence.
const defaultIntervalDays = 30

// TimeScore rewards purchases that fit the household's cadence: +0.15 when
// the store matches the most recent purchase, +0.10 when the gap since that
// purchase deviates from the average interval by under 30% of it, -0.15 when
// it deviates by more than 200%. The store bonus and an interval adjustment
// are additive and may compound.
func TimeScore(obs Observation, history []entity.PurchaseRecord) float64 {
	if len(history) == 0 {
		return 0
	}

	last := history[0]
	daysSince := daysBetween(last.Date, obs.Date)
	expected := averageInterval(history)

	score := 0.0
	if obs.Store == last.Store {
		score += 0.15
	}

	deviation := math.Abs(float64(daysSince) - expected)
	if deviation < expected*0.3 {
		score += 0.10
	} else if deviation > expected*2 {
		score -= 0.15
	}
	return score
}

func daysBetween(date1, date2 string) int {
	d1, err1 := time.Parse("2006-01-02", date1)
	d2, err2 := time.Parse("2006-01-02", date2)
	if err1 != nil || err2 != nil {
		return 0
	}
	diff := d2.Sub(d1)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

func averageInterval(history []entity.PurchaseRecord) float64 {
	if len(history) < 2 {
		return defaultIntervalDays
	}
	sum := 0.0
	for i := 1; i < len(history); i++ {
		sum += float64(daysBetween(history[i-1].Date, history[i].Date))
	}
	return sum / float64(len(history)-1)
}

// QuantityScore checks the purchase quantity against the historical pattern:
// +0.15 on the rounded mean, +0.05 within one standard deviation, -0.30 for
// zero or anything past five times the mean.
func QuantityScore(obs Observation, history []entity.PurchaseRecord) float64 {
	if len(history) == 0 {
		return 0
	}

	quantities := make([]float64, len(history))
	for i, h := range history {
		quantities[i] = float64(h.Quantity)
	}
	avg := mean(quantities)
	std := stddev(quantities)
	qty := float64(obs.Quantity)

	switch {
	case qty == math.Round(avg):
		return 0.15
	case math.Abs(qty-avg) <= std:
		return 0.05
	case qty > avg*5 || obs.Quantity == 0:
		return -0.30
	}
	return 0
}

// PriceScore is a sanity check: -0.30 for a non-positive price regardless of
// history, +0.10 within one standard deviation of the historical mean, -0.10
// beyond two.
func PriceScore(obs Observation, history []entity.PurchaseRecord) float64 {
	if !obs.Price.IsPositive() {
		return -0.30
	}
	if len(history) == 0 {
		return 0
	}

	prices := make([]float64, len(history))
	for i, h := range history {
		prices[i] = h.Price.InexactFloat64()
	}
	avg := mean(prices)
	std := stddev(prices)
	price := obs.Price.InexactFloat64()

	switch {
	case math.Abs(price-avg) <= std:
		return 0.10
	case math.Abs(price-avg) > std*2:
		return -0.10
	}
	return 0
}

// SourceScore weighs the provenance of the observation.
func SourceScore(source constants.SourceType) float64 {
	switch source {
	case constants.SourceValidatedReceipt:
		return 0.20
	case constants.SourceManualEntry:
		return 0.05
	case constants.SourcePartialOCR:
		return -0.10
	}
	return 0
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - avg) * (v - avg)
	}
	return math.Sqrt(sum / float64(len(values)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
