package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
)

// ParseReceiptText extracts a structured receipt from raw OCR text. It never
// fails: missing fields degrade to defaults ("Unknown Store", today's date,
// zero total, no items).
func ParseReceiptText(text string) entity.ParsedReceipt {
	return parseReceiptAt(text, time.Now())
}

// parseReceiptAt is the clock-injected implementation; "now" only feeds the
// date fallback and two-digit year expansion.
func parseReceiptAt(text string, now time.Time) entity.ParsedReceipt {
	lines := splitLines(text)

	return entity.ParsedReceipt{
		Store:         extractStore(lines),
		Date:          extractDate(lines, now),
		Total:         extractTotal(lines),
		Items:         extractItems(lines),
		PaymentMethod: extractPaymentMethod(lines),
		ReceiptNumber: extractReceiptNumber(lines),
	}
}

func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(l); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

const storeScanWindow = 10

func extractStore(lines []string) string {
	window := lines
	if len(window) > storeScanWindow {
		window = window[:storeScanWindow]
	}
	for _, line := range window {
		if store, ok := matchStore(line); ok {
			return store
		}
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return "Unknown Store"
}

func extractDate(lines []string, now time.Time) string {
	for _, line := range lines {
		if raw, ok := matchDate(line); ok {
			return normalizeDate(raw, now)
		}
	}
	return now.Format("2006-01-02")
}

// normalizeDate converts a matched date string to YYYY-MM-DD, assuming US
// month-first ordering for slash/dash shapes.
func normalizeDate(dateStr string, now time.Time) string {
	parts := strings.FieldsFunc(dateStr, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) != 3 {
		return dateStr
	}
	if len(parts[0]) == 4 {
		// Already year-first.
		return strings.ReplaceAll(dateStr, "/", "-")
	}

	month, day, year := parts[0], parts[1], parts[2]
	if len(year) == 2 {
		yy, err := strconv.Atoi(year)
		if err == nil {
			century := now.Year() / 100 * 100
			year = strconv.Itoa(century + yy)
		}
	}
	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// extractTotal scans bottom to top since totals print near the end of a
// receipt.
func extractTotal(lines []string) decimal.Decimal {
	for i := len(lines) - 1; i >= 0; i-- {
		if total, ok := matchTotal(lines[i]); ok {
			return total
		}
	}
	return decimal.Zero
}

func extractItems(lines []string) []entity.ReceiptLineItem {
	var items []entity.ReceiptLineItem

	for _, line := range lines {
		// Quantity-prefixed shape first: "2 X BREAD 5.98".
		if m := reItemWithQty.FindStringSubmatch(line); m != nil {
			qty, err := strconv.Atoi(m[1])
			if err != nil || qty == 0 {
				continue
			}
			name := strings.TrimSpace(m[2])
			price, err := parseAmount(m[3])
			if err != nil {
				continue
			}
			if isProductLine(name, price) {
				items = append(items, entity.ReceiptLineItem{
					Name:      cleanProductName(name),
					UnitPrice: price.Div(decimal.NewFromInt(int64(qty))),
					Quantity:  qty,
				})
				continue
			}
		}

		if m := reItemSimple.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			price, err := parseAmount(m[2])
			if err != nil {
				continue
			}
			if isProductLine(name, price) {
				items = append(items, entity.ReceiptLineItem{
					Name:      cleanProductName(name),
					UnitPrice: price,
					Quantity:  1,
				})
			}
		}
	}
	return items
}

func extractPaymentMethod(lines []string) constants.PaymentMethod {
	for _, line := range lines {
		if m, ok := matchPayment(line); ok {
			return m
		}
	}
	return ""
}

func extractReceiptNumber(lines []string) string {
	for _, line := range lines {
		if n, ok := matchReceiptNumber(line); ok {
			return n
		}
	}
	return ""
}
