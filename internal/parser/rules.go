package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
)

// Each field has an ordered catalogue of rules. A rule attempts to match a
// single line and returns a structured value plus ok; catalogues are scanned
// in priority order so individual rules stay testable on their own.

// --- store name ---

var storeRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(PUBLIX|WALMART|TARGET|COSTCO|KROGER|WHOLE FOODS)`),
	regexp.MustCompile(`(?i)^(TRADER JOE'S|ALDI|SAFEWAY|ALBERTSONS|WEGMANS)`),
	regexp.MustCompile(`(?i)^(FOOD LION|GIANT|STOP & SHOP|HARRIS TEETER)`),
	regexp.MustCompile(`(?i)^(SPROUTS|FRESH MARKET|LIDL|WINCO)`),
}

// storeSynonyms canonicalizes casing/punctuation for stores whose display
// name differs from the uppercased match.
var storeSynonyms = map[string]string{
	"TRADER JOE'S":  "Trader Joe's",
	"WHOLE FOODS":   "Whole Foods Market",
	"STOP & SHOP":   "Stop & Shop",
	"HARRIS TEETER": "Harris Teeter",
	"FRESH MARKET":  "The Fresh Market",
}

func matchStore(line string) (string, bool) {
	for _, re := range storeRules {
		if m := re.FindStringSubmatch(line); m != nil {
			return canonicalStoreName(m[1]), true
		}
	}
	return "", false
}

func canonicalStoreName(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if canonical, ok := storeSynonyms[upper]; ok {
		return canonical
	}
	return upper
}

// --- date ---

// Shape priority: MM/DD/YYYY, MM-DD-YYYY, YYYY-MM-DD, DD/MM/YYYY. The last
// shape is indistinguishable from the first; US month-first ordering is
// assumed throughout, which misparses non-US receipts. Known ambiguity,
// deliberately not "fixed" here.
var dateRules = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})`),
	regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{2,4})`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
	regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`),
}

func matchDate(line string) (string, bool) {
	for _, re := range dateRules {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// --- total ---

var totalRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)TOTAL\s*\$?\s*([\d,]+\.?\d{0,2})`),
	regexp.MustCompile(`(?i)AMOUNT\s*DUE\s*\$?\s*([\d,]+\.?\d{0,2})`),
	regexp.MustCompile(`(?i)BALANCE\s*\$?\s*([\d,]+\.?\d{0,2})`),
	regexp.MustCompile(`(?i)GRAND\s*TOTAL\s*\$?\s*([\d,]+\.?\d{0,2})`),
}

func matchTotal(line string) (decimal.Decimal, bool) {
	for _, re := range totalRules {
		if m := re.FindStringSubmatch(line); m != nil {
			amount, err := parseAmount(m[1])
			if err != nil {
				continue
			}
			// Sanity bounds, exclusive on both ends.
			if amount.IsPositive() && amount.LessThan(maxReceiptTotal) {
				return amount, true
			}
		}
	}
	return decimal.Zero, false
}

var maxReceiptTotal = decimal.NewFromInt(10000)

// --- line items ---

var (
	// "2 X BREAD 5.98"
	reItemWithQty = regexp.MustCompile(`^(\d+)\s*X\s*(.+?)\s+\$?([\d,]+\.?\d{2})$`)
	// "ORGANIC BANANAS 3.99"
	reItemSimple = regexp.MustCompile(`^(.+?)\s+\$?([\d,]+\.?\d{2})$`)
)

// Non-product prefixes, checked case-insensitively against the candidate name.
var excludeRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(SUBTOTAL|TAX|TOTAL|CHANGE|CASH|CREDIT|DEBIT)`),
	regexp.MustCompile(`(?i)^(THANK YOU|VISIT|SAVE|MEMBER|CARD|ACCOUNT)`),
	regexp.MustCompile(`(?i)^(BALANCE|TENDER|PAYMENT|REFUND)`),
	regexp.MustCompile(`(?i)^(DATE|TIME|STORE|CASHIER|REGISTER)`),
}

var maxItemPrice = decimal.NewFromInt(1000)

func isProductLine(name string, price decimal.Decimal) bool {
	for _, re := range excludeRules {
		if re.MatchString(name) {
			return false
		}
	}
	if len(name) < 2 || len(name) > 100 {
		return false
	}
	return price.IsPositive() && price.LessThan(maxItemPrice)
}

var (
	reQtyPrefix     = regexp.MustCompile(`(?i)^\d+\s*X?\s*`)
	reNonNameChars  = regexp.MustCompile(`[^\w\s\-']`)
	reInnerSpaceRun = regexp.MustCompile(`\s+`)
)

func cleanProductName(name string) string {
	s := reQtyPrefix.ReplaceAllString(name, "")
	s = reInnerSpaceRun.ReplaceAllString(s, " ")
	s = reNonNameChars.ReplaceAllString(s, "")
	return strings.ToUpper(strings.TrimSpace(s))
}

// --- payment method ---

type paymentRule struct {
	re     *regexp.Regexp
	method constants.PaymentMethod
}

var paymentRules = []paymentRule{
	{regexp.MustCompile(`(?i)VISA\s*CREDIT`), constants.PaymentVisa},
	{regexp.MustCompile(`(?i)MASTERCARD`), constants.PaymentMastercard},
	{regexp.MustCompile(`(?i)AMEX|AMERICAN EXPRESS`), constants.PaymentAmex},
	{regexp.MustCompile(`(?i)DISCOVER`), constants.PaymentDiscover},
	{regexp.MustCompile(`(?i)DEBIT`), constants.PaymentDebit},
	{regexp.MustCompile(`(?i)EBT`), constants.PaymentEBT},
	{regexp.MustCompile(`(?i)CASH`), constants.PaymentCash},
}

func matchPayment(line string) (constants.PaymentMethod, bool) {
	for _, rule := range paymentRules {
		if rule.re.MatchString(line) {
			return rule.method, true
		}
	}
	return "", false
}

// --- receipt number ---

var receiptNumberRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:RECEIPT|TRANS|TRANSACTION)\s*#?\s*:?\s*(\d+)`),
	regexp.MustCompile(`(?i)(?:ORDER|INVOICE)\s*#?\s*:?\s*(\d+)`),
	regexp.MustCompile(`#\s*(\d{4,})`),
}

func matchReceiptNumber(line string) (string, bool) {
	for _, re := range receiptNumberRules {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
