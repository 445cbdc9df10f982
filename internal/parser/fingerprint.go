package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"
)

// Fingerprint derives a stable content hash from (store, date, total) to
// detect rescanned receipts. Identical triples always collide; the item list
// is deliberately not part of the hash, so two receipts from the same store,
// day and total are treated as the same scan. Documented limitation.
func Fingerprint(store, date string, total decimal.Decimal) string {
	data := strings.ToLower(store) + "|" + date + "|" + total.StringFixed(2)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
