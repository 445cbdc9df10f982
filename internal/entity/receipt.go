package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
)

// ReceiptLineItem is one product line extracted from a receipt. UnitPrice is
// the per-unit price; quantity-prefixed lines have their total divided out.
type ReceiptLineItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// ParsedReceipt is the structured result of parsing raw OCR text. Total is
// extracted independently and is never derived by summing Items; the two may
// legitimately disagree.
type ParsedReceipt struct {
	Store         string                  `json:"store"`
	Date          string                  `json:"date"` // YYYY-MM-DD
	Total         decimal.Decimal         `json:"total"`
	Items         []ReceiptLineItem       `json:"items"`
	PaymentMethod constants.PaymentMethod `json:"payment_method,omitempty"`
	ReceiptNumber string                  `json:"receipt_number,omitempty"`
}

// ScannedReceipt represents an accepted scan for data transfer between layers.
type ScannedReceipt struct {
	ID            uuid.UUID               `json:"id"`
	Fingerprint   string                  `json:"fingerprint"`
	Store         string                  `json:"store"`
	Date          string                  `json:"date"`
	Total         decimal.Decimal         `json:"total"`
	PaymentMethod constants.PaymentMethod `json:"payment_method,omitempty"`
	ReceiptNumber string                  `json:"receipt_number,omitempty"`
	ScannedAt     time.Time               `json:"scanned_at"`
}
