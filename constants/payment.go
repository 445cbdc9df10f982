package constants

// PaymentMethod is the canonical payment tag extracted from a receipt.
type PaymentMethod string

const (
	PaymentVisa       PaymentMethod = "VISA"
	PaymentMastercard PaymentMethod = "MASTERCARD"
	PaymentAmex       PaymentMethod = "AMEX"
	PaymentDiscover   PaymentMethod = "DISCOVER"
	PaymentDebit      PaymentMethod = "DEBIT"
	PaymentEBT        PaymentMethod = "EBT"
	PaymentCash       PaymentMethod = "CASH"
)
