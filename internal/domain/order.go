package domain

import (
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "INR"

// OrderRequest is the caller-supplied body for order initiation. Amount is in
// major currency units (rupees, not paise).
type OrderRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
}

// Validate checks presence only. It deliberately does not reject negative or
// fractional-paise amounts; the gateway is the authority on those.
func (r OrderRequest) Validate() error {
	if r.Amount.IsZero() || r.Receipt == "" {
		return &ValidationError{Message: "Amount and receipt are required"}
	}
	return nil
}

// MinorUnits converts the major-unit amount to paise, assuming a
// two-decimal-place currency.
func (r OrderRequest) MinorUnits() int64 {
	return r.Amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// Order is the gateway-assigned order. It is returned to the caller and never
// persisted locally.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
