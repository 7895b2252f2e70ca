package domain

import "errors"

// Engine is the pure pricing computation surface. Every method is
// deterministic and side-effect free; identical inputs always produce
// identical outputs, so callers may invoke it concurrently without locks.
//
// Sequencing is owned by the caller: after a payment method or delivery
// address change the whole line list must go through Reprice before totals
// or validation are trusted again.
type Engine interface {
	ResolveTaxChannel(seller, delivery Jurisdiction) TaxChannel
	SelectDiscountRate(method PaymentMethod, prepaidRate, creditRate float64) float64
	CalculateLine(line OrderLine, channel TaxChannel) OrderLine
	Aggregate(lines []OrderLine) Totals
	Reprice(lines []OrderLine, orderCtx OrderContext) []OrderLine
}

var (
	ErrInvalidPaymentMethod = errors.New("invalid_payment_method")
	ErrInvalidQuantity      = errors.New("invalid_quantity")
	ErrInvalidUnitPrice     = errors.New("invalid_unit_price")
)
