// Package domain contains the value objects consumed and produced by the
// pricing engine. All monetary fields are minor currency units (int64),
// all rates are percentages (float64).
package domain

import (
	"strings"

	"github.com/bwmarrin/snowflake"
)

// TaxChannel selects how the nominal tax rate is applied to a line.
type TaxChannel string

const (
	// TaxChannelSplit applies two co-equal local components, used when the
	// seller and the delivery address share a jurisdiction.
	TaxChannelSplit TaxChannel = "SPLIT"

	// TaxChannelIntegrated applies one combined component, used for
	// cross-jurisdiction deliveries.
	TaxChannelIntegrated TaxChannel = "INTEGRATED"
)

// PaymentMethod is the order-level payment selection.
type PaymentMethod string

const (
	PaymentMethodAdvance PaymentMethod = "advance"
	PaymentMethodCredit  PaymentMethod = "credit"
	PaymentMethodCheque  PaymentMethod = "cheque"
)

// ParsePaymentMethod normalizes raw input into a known payment method.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(raw))) {
	case PaymentMethodAdvance:
		return PaymentMethodAdvance, true
	case PaymentMethodCredit:
		return PaymentMethodCredit, true
	case PaymentMethodCheque:
		return PaymentMethodCheque, true
	default:
		return "", false
	}
}

// Jurisdiction is an opaque region tag (state code). Comparison is
// case-insensitive; the empty value means "unknown".
type Jurisdiction string

// Equal reports whether two jurisdiction tags name the same region.
func (j Jurisdiction) Equal(other Jurisdiction) bool {
	return j != "" && other != "" && strings.EqualFold(string(j), string(other))
}

// OrderContext carries the order-level policy inputs that affect every line.
type OrderContext struct {
	PaymentMethod        PaymentMethod
	SellerJurisdiction   Jurisdiction
	DeliveryJurisdiction Jurisdiction
}

// OrderLine is one product line under construction. Input fields come from
// the catalog and the user; derived fields are written by the engine and are
// a pure function of the inputs. The engine never mutates a line in place.
type OrderLine struct {
	ProductID snowflake.ID
	Quantity  int64
	UnitPrice int64

	// Discount rates on file per payment method. Immutable per product;
	// only used to select DiscountRate.
	PrepaidDiscountRate float64
	CreditDiscountRate  float64
	DiscountRate        float64

	// NominalTaxRate is the full stated rate for the product. The channel
	// rates below are derived from it during calculation.
	NominalTaxRate    float64
	LocalTaxARate     float64
	LocalTaxBRate     float64
	IntegratedTaxRate float64

	// Derived amounts.
	Subtotal            int64
	DiscountAmount      int64
	TaxableAmount       int64
	LocalTaxAAmount     int64
	LocalTaxBAmount     int64
	IntegratedTaxAmount int64
	TaxAmount           int64
	LineTotal           int64
}

// Totals is the order-level rollup across calculated lines.
type Totals struct {
	Quantity            int64 `json:"quantity"`
	Subtotal            int64 `json:"subtotal"`
	DiscountAmount      int64 `json:"discount_amount"`
	TaxableAmount       int64 `json:"taxable_amount"`
	LocalTaxAAmount     int64 `json:"local_tax_a_amount"`
	LocalTaxBAmount     int64 `json:"local_tax_b_amount"`
	IntegratedTaxAmount int64 `json:"integrated_tax_amount"`
	TaxAmount           int64 `json:"tax_amount"`
	NetAmount           int64 `json:"net_amount"`
}
