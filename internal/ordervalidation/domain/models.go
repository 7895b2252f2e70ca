// Package domain defines the structured outcome of an order validation pass.
// Findings are data, not errors: a blocking finding stops submission, an
// advisory finding offers a remediation the caller may accept.
package domain

import "github.com/bwmarrin/snowflake"

type FindingKind string

const (
	FindingCreditLimit     FindingKind = "credit_limit"
	FindingAllocationQuota FindingKind = "allocation_quota"
	FindingStockQuantity   FindingKind = "stock_quantity"
)

type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityAdvisory Severity = "advisory"
)

// Finding is one rule outcome. ProductID is nil for order-level rules.
type Finding struct {
	Kind     FindingKind   `json:"kind"`
	Severity Severity      `json:"severity"`
	Product  *snowflake.ID `json:"product_id,omitempty"`

	RequestedQuantity int64 `json:"requested_quantity,omitempty"`
	AvailableQuantity int64 `json:"available_quantity,omitempty"`
	RequestedAmount   int64 `json:"requested_amount,omitempty"`
	AvailableAmount   int64 `json:"available_amount,omitempty"`

	Message string `json:"message"`
}

// LineCheck carries the per-line inputs the rules need. The caller resolves
// them from catalog data before validation.
type LineCheck struct {
	ProductID   snowflake.ID
	ProductName string
	Quantity    int64

	AllocationControlled bool
	RemainingAllocation  int64
	AvailableStock       int64
}

// CreditProfile is a distributor's credit position. A zero limit means
// unlimited credit.
type CreditProfile struct {
	CreditLimit        int64
	OutstandingBalance int64
}

// Result is one validation pass. Stock shortages are kept out of Blocking so
// the caller can distinguish "must fix" from "may clamp and resubmit"; each
// shortage finding carries AvailableQuantity for the clamp.
type Result struct {
	CanProceed     bool      `json:"can_proceed"`
	Blocking       []Finding `json:"blocking"`
	StockShortages []Finding `json:"stock_shortages"`
	Advisories     []Finding `json:"advisories"`
}
