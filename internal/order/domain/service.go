package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"

	ordervalidation "github.com/smallbiznis/orderdesk/internal/ordervalidation/domain"
	pricing "github.com/smallbiznis/orderdesk/internal/pricing/domain"
	promotion "github.com/smallbiznis/orderdesk/internal/promotion/domain"
)

var (
	ErrInvalidDistributor   = errors.New("invalid_distributor")
	ErrInvalidPaymentMethod = errors.New("invalid_payment_method")
	ErrEmptyOrder           = errors.New("empty_order")
	ErrInvalidQuantity      = errors.New("invalid_quantity")
	ErrUnknownProduct       = errors.New("unknown_product")
	ErrInvalidOrderID       = errors.New("invalid_order_id")
	ErrNotFound             = errors.New("order_not_found")
)

type QuoteLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

type QuoteRequest struct {
	DistributorID        string             `json:"distributor_id" binding:"required"`
	PaymentMethod        string             `json:"payment_method" binding:"required"`
	DeliveryJurisdiction string             `json:"delivery_jurisdiction"`
	Lines                []QuoteLineRequest `json:"lines" binding:"required"`
}

// QuoteLine is one fully priced line with its promotional free units.
type QuoteLine struct {
	ProductID    string  `json:"product_id"`
	SKU          string  `json:"sku"`
	ProductName  string  `json:"product_name"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    int64   `json:"unit_price"`
	DiscountRate float64 `json:"discount_rate"`

	Subtotal            int64 `json:"subtotal"`
	DiscountAmount      int64 `json:"discount_amount"`
	TaxableAmount       int64 `json:"taxable_amount"`
	LocalTaxAAmount     int64 `json:"local_tax_a_amount"`
	LocalTaxBAmount     int64 `json:"local_tax_b_amount"`
	IntegratedTaxAmount int64 `json:"integrated_tax_amount"`
	TaxAmount           int64 `json:"tax_amount"`
	LineTotal           int64 `json:"line_total"`

	Promotion promotion.Allocation `json:"promotion"`
}

// Quote is the full priced and validated view of a draft order. It is
// returned unchanged whether or not the order could be submitted.
type Quote struct {
	DistributorID        string                 `json:"distributor_id"`
	PaymentMethod        string                 `json:"payment_method"`
	SellerJurisdiction   string                 `json:"seller_jurisdiction"`
	DeliveryJurisdiction string                 `json:"delivery_jurisdiction"`
	TaxChannel           pricing.TaxChannel     `json:"tax_channel"`
	Lines                []QuoteLine            `json:"lines"`
	Totals               pricing.Totals         `json:"totals"`
	Validation           ordervalidation.Result `json:"validation"`
}

type SubmitRequest struct {
	QuoteRequest

	// ClampToStock caps each requested quantity at the available stock
	// before pricing, turning would-be shortages into smaller lines.
	ClampToStock bool `json:"clamp_to_stock"`
}

// SubmitResponse reports the outcome of a submit attempt. A blocked
// submission is not an error: Submitted is false and the quote carries
// the findings that blocked it.
type SubmitResponse struct {
	Submitted bool   `json:"submitted"`
	OrderID   string `json:"order_id,omitempty"`
	Quote     Quote  `json:"quote"`
}

type OrderView struct {
	Order Order       `json:"order"`
	Lines []OrderLine `json:"lines"`
}

type ListRequest struct {
	DistributorID string
}

type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
	Get(ctx context.Context, id snowflake.ID) (*OrderView, error)
	List(ctx context.Context, req ListRequest) ([]Order, error)
}
