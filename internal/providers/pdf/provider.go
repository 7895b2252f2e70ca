// Package pdf renders order documents for download.
package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
)

type Provider interface {
	GenerateOrderSummary(ctx context.Context, data OrderSummaryData) (io.Reader, error)
}

type OrderSummaryLine struct {
	Description string
	Qty         int64
	FreeUnits   int64
	UnitPrice   string
	Amount      string
}

type OrderSummaryData struct {
	OrderNumber     string
	OrderDate       string
	Status          string
	PaymentMethod   string
	TaxChannel      string
	DistributorName string
	Jurisdiction    string

	Lines []OrderSummaryLine

	Subtotal       string
	DiscountAmount string
	TaxAmount      string
	NetAmount      string
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
