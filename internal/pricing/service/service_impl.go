package service

import (
	"math"

	"github.com/smallbiznis/orderdesk/internal/config"
	"github.com/smallbiznis/orderdesk/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Engine struct {
	log    *zap.Logger
	policy *config.OrderPolicyHolder
}

type Params struct {
	fx.In

	Log    *zap.Logger
	Policy *config.OrderPolicyHolder
}

func New(p Params) domain.Engine {
	return &Engine{
		log:    p.Log.Named("pricing.engine"),
		policy: p.Policy,
	}
}

// ResolveTaxChannel decides between split local tax and single integrated
// tax from the two jurisdiction tags. An unknown delivery jurisdiction
// resolves to INTEGRATED rather than failing; the form layer submits the
// address before any line exists, so an empty tag is a normal state here.
func (e *Engine) ResolveTaxChannel(seller, delivery domain.Jurisdiction) domain.TaxChannel {
	if seller.Equal(delivery) {
		return domain.TaxChannelSplit
	}
	return domain.TaxChannelIntegrated
}

// SelectDiscountRate picks the active discount rate for a line from the two
// rates on file. Advance payment maps to the credit rate and every other
// method to the prepaid rate.
// TODO: confirm the advance->credit mapping with the commercial team before
// changing it; swapping the fields changes billed amounts.
func (e *Engine) SelectDiscountRate(method domain.PaymentMethod, prepaidRate, creditRate float64) float64 {
	if method == domain.PaymentMethodAdvance {
		return creditRate
	}
	return prepaidRate
}

// CalculateLine derives every monetary field of a line from its inputs and
// the tax channel, returning a new value. Each derived amount is rounded
// half-up exactly once, so recalculating with unchanged inputs is
// bit-identical.
func (e *Engine) CalculateLine(line domain.OrderLine, channel domain.TaxChannel) domain.OrderLine {
	out := line

	out.Subtotal = out.UnitPrice * out.Quantity
	out.DiscountAmount = roundMoney(float64(out.Subtotal) * out.DiscountRate / 100)
	out.TaxableAmount = out.Subtotal - out.DiscountAmount

	split := e.policy.Get().TaxSplit
	switch channel {
	case domain.TaxChannelSplit:
		out.LocalTaxARate = out.NominalTaxRate * split.ShareA
		out.LocalTaxBRate = out.NominalTaxRate * split.ShareB
		out.IntegratedTaxRate = 0
	default:
		out.LocalTaxARate = 0
		out.LocalTaxBRate = 0
		out.IntegratedTaxRate = out.NominalTaxRate
	}

	out.LocalTaxAAmount = roundMoney(float64(out.TaxableAmount) * out.LocalTaxARate / 100)
	out.LocalTaxBAmount = roundMoney(float64(out.TaxableAmount) * out.LocalTaxBRate / 100)
	out.IntegratedTaxAmount = roundMoney(float64(out.TaxableAmount) * out.IntegratedTaxRate / 100)
	out.TaxAmount = out.LocalTaxAAmount + out.LocalTaxBAmount + out.IntegratedTaxAmount
	out.LineTotal = out.TaxableAmount + out.TaxAmount

	return out
}

// Aggregate rolls calculated lines up into order totals. The sum is
// insensitive to line order and an empty slice yields the zero value.
func (e *Engine) Aggregate(lines []domain.OrderLine) domain.Totals {
	var totals domain.Totals
	for _, line := range lines {
		totals.Quantity += line.Quantity
		totals.Subtotal += line.Subtotal
		totals.DiscountAmount += line.DiscountAmount
		totals.TaxableAmount += line.TaxableAmount
		totals.LocalTaxAAmount += line.LocalTaxAAmount
		totals.LocalTaxBAmount += line.LocalTaxBAmount
		totals.IntegratedTaxAmount += line.IntegratedTaxAmount
		totals.TaxAmount += line.TaxAmount
		totals.NetAmount += line.TaxableAmount + line.TaxAmount
	}
	return totals
}

// Reprice runs the full recompute pass over a line list after an order-level
// context change. Discount rate and tax channel are reselected for every
// line, then every derived field is recalculated. The input slice is left
// untouched so callers can diff before/after state.
func (e *Engine) Reprice(lines []domain.OrderLine, orderCtx domain.OrderContext) []domain.OrderLine {
	channel := e.ResolveTaxChannel(orderCtx.SellerJurisdiction, orderCtx.DeliveryJurisdiction)

	out := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		line.DiscountRate = e.SelectDiscountRate(orderCtx.PaymentMethod, line.PrepaidDiscountRate, line.CreditDiscountRate)
		out = append(out, e.CalculateLine(line, channel))
	}
	return out
}

func roundMoney(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}
