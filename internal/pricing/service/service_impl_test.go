package service

import (
	"math/rand"
	"testing"

	"github.com/smallbiznis/orderdesk/internal/config"
	"github.com/smallbiznis/orderdesk/internal/pricing/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) domain.Engine {
	t.Helper()
	return New(Params{
		Log:    zap.NewNop(),
		Policy: config.NewStaticOrderPolicyHolder(config.DefaultOrderPolicy()),
	})
}

func TestResolveTaxChannel(t *testing.T) {
	engine := newTestEngine(t)

	cases := []struct {
		name     string
		seller   domain.Jurisdiction
		delivery domain.Jurisdiction
		want     domain.TaxChannel
	}{
		{"same jurisdiction", "MH", "MH", domain.TaxChannelSplit},
		{"case insensitive match", "MH", "mh", domain.TaxChannelSplit},
		{"different jurisdiction", "MH", "KA", domain.TaxChannelIntegrated},
		{"missing delivery", "MH", "", domain.TaxChannelIntegrated},
		{"missing seller", "", "KA", domain.TaxChannelIntegrated},
		{"both missing", "", "", domain.TaxChannelIntegrated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, engine.ResolveTaxChannel(tc.seller, tc.delivery))
		})
	}
}

func TestSelectDiscountRate(t *testing.T) {
	engine := newTestEngine(t)

	// Advance payment selects the credit rate on file; every other method
	// selects the prepaid rate.
	assert.Equal(t, 7.5, engine.SelectDiscountRate(domain.PaymentMethodAdvance, 5.0, 7.5))
	assert.Equal(t, 5.0, engine.SelectDiscountRate(domain.PaymentMethodCredit, 5.0, 7.5))
	assert.Equal(t, 5.0, engine.SelectDiscountRate(domain.PaymentMethodCheque, 5.0, 7.5))
}

func TestCalculateLine_SplitChannel(t *testing.T) {
	engine := newTestEngine(t)

	line := engine.CalculateLine(domain.OrderLine{
		Quantity:       10,
		UnitPrice:      100,
		DiscountRate:   10,
		NominalTaxRate: 18,
	}, domain.TaxChannelSplit)

	assert.Equal(t, int64(1000), line.Subtotal)
	assert.Equal(t, int64(100), line.DiscountAmount)
	assert.Equal(t, int64(900), line.TaxableAmount)
	assert.Equal(t, 9.0, line.LocalTaxARate)
	assert.Equal(t, 9.0, line.LocalTaxBRate)
	assert.Equal(t, int64(81), line.LocalTaxAAmount)
	assert.Equal(t, int64(81), line.LocalTaxBAmount)
	assert.Equal(t, int64(0), line.IntegratedTaxAmount)
	assert.Equal(t, int64(162), line.TaxAmount)
	assert.Equal(t, int64(1062), line.LineTotal)
}

func TestCalculateLine_IntegratedChannel(t *testing.T) {
	engine := newTestEngine(t)

	line := engine.CalculateLine(domain.OrderLine{
		Quantity:       10,
		UnitPrice:      100,
		DiscountRate:   10,
		NominalTaxRate: 18,
	}, domain.TaxChannelIntegrated)

	assert.Equal(t, int64(900), line.TaxableAmount)
	assert.Equal(t, int64(0), line.LocalTaxAAmount)
	assert.Equal(t, int64(0), line.LocalTaxBAmount)
	assert.Equal(t, 18.0, line.IntegratedTaxRate)
	assert.Equal(t, int64(162), line.IntegratedTaxAmount)
	assert.Equal(t, int64(1062), line.LineTotal)
}

func TestCalculateLine_Idempotent(t *testing.T) {
	engine := newTestEngine(t)

	input := domain.OrderLine{
		Quantity:       7,
		UnitPrice:      14999,
		DiscountRate:   12.5,
		NominalTaxRate: 18,
	}

	first := engine.CalculateLine(input, domain.TaxChannelSplit)
	second := engine.CalculateLine(first, domain.TaxChannelSplit)
	assert.Equal(t, first, second)

	// Switching channel and back must land on the original values.
	crossed := engine.CalculateLine(first, domain.TaxChannelIntegrated)
	restored := engine.CalculateLine(crossed, domain.TaxChannelSplit)
	assert.Equal(t, first, restored)
}

func TestCalculateLine_DoesNotMutateInput(t *testing.T) {
	engine := newTestEngine(t)

	input := domain.OrderLine{Quantity: 3, UnitPrice: 500, DiscountRate: 5, NominalTaxRate: 12}
	copyOf := input
	_ = engine.CalculateLine(input, domain.TaxChannelSplit)
	assert.Equal(t, copyOf, input)
}

func TestAggregate_Empty(t *testing.T) {
	engine := newTestEngine(t)
	assert.Equal(t, domain.Totals{}, engine.Aggregate(nil))
	assert.Equal(t, domain.Totals{}, engine.Aggregate([]domain.OrderLine{}))
}

func TestAggregate_OrderInsensitive(t *testing.T) {
	engine := newTestEngine(t)

	lines := make([]domain.OrderLine, 0, 8)
	for i := 0; i < 8; i++ {
		lines = append(lines, engine.CalculateLine(domain.OrderLine{
			Quantity:       int64(i + 1),
			UnitPrice:      int64(100 * (i + 1)),
			DiscountRate:   float64(i),
			NominalTaxRate: 18,
		}, domain.TaxChannelSplit))
	}

	want := engine.Aggregate(lines)

	shuffled := make([]domain.OrderLine, len(lines))
	copy(shuffled, lines)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assert.Equal(t, want, engine.Aggregate(shuffled))
	assert.Equal(t, want.TaxableAmount+want.TaxAmount, want.NetAmount)
}

func TestReprice_PaymentMethodChange(t *testing.T) {
	engine := newTestEngine(t)

	lines := []domain.OrderLine{
		{Quantity: 10, UnitPrice: 100, PrepaidDiscountRate: 10, CreditDiscountRate: 15, NominalTaxRate: 18},
		{Quantity: 2, UnitPrice: 2500, PrepaidDiscountRate: 5, CreditDiscountRate: 8, NominalTaxRate: 12},
	}

	credit := engine.Reprice(lines, domain.OrderContext{
		PaymentMethod:        domain.PaymentMethodCredit,
		SellerJurisdiction:   "MH",
		DeliveryJurisdiction: "MH",
	})
	assert.Len(t, credit, 2)
	// Non-advance methods use the prepaid rate on file.
	assert.Equal(t, 10.0, credit[0].DiscountRate)
	assert.Equal(t, 5.0, credit[1].DiscountRate)

	advance := engine.Reprice(lines, domain.OrderContext{
		PaymentMethod:        domain.PaymentMethodAdvance,
		SellerJurisdiction:   "MH",
		DeliveryJurisdiction: "MH",
	})
	assert.Equal(t, 15.0, advance[0].DiscountRate)
	assert.Equal(t, 8.0, advance[1].DiscountRate)

	// The input slice is never touched.
	assert.Equal(t, 0.0, lines[0].DiscountRate)
	assert.Equal(t, int64(0), lines[0].Subtotal)
}

func TestReprice_DeliveryChangeSwitchesChannel(t *testing.T) {
	engine := newTestEngine(t)

	lines := []domain.OrderLine{
		{Quantity: 10, UnitPrice: 100, PrepaidDiscountRate: 10, CreditDiscountRate: 10, NominalTaxRate: 18},
	}

	local := engine.Reprice(lines, domain.OrderContext{
		PaymentMethod:        domain.PaymentMethodCredit,
		SellerJurisdiction:   "MH",
		DeliveryJurisdiction: "MH",
	})
	assert.Equal(t, int64(81), local[0].LocalTaxAAmount)
	assert.Equal(t, int64(0), local[0].IntegratedTaxAmount)

	interstate := engine.Reprice(local, domain.OrderContext{
		PaymentMethod:        domain.PaymentMethodCredit,
		SellerJurisdiction:   "MH",
		DeliveryJurisdiction: "KA",
	})
	assert.Equal(t, int64(0), interstate[0].LocalTaxAAmount)
	assert.Equal(t, int64(162), interstate[0].IntegratedTaxAmount)
	assert.Equal(t, local[0].LineTotal, interstate[0].LineTotal)

	// Re-running the same pass changes nothing.
	again := engine.Reprice(interstate, domain.OrderContext{
		PaymentMethod:        domain.PaymentMethodCredit,
		SellerJurisdiction:   "MH",
		DeliveryJurisdiction: "KA",
	})
	assert.Equal(t, interstate, again)
}
