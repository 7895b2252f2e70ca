package service

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/orderdesk/internal/ordervalidation/domain"
	pricingdomain "github.com/smallbiznis/orderdesk/internal/pricing/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newValidator(t *testing.T) domain.Service {
	t.Helper()
	return New(Params{Log: zap.NewNop()})
}

func testProductID(t *testing.T) snowflake.ID {
	t.Helper()
	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)
	return node.Generate()
}

func TestValidateOrder_CreditExceeded(t *testing.T) {
	svc := newValidator(t)

	result := svc.ValidateOrder(
		domain.CreditProfile{CreditLimit: 50000, OutstandingBalance: 20000},
		nil,
		40000,
		pricingdomain.PaymentMethodCredit,
	)

	assert.False(t, result.CanProceed)
	assert.Len(t, result.Blocking, 1)
	finding := result.Blocking[0]
	assert.Equal(t, domain.FindingCreditLimit, finding.Kind)
	assert.Equal(t, domain.SeverityBlocking, finding.Severity)
	assert.Nil(t, finding.Product)
	assert.Equal(t, int64(40000), finding.RequestedAmount)
	assert.Equal(t, int64(30000), finding.AvailableAmount)
}

func TestValidateOrder_CreditWithinLimit(t *testing.T) {
	svc := newValidator(t)

	result := svc.ValidateOrder(
		domain.CreditProfile{CreditLimit: 50000, OutstandingBalance: 20000},
		nil,
		30000,
		pricingdomain.PaymentMethodCredit,
	)

	assert.True(t, result.CanProceed)
	assert.Empty(t, result.Blocking)
}

func TestValidateOrder_ZeroLimitMeansUnlimited(t *testing.T) {
	svc := newValidator(t)

	result := svc.ValidateOrder(
		domain.CreditProfile{CreditLimit: 0, OutstandingBalance: 900000},
		nil,
		10000000,
		pricingdomain.PaymentMethodCredit,
	)

	assert.True(t, result.CanProceed)
	assert.Empty(t, result.Blocking)
}

func TestValidateOrder_CreditSkippedForOtherMethods(t *testing.T) {
	svc := newValidator(t)

	for _, method := range []pricingdomain.PaymentMethod{
		pricingdomain.PaymentMethodAdvance,
		pricingdomain.PaymentMethodCheque,
	} {
		result := svc.ValidateOrder(
			domain.CreditProfile{CreditLimit: 100, OutstandingBalance: 100},
			nil,
			99999,
			method,
		)
		assert.True(t, result.CanProceed, "method %s", method)
	}
}

func TestValidateOrder_AllocationQuota(t *testing.T) {
	svc := newValidator(t)
	productID := testProductID(t)

	result := svc.ValidateOrder(domain.CreditProfile{}, []domain.LineCheck{
		{
			ProductID:            productID,
			ProductName:          "Amoxicillin 500mg",
			Quantity:             120,
			AllocationControlled: true,
			RemainingAllocation:  100,
			AvailableStock:       500,
		},
	}, 1000, pricingdomain.PaymentMethodAdvance)

	assert.False(t, result.CanProceed)
	assert.Len(t, result.Blocking, 1)
	finding := result.Blocking[0]
	assert.Equal(t, domain.FindingAllocationQuota, finding.Kind)
	assert.Equal(t, productID, *finding.Product)
	assert.Equal(t, int64(120), finding.RequestedQuantity)
	assert.Equal(t, int64(100), finding.AvailableQuantity)
}

func TestValidateOrder_AllocationIgnoredWhenUncontrolled(t *testing.T) {
	svc := newValidator(t)

	result := svc.ValidateOrder(domain.CreditProfile{}, []domain.LineCheck{
		{
			ProductID:           testProductID(t),
			Quantity:            120,
			RemainingAllocation: 0,
			AvailableStock:      500,
		},
	}, 1000, pricingdomain.PaymentMethodAdvance)

	assert.True(t, result.CanProceed)
}

func TestValidateOrder_StockShortageIsAdvisory(t *testing.T) {
	svc := newValidator(t)
	productID := testProductID(t)

	result := svc.ValidateOrder(domain.CreditProfile{}, []domain.LineCheck{
		{
			ProductID:      productID,
			ProductName:    "Paracetamol 650mg",
			Quantity:       50,
			AvailableStock: 30,
		},
	}, 1000, pricingdomain.PaymentMethodAdvance)

	// A shortage alone never blocks; it carries the clamp target.
	assert.True(t, result.CanProceed)
	assert.Empty(t, result.Blocking)
	assert.Len(t, result.StockShortages, 1)
	finding := result.StockShortages[0]
	assert.Equal(t, domain.FindingStockQuantity, finding.Kind)
	assert.Equal(t, domain.SeverityAdvisory, finding.Severity)
	assert.Equal(t, int64(30), finding.AvailableQuantity)
}

func TestValidateOrder_AllRulesReported(t *testing.T) {
	svc := newValidator(t)
	first := testProductID(t)
	second := testProductID(t)

	result := svc.ValidateOrder(
		domain.CreditProfile{CreditLimit: 1000, OutstandingBalance: 900},
		[]domain.LineCheck{
			{
				ProductID:            first,
				Quantity:             20,
				AllocationControlled: true,
				RemainingAllocation:  10,
				AvailableStock:       5,
			},
			{
				ProductID:      second,
				Quantity:       8,
				AvailableStock: 3,
			},
		},
		5000,
		pricingdomain.PaymentMethodCredit,
	)

	// Rules never short-circuit: credit + allocation blocking, both stock
	// shortages collected.
	assert.False(t, result.CanProceed)
	assert.Len(t, result.Blocking, 2)
	assert.Len(t, result.StockShortages, 2)
}
