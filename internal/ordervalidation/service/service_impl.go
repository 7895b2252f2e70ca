package service

import (
	"fmt"

	"github.com/smallbiznis/orderdesk/internal/ordervalidation/domain"
	pricingdomain "github.com/smallbiznis/orderdesk/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log *zap.Logger
}

type Service struct {
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{log: p.Log.Named("ordervalidation.service")}
}

// ValidateOrder evaluates the credit, allocation-quota and stock rules and
// returns every finding in one pass. CanProceed reflects blocking findings
// only; stock shortages are reported separately because the caller can
// clamp quantities down to available stock and resubmit.
func (s *Service) ValidateOrder(
	profile domain.CreditProfile,
	lines []domain.LineCheck,
	orderTotal int64,
	method pricingdomain.PaymentMethod,
) domain.Result {
	result := domain.Result{
		Blocking:       []domain.Finding{},
		StockShortages: []domain.Finding{},
		Advisories:     []domain.Finding{},
	}

	if finding := checkCredit(profile, orderTotal, method); finding != nil {
		result.Blocking = append(result.Blocking, *finding)
	}

	for _, line := range lines {
		if finding := checkAllocation(line); finding != nil {
			result.Blocking = append(result.Blocking, *finding)
		}
		if finding := checkStock(line); finding != nil {
			result.StockShortages = append(result.StockShortages, *finding)
		}
	}

	result.CanProceed = len(result.Blocking) == 0
	return result
}

// checkCredit applies only to credit orders. A zero credit limit means the
// distributor is not capped.
func checkCredit(profile domain.CreditProfile, orderTotal int64, method pricingdomain.PaymentMethod) *domain.Finding {
	if method != pricingdomain.PaymentMethodCredit {
		return nil
	}
	if profile.CreditLimit == 0 {
		return nil
	}

	available := profile.CreditLimit - profile.OutstandingBalance
	if orderTotal <= available {
		return nil
	}

	return &domain.Finding{
		Kind:            domain.FindingCreditLimit,
		Severity:        domain.SeverityBlocking,
		RequestedAmount: orderTotal,
		AvailableAmount: available,
		Message:         fmt.Sprintf("order total %d exceeds available credit %d", orderTotal, available),
	}
}

func checkAllocation(line domain.LineCheck) *domain.Finding {
	if !line.AllocationControlled {
		return nil
	}
	if line.Quantity <= line.RemainingAllocation {
		return nil
	}

	productID := line.ProductID
	return &domain.Finding{
		Kind:              domain.FindingAllocationQuota,
		Severity:          domain.SeverityBlocking,
		Product:           &productID,
		RequestedQuantity: line.Quantity,
		AvailableQuantity: line.RemainingAllocation,
		Message:           fmt.Sprintf("%s: requested %d exceeds remaining allocation %d", line.ProductName, line.Quantity, line.RemainingAllocation),
	}
}

func checkStock(line domain.LineCheck) *domain.Finding {
	if line.Quantity <= line.AvailableStock {
		return nil
	}

	productID := line.ProductID
	return &domain.Finding{
		Kind:              domain.FindingStockQuantity,
		Severity:          domain.SeverityAdvisory,
		Product:           &productID,
		RequestedQuantity: line.Quantity,
		AvailableQuantity: line.AvailableStock,
		Message:           fmt.Sprintf("%s: only %d of %d requested units in stock", line.ProductName, line.AvailableStock, line.Quantity),
	}
}
