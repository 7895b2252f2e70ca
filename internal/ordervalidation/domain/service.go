package domain

import pricingdomain "github.com/smallbiznis/orderdesk/internal/pricing/domain"

// Service runs every rule over one computation pass and reports all
// findings together; rules never short-circuit each other. Stateless and
// deterministic: nothing persists between passes.
type Service interface {
	ValidateOrder(profile CreditProfile, lines []LineCheck, orderTotal int64, method pricingdomain.PaymentMethod) Result
}
