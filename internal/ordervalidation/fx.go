package ordervalidation

import (
	"github.com/smallbiznis/orderdesk/internal/ordervalidation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ordervalidation.service",
	fx.Provide(service.New),
)
