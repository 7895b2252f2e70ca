package distributor

import (
	"github.com/smallbiznis/orderdesk/internal/distributor/repository"
	"github.com/smallbiznis/orderdesk/internal/distributor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("distributor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
