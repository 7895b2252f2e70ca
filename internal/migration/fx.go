package migration

import (
	"github.com/smallbiznis/orderdesk/internal/config"
	"github.com/smallbiznis/orderdesk/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"

	catalogdomain "github.com/smallbiznis/orderdesk/internal/catalog/domain"
	distributordomain "github.com/smallbiznis/orderdesk/internal/distributor/domain"
	orderdomain "github.com/smallbiznis/orderdesk/internal/order/domain"
	promotiondomain "github.com/smallbiznis/orderdesk/internal/promotion/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Versioned SQL is written for postgres; other dialects are
			// dev-only and take the gorm schema directly.
			if err := conn.AutoMigrate(
				&catalogdomain.Product{},
				&distributordomain.Distributor{},
				&promotiondomain.Slab{},
				&orderdomain.Order{},
				&orderdomain.OrderLine{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
