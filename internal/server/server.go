package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/orderdesk/internal/catalog"
	catalogdomain "github.com/smallbiznis/orderdesk/internal/catalog/domain"
	"github.com/smallbiznis/orderdesk/internal/config"
	"github.com/smallbiznis/orderdesk/internal/distributor"
	distributordomain "github.com/smallbiznis/orderdesk/internal/distributor/domain"
	"github.com/smallbiznis/orderdesk/internal/observability"
	obsmiddleware "github.com/smallbiznis/orderdesk/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/orderdesk/internal/observability/metrics"
	obstracing "github.com/smallbiznis/orderdesk/internal/observability/tracing"
	"github.com/smallbiznis/orderdesk/internal/order"
	orderdomain "github.com/smallbiznis/orderdesk/internal/order/domain"
	"github.com/smallbiznis/orderdesk/internal/ordervalidation"
	"github.com/smallbiznis/orderdesk/internal/pricing"
	pricingdomain "github.com/smallbiznis/orderdesk/internal/pricing/domain"
	"github.com/smallbiznis/orderdesk/internal/promotion"
	promotiondomain "github.com/smallbiznis/orderdesk/internal/promotion/domain"
	"github.com/smallbiznis/orderdesk/internal/providers/pdf"
	"github.com/smallbiznis/orderdesk/internal/ratelimit"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	catalog.Module,
	distributor.Module,
	pricing.Module,
	promotion.Module,
	ordervalidation.Module,
	order.Module,
	pdf.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	return r
}

func registerGin(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, metrics)
}

func run(lc fx.Lifecycle, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	catalogSvc     catalogdomain.Service
	distributorSvc distributordomain.Service
	engineSvc      pricingdomain.Engine
	promotionSvc   promotiondomain.Service
	orderSvc       orderdomain.Service

	pdfProvider   pdf.Provider
	obsMetrics    *obsmetrics.Metrics
	submitLimiter *ratelimit.OrderSubmitLimiter
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	GenID *snowflake.Node

	CatalogSvc     catalogdomain.Service
	DistributorSvc distributordomain.Service
	EngineSvc      pricingdomain.Engine
	PromotionSvc   promotiondomain.Service
	OrderSvc       orderdomain.Service

	PDFProvider   pdf.Provider
	ObsMetrics    *obsmetrics.Metrics           `optional:"true"`
	SubmitLimiter *ratelimit.OrderSubmitLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		catalogSvc:     p.CatalogSvc,
		distributorSvc: p.DistributorSvc,
		engineSvc:      p.EngineSvc,
		promotionSvc:   p.PromotionSvc,
		orderSvc:       p.OrderSvc,
		pdfProvider:    p.PDFProvider,
		obsMetrics:     p.ObsMetrics,
		submitLimiter:  p.SubmitLimiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	products := api.Group("/products")
	{
		products.POST("", s.CreateProduct)
		products.GET("", s.ListProducts)
		products.GET("/:id", s.GetProductByID)
	}

	distributors := api.Group("/distributors")
	{
		distributors.POST("", s.CreateDistributor)
		distributors.GET("", s.ListDistributors)
		distributors.GET("/:id", s.GetDistributorByID)
		distributors.GET("/:id/credit", s.GetDistributorCredit)
	}

	promotions := api.Group("/promotions")
	{
		promotions.POST("/slabs", s.CreatePromotionSlab)
		promotions.GET("/slabs", s.ListPromotionSlabs)
		promotions.POST("/allocate", s.AllocatePromotion)
	}

	orders := api.Group("/orders")
	{
		orders.POST("/quote", s.QuoteOrder)
		orders.POST("", s.SubmitOrder)
		orders.GET("", s.ListOrders)
		orders.GET("/:id", s.GetOrderByID)
		orders.GET("/:id/pdf", s.GetOrderPDF)
	}
}
