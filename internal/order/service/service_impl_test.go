package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/smallbiznis/orderdesk/internal/catalog/domain"
	catalogrepo "github.com/smallbiznis/orderdesk/internal/catalog/repository"
	"github.com/smallbiznis/orderdesk/internal/clock"
	"github.com/smallbiznis/orderdesk/internal/config"
	distributordomain "github.com/smallbiznis/orderdesk/internal/distributor/domain"
	distributorrepo "github.com/smallbiznis/orderdesk/internal/distributor/repository"
	"github.com/smallbiznis/orderdesk/internal/order/domain"
	orderrepo "github.com/smallbiznis/orderdesk/internal/order/repository"
	validationsvc "github.com/smallbiznis/orderdesk/internal/ordervalidation/service"
	pricingdomain "github.com/smallbiznis/orderdesk/internal/pricing/domain"
	pricingsvc "github.com/smallbiznis/orderdesk/internal/pricing/service"
	promotiondomain "github.com/smallbiznis/orderdesk/internal/promotion/domain"
	promotionrepo "github.com/smallbiznis/orderdesk/internal/promotion/repository"
	promotionsvc "github.com/smallbiznis/orderdesk/internal/promotion/service"
)

type orderFixture struct {
	svc     domain.Service
	db      *gorm.DB
	node    *snowflake.Node
	clock   *clock.FakeClock
	catalog catalogdomain.Repository
}

func setupOrderService(t *testing.T) *orderFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&catalogdomain.Product{},
		&distributordomain.Distributor{},
		&promotiondomain.Slab{},
		&domain.Order{},
		&domain.OrderLine{},
	))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	policy := config.NewStaticOrderPolicyHolder(config.OrderPolicy{
		SellerJurisdiction: "MH",
		TaxSplit:           config.TaxSplitPolicy{ShareA: 0.5, ShareB: 0.5},
	})

	log := zap.NewNop()
	fake := clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	catalog := catalogrepo.Provide(catalogrepo.Params{DB: db})
	distributor := distributorrepo.Provide(distributorrepo.Params{DB: db})

	svc := New(Params{
		DB:          db,
		Log:         log,
		Node:        node,
		Clock:       fake,
		Policy:      policy,
		Repo:        orderrepo.Provide(orderrepo.Params{DB: db}),
		Catalog:     catalog,
		Distributor: distributor,
		Engine:      pricingsvc.New(pricingsvc.Params{Log: log, Policy: policy}),
		Validator:   validationsvc.New(validationsvc.Params{Log: log}),
		Promotions: promotionsvc.New(promotionsvc.Params{
			DB:    db,
			Log:   log,
			GenID: node,
			Repo:  promotionrepo.Provide(promotionrepo.Params{DB: db}),
		}),
	})

	return &orderFixture{svc: svc, db: db, node: node, clock: fake, catalog: catalog}
}

func (f *orderFixture) seedProduct(t *testing.T, p catalogdomain.Product) catalogdomain.Product {
	t.Helper()
	if p.ID == 0 {
		p.ID = f.node.Generate()
	}
	if p.SKU == "" {
		p.SKU = "sku-" + p.ID.String()
	}
	p.Active = true
	assert.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *orderFixture) seedDistributor(t *testing.T, d distributordomain.Distributor) distributordomain.Distributor {
	t.Helper()
	if d.ID == 0 {
		d.ID = f.node.Generate()
	}
	if d.Code == "" {
		d.Code = "dist-" + d.ID.String()
	}
	d.Active = true
	assert.NoError(t, f.db.Create(&d).Error)
	return d
}

func TestQuote_SplitChannelWithPromotion(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	product := f.seedProduct(t, catalogdomain.Product{
		Name:                "Amoxicillin 500mg",
		UnitPrice:           100,
		PrepaidDiscountRate: 10,
		CreditDiscountRate:  5,
		TaxRate:             18,
		AvailableStock:      500,
	})
	assert.NoError(t, f.db.Create(&promotiondomain.Slab{
		ID:                f.node.Generate(),
		ProductID:         product.ID,
		ThresholdQuantity: 10,
		FreeQuantity:      2,
		Active:            true,
	}).Error)
	distributor := f.seedDistributor(t, distributordomain.Distributor{
		Name:         "Western Pharma",
		Jurisdiction: "MH",
	})

	quote, err := f.svc.Quote(ctx, domain.QuoteRequest{
		DistributorID: distributor.ID.String(),
		PaymentMethod: "advance",
		Lines: []domain.QuoteLineRequest{
			{ProductID: product.ID.String(), Quantity: 10},
		},
	})
	assert.NoError(t, err)

	assert.Equal(t, pricingdomain.TaxChannelSplit, quote.TaxChannel)
	assert.Equal(t, "MH", quote.DeliveryJurisdiction)
	assert.Len(t, quote.Lines, 1)

	line := quote.Lines[0]
	assert.Equal(t, int64(1000), line.Subtotal)
	assert.Equal(t, int64(100), line.DiscountAmount)
	assert.Equal(t, int64(900), line.TaxableAmount)
	assert.Equal(t, int64(81), line.LocalTaxAAmount)
	assert.Equal(t, int64(81), line.LocalTaxBAmount)
	assert.Equal(t, int64(0), line.IntegratedTaxAmount)
	assert.Equal(t, int64(1062), line.LineTotal)
	assert.Equal(t, int64(2), line.Promotion.TotalFreeUnits)

	assert.Equal(t, int64(1062), quote.Totals.NetAmount)
	assert.True(t, quote.Validation.CanProceed)
}

func TestQuote_CrossJurisdictionUsesIntegratedTax(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	product := f.seedProduct(t, catalogdomain.Product{
		Name:                "Paracetamol 650mg",
		UnitPrice:           100,
		PrepaidDiscountRate: 10,
		CreditDiscountRate:  5,
		TaxRate:             18,
		AvailableStock:      500,
	})
	distributor := f.seedDistributor(t, distributordomain.Distributor{
		Name:         "Southern Pharma",
		Jurisdiction: "KA",
	})

	quote, err := f.svc.Quote(ctx, domain.QuoteRequest{
		DistributorID: distributor.ID.String(),
		PaymentMethod: "advance",
		Lines: []domain.QuoteLineRequest{
			{ProductID: product.ID.String(), Quantity: 10},
		},
	})
	assert.NoError(t, err)

	assert.Equal(t, pricingdomain.TaxChannelIntegrated, quote.TaxChannel)
	line := quote.Lines[0]
	assert.Equal(t, int64(0), line.LocalTaxAAmount)
	assert.Equal(t, int64(162), line.IntegratedTaxAmount)
	assert.Equal(t, int64(1062), line.LineTotal)
}

func TestQuote_ExplicitDeliveryOverridesDistributor(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	product := f.seedProduct(t, catalogdomain.Product{
		Name: "Cough Syrup", UnitPrice: 200, TaxRate: 12, AvailableStock: 100,
	})
	distributor := f.seedDistributor(t, distributordomain.Distributor{
		Name: "Western Pharma", Jurisdiction: "MH",
	})

	quote, err := f.svc.Quote(ctx, domain.QuoteRequest{
		DistributorID:        distributor.ID.String(),
		PaymentMethod:        "cheque",
		DeliveryJurisdiction: "GJ",
		Lines:                []domain.QuoteLineRequest{{ProductID: product.ID.String(), Quantity: 1}},
	})
	assert.NoError(t, err)
	assert.Equal(t, pricingdomain.TaxChannelIntegrated, quote.TaxChannel)
	assert.Equal(t, "GJ", quote.DeliveryJurisdiction)
}

func TestQuote_InputErrors(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	product := f.seedProduct(t, catalogdomain.Product{
		Name: "Ibuprofen", UnitPrice: 50, AvailableStock: 10,
	})
	distributor := f.seedDistributor(t, distributordomain.Distributor{
		Name: "Pharma One", Jurisdiction: "MH",
	})

	_, err := f.svc.Quote(ctx, domain.QuoteRequest{
		DistributorID: distributor.ID.String(),
		PaymentMethod: "barter",
		Lines:         []domain.QuoteLineRequest{{ProductID: product.ID.String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)

	_, err = f.svc.Quote(ctx, domain.QuoteRequest{
		DistributorID: distributor.ID.String(),
		PaymentMethod: "advance",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = f.svc.Quote(ctx, domain.QuoteRequest{
		DistributorID: distributor.ID.String(),
		PaymentMethod: "advance",
		Lines:         []domain.QuoteLineRequest{{ProductID: product.ID.String(), Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.Quote(ctx, domain.QuoteRequest{
		DistributorID: f.node.Generate().String(),
		PaymentMethod: "advance",
		Lines:         []domain.QuoteLineRequest{{ProductID: product.ID.String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDistributor)

	_, err = f.svc.Quote(ctx, domain.QuoteRequest{
		DistributorID: distributor.ID.String(),
		PaymentMethod: "advance",
		Lines:         []domain.QuoteLineRequest{{ProductID: f.node.Generate().String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestSubmit_PersistsOrderAndDecrementsStock(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	product := f.seedProduct(t, catalogdomain.Product{
		Name:                 "Insulin Pen",
		UnitPrice:            1000,
		PrepaidDiscountRate:  10,
		CreditDiscountRate:   5,
		TaxRate:              18,
		AvailableStock:       100,
		AllocationControlled: true,
		RemainingAllocation:  80,
	})
	distributor := f.seedDistributor(t, distributordomain.Distributor{
		Name: "Metro Pharma", Jurisdiction: "MH",
	})

	resp, err := f.svc.Submit(ctx, domain.SubmitRequest{
		QuoteRequest: domain.QuoteRequest{
			DistributorID: distributor.ID.String(),
			PaymentMethod: "advance",
			Lines:         []domain.QuoteLineRequest{{ProductID: product.ID.String(), Quantity: 20}},
		},
	})
	assert.NoError(t, err)
	assert.True(t, resp.Submitted)
	assert.NotEmpty(t, resp.OrderID)

	orderID, err := snowflake.ParseString(resp.OrderID)
	assert.NoError(t, err)

	view, err := f.svc.Get(ctx, orderID)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusSubmitted, view.Order.Status)
	assert.Equal(t, resp.Quote.Totals.NetAmount, view.Order.NetAmount)
	assert.Len(t, view.Lines, 1)
	assert.Equal(t, int64(20), view.Lines[0].Quantity)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), view.Order.CreatedAt)

	updated, err := f.catalog.FindByID(ctx, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(80), updated.AvailableStock)
	assert.Equal(t, int64(60), updated.RemainingAllocation)
}

func TestSubmit_BlockedByCreditLimit(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	product := f.seedProduct(t, catalogdomain.Product{
		Name: "Vaccine Dose", UnitPrice: 1000, TaxRate: 18, AvailableStock: 100,
	})
	distributor := f.seedDistributor(t, distributordomain.Distributor{
		Name:               "Capped Pharma",
		Jurisdiction:       "MH",
		CreditLimit:        5000,
		OutstandingBalance: 4000,
	})

	resp, err := f.svc.Submit(ctx, domain.SubmitRequest{
		QuoteRequest: domain.QuoteRequest{
			DistributorID: distributor.ID.String(),
			PaymentMethod: "credit",
			Lines:         []domain.QuoteLineRequest{{ProductID: product.ID.String(), Quantity: 10}},
		},
	})
	assert.NoError(t, err)
	assert.False(t, resp.Submitted)
	assert.Empty(t, resp.OrderID)
	assert.False(t, resp.Quote.Validation.CanProceed)
	assert.NotEmpty(t, resp.Quote.Validation.Blocking)

	orders, err := f.svc.List(ctx, domain.ListRequest{})
	assert.NoError(t, err)
	assert.Empty(t, orders)

	updated, err := f.catalog.FindByID(ctx, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), updated.AvailableStock)
}

func TestSubmit_StockShortageBlocksWithoutClamp(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	product := f.seedProduct(t, catalogdomain.Product{
		Name: "Syringe Box", UnitPrice: 100, AvailableStock: 30,
	})
	distributor := f.seedDistributor(t, distributordomain.Distributor{
		Name: "Metro Pharma", Jurisdiction: "MH",
	})

	resp, err := f.svc.Submit(ctx, domain.SubmitRequest{
		QuoteRequest: domain.QuoteRequest{
			DistributorID: distributor.ID.String(),
			PaymentMethod: "advance",
			Lines:         []domain.QuoteLineRequest{{ProductID: product.ID.String(), Quantity: 50}},
		},
	})
	assert.NoError(t, err)
	assert.False(t, resp.Submitted)
	assert.True(t, resp.Quote.Validation.CanProceed)
	assert.Len(t, resp.Quote.Validation.StockShortages, 1)
}

func TestSubmit_ClampToStockSubmitsReducedQuantity(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	short := f.seedProduct(t, catalogdomain.Product{
		Name: "Gauze Roll", UnitPrice: 100, AvailableStock: 30,
	})
	exhausted := f.seedProduct(t, catalogdomain.Product{
		Name: "Face Mask", UnitPrice: 50, AvailableStock: 0,
	})
	distributor := f.seedDistributor(t, distributordomain.Distributor{
		Name: "Metro Pharma", Jurisdiction: "MH",
	})

	resp, err := f.svc.Submit(ctx, domain.SubmitRequest{
		QuoteRequest: domain.QuoteRequest{
			DistributorID: distributor.ID.String(),
			PaymentMethod: "advance",
			Lines: []domain.QuoteLineRequest{
				{ProductID: short.ID.String(), Quantity: 50},
				{ProductID: exhausted.ID.String(), Quantity: 5},
			},
		},
		ClampToStock: true,
	})
	assert.NoError(t, err)
	assert.True(t, resp.Submitted)
	assert.Len(t, resp.Quote.Lines, 1)
	assert.Equal(t, int64(30), resp.Quote.Lines[0].Quantity)

	updated, err := f.catalog.FindByID(ctx, short.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), updated.AvailableStock)
}

func TestSubmit_ClampWithNoSellableLines(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	exhausted := f.seedProduct(t, catalogdomain.Product{
		Name: "Face Mask", UnitPrice: 50, AvailableStock: 0,
	})
	distributor := f.seedDistributor(t, distributordomain.Distributor{
		Name: "Metro Pharma", Jurisdiction: "MH",
	})

	_, err := f.svc.Submit(ctx, domain.SubmitRequest{
		QuoteRequest: domain.QuoteRequest{
			DistributorID: distributor.ID.String(),
			PaymentMethod: "advance",
			Lines:         []domain.QuoteLineRequest{{ProductID: exhausted.ID.String(), Quantity: 5}},
		},
		ClampToStock: true,
	})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestList_FiltersByDistributor(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	product := f.seedProduct(t, catalogdomain.Product{
		Name: "Bandage", UnitPrice: 10, AvailableStock: 1000,
	})
	first := f.seedDistributor(t, distributordomain.Distributor{Name: "A", Jurisdiction: "MH"})
	second := f.seedDistributor(t, distributordomain.Distributor{Name: "B", Jurisdiction: "KA"})

	for _, d := range []distributordomain.Distributor{first, second} {
		_, err := f.svc.Submit(ctx, domain.SubmitRequest{
			QuoteRequest: domain.QuoteRequest{
				DistributorID: d.ID.String(),
				PaymentMethod: "advance",
				Lines:         []domain.QuoteLineRequest{{ProductID: product.ID.String(), Quantity: 5}},
			},
		})
		assert.NoError(t, err)
	}

	all, err := f.svc.List(ctx, domain.ListRequest{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.svc.List(ctx, domain.ListRequest{DistributorID: first.ID.String()})
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].DistributorID)
}
