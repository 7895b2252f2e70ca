package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/smallbiznis/orderdesk/internal/catalog/domain"
	"github.com/smallbiznis/orderdesk/internal/clock"
	"github.com/smallbiznis/orderdesk/internal/config"
	distributordomain "github.com/smallbiznis/orderdesk/internal/distributor/domain"
	"github.com/smallbiznis/orderdesk/internal/order/domain"
	validationdomain "github.com/smallbiznis/orderdesk/internal/ordervalidation/domain"
	pricingdomain "github.com/smallbiznis/orderdesk/internal/pricing/domain"
	promotiondomain "github.com/smallbiznis/orderdesk/internal/promotion/domain"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Node        *snowflake.Node
	Clock       clock.Clock
	Policy      *config.OrderPolicyHolder
	Repo        domain.Repository
	Catalog     catalogdomain.Repository
	Distributor distributordomain.Repository
	Engine      pricingdomain.Engine
	Validator   validationdomain.Service
	Promotions  promotiondomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	policy      *config.OrderPolicyHolder
	repo        domain.Repository
	catalog     catalogdomain.Repository
	distributor distributordomain.Repository
	engine      pricingdomain.Engine
	validator   validationdomain.Service
	promotions  promotiondomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("order.service"),
		genID:       p.Node,
		clock:       p.Clock,
		policy:      p.Policy,
		repo:        p.Repo,
		catalog:     p.Catalog,
		distributor: p.Distributor,
		engine:      p.Engine,
		validator:   p.Validator,
		promotions:  p.Promotions,
	}
}

// draft is a quote request resolved against the catalog: one product row
// and one priced line per request line, in request order.
type draft struct {
	distributor *distributordomain.Distributor
	method      pricingdomain.PaymentMethod
	orderCtx    pricingdomain.OrderContext
	channel     pricingdomain.TaxChannel
	products    []catalogdomain.Product
	lines       []pricingdomain.OrderLine
}

func (s *Service) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error) {
	d, err := s.buildDraft(ctx, req)
	if err != nil {
		return nil, err
	}
	quote, err := s.priceAndValidate(ctx, d)
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.SubmitResponse, error) {
	d, err := s.buildDraft(ctx, req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	if req.ClampToStock {
		d = clampDraft(d)
		if len(d.lines) == 0 {
			return nil, domain.ErrEmptyOrder
		}
	}

	quote, err := s.priceAndValidate(ctx, d)
	if err != nil {
		return nil, err
	}

	if !quote.Validation.CanProceed || len(quote.Validation.StockShortages) > 0 {
		s.log.Info("order submission blocked",
			zap.String("distributor_id", quote.DistributorID),
			zap.Int("blocking", len(quote.Validation.Blocking)),
			zap.Int("stock_shortages", len(quote.Validation.StockShortages)),
		)
		return &domain.SubmitResponse{Submitted: false, Quote: *quote}, nil
	}

	order, lines := s.buildRecords(d, quote)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, order, lines); err != nil {
			return err
		}
		for i, product := range d.products {
			if err := s.catalog.DecrementOnSubmit(ctx, tx, product.ID, d.lines[i].Quantity, product.AllocationControlled); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order submitted",
		zap.String("order_id", order.ID.String()),
		zap.String("distributor_id", quote.DistributorID),
		zap.Int64("net_amount", order.NetAmount),
	)

	return &domain.SubmitResponse{
		Submitted: true,
		OrderID:   order.ID.String(),
		Quote:     *quote,
	}, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.OrderView, error) {
	order, lines, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.OrderView{Order: *order, Lines: lines}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Order, error) {
	var distributorID *snowflake.ID
	if strings.TrimSpace(req.DistributorID) != "" {
		id, err := snowflake.ParseString(strings.TrimSpace(req.DistributorID))
		if err != nil {
			return nil, domain.ErrInvalidDistributor
		}
		distributorID = &id
	}
	return s.repo.List(ctx, distributorID)
}

// buildDraft resolves the request against the distributor and catalog
// stores. Pricing has not run yet; the returned lines carry catalog inputs
// only.
func (s *Service) buildDraft(ctx context.Context, req domain.QuoteRequest) (*draft, error) {
	method, ok := pricingdomain.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, domain.ErrInvalidPaymentMethod
	}
	if len(req.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	distributorID, err := snowflake.ParseString(strings.TrimSpace(req.DistributorID))
	if err != nil {
		return nil, domain.ErrInvalidDistributor
	}
	distributor, err := s.distributor.FindByID(ctx, distributorID)
	if err != nil {
		return nil, err
	}
	if distributor == nil {
		return nil, domain.ErrInvalidDistributor
	}

	delivery := pricingdomain.Jurisdiction(strings.TrimSpace(req.DeliveryJurisdiction))
	if delivery == "" {
		delivery = pricingdomain.Jurisdiction(distributor.Jurisdiction)
	}

	policy := s.policy.Get()
	orderCtx := pricingdomain.OrderContext{
		PaymentMethod:        method,
		SellerJurisdiction:   pricingdomain.Jurisdiction(policy.SellerJurisdiction),
		DeliveryJurisdiction: delivery,
	}

	products := make([]catalogdomain.Product, 0, len(req.Lines))
	lines := make([]pricingdomain.OrderLine, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		if lineReq.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		productID, err := snowflake.ParseString(strings.TrimSpace(lineReq.ProductID))
		if err != nil {
			return nil, domain.ErrUnknownProduct
		}
		product, err := s.catalog.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, domain.ErrUnknownProduct
		}

		products = append(products, *product)
		lines = append(lines, pricingdomain.OrderLine{
			ProductID:           product.ID,
			Quantity:            lineReq.Quantity,
			UnitPrice:           product.UnitPrice,
			PrepaidDiscountRate: product.PrepaidDiscountRate,
			CreditDiscountRate:  product.CreditDiscountRate,
			NominalTaxRate:      product.TaxRate,
		})
	}

	return &draft{
		distributor: distributor,
		method:      method,
		orderCtx:    orderCtx,
		channel:     s.engine.ResolveTaxChannel(orderCtx.SellerJurisdiction, orderCtx.DeliveryJurisdiction),
		products:    products,
		lines:       lines,
	}, nil
}

// priceAndValidate runs the full pricing pass, the promotional allocation
// per line, and one validation pass over the result.
func (s *Service) priceAndValidate(ctx context.Context, d *draft) (*domain.Quote, error) {
	priced := s.engine.Reprice(d.lines, d.orderCtx)
	totals := s.engine.Aggregate(priced)

	quoteLines := make([]domain.QuoteLine, 0, len(priced))
	checks := make([]validationdomain.LineCheck, 0, len(priced))
	for i, line := range priced {
		product := d.products[i]

		allocation, err := s.promotions.Allocate(ctx, product.ID.String(), line.Quantity)
		if err != nil {
			return nil, err
		}

		quoteLines = append(quoteLines, domain.QuoteLine{
			ProductID:    product.ID.String(),
			SKU:          product.SKU,
			ProductName:  product.Name,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			DiscountRate: line.DiscountRate,

			Subtotal:            line.Subtotal,
			DiscountAmount:      line.DiscountAmount,
			TaxableAmount:       line.TaxableAmount,
			LocalTaxAAmount:     line.LocalTaxAAmount,
			LocalTaxBAmount:     line.LocalTaxBAmount,
			IntegratedTaxAmount: line.IntegratedTaxAmount,
			TaxAmount:           line.TaxAmount,
			LineTotal:           line.LineTotal,

			Promotion: *allocation,
		})
		checks = append(checks, validationdomain.LineCheck{
			ProductID:            product.ID,
			ProductName:          product.Name,
			Quantity:             line.Quantity,
			AllocationControlled: product.AllocationControlled,
			RemainingAllocation:  product.RemainingAllocation,
			AvailableStock:       product.AvailableStock,
		})
	}

	profile := validationdomain.CreditProfile{
		CreditLimit:        d.distributor.CreditLimit,
		OutstandingBalance: d.distributor.OutstandingBalance,
	}
	result := s.validator.ValidateOrder(profile, checks, totals.NetAmount, d.method)

	return &domain.Quote{
		DistributorID:        d.distributor.ID.String(),
		PaymentMethod:        string(d.method),
		SellerJurisdiction:   string(d.orderCtx.SellerJurisdiction),
		DeliveryJurisdiction: string(d.orderCtx.DeliveryJurisdiction),
		TaxChannel:           d.channel,
		Lines:                quoteLines,
		Totals:               totals,
		Validation:           result,
	}, nil
}

// clampDraft caps each line at the product's available stock and drops
// lines whose stock is exhausted. Products stay aligned with lines.
func clampDraft(d *draft) *draft {
	clamped := &draft{
		distributor: d.distributor,
		method:      d.method,
		orderCtx:    d.orderCtx,
		channel:     d.channel,
	}
	for i, line := range d.lines {
		product := d.products[i]
		if product.AvailableStock <= 0 {
			continue
		}
		if line.Quantity > product.AvailableStock {
			line.Quantity = product.AvailableStock
		}
		clamped.products = append(clamped.products, product)
		clamped.lines = append(clamped.lines, line)
	}
	return clamped
}

func (s *Service) buildRecords(d *draft, quote *domain.Quote) (*domain.Order, []domain.OrderLine) {
	now := s.clock.Now()
	order := &domain.Order{
		ID:            s.genID.Generate(),
		DistributorID: d.distributor.ID,

		PaymentMethod:        quote.PaymentMethod,
		SellerJurisdiction:   quote.SellerJurisdiction,
		DeliveryJurisdiction: quote.DeliveryJurisdiction,
		TaxChannel:           string(quote.TaxChannel),

		Quantity:            quote.Totals.Quantity,
		Subtotal:            quote.Totals.Subtotal,
		DiscountAmount:      quote.Totals.DiscountAmount,
		TaxableAmount:       quote.Totals.TaxableAmount,
		LocalTaxAAmount:     quote.Totals.LocalTaxAAmount,
		LocalTaxBAmount:     quote.Totals.LocalTaxBAmount,
		IntegratedTaxAmount: quote.Totals.IntegratedTaxAmount,
		TaxAmount:           quote.Totals.TaxAmount,
		NetAmount:           quote.Totals.NetAmount,

		Status:    domain.OrderStatusSubmitted,
		CreatedAt: now,
	}

	lines := make([]domain.OrderLine, 0, len(quote.Lines))
	for i, ql := range quote.Lines {
		product := d.products[i]
		lines = append(lines, domain.OrderLine{
			ID:        s.genID.Generate(),
			OrderID:   order.ID,
			ProductID: product.ID,

			SKU:         ql.SKU,
			ProductName: ql.ProductName,

			Quantity:       ql.Quantity,
			UnitPrice:      ql.UnitPrice,
			DiscountRate:   ql.DiscountRate,
			NominalTaxRate: product.TaxRate,

			Subtotal:            ql.Subtotal,
			DiscountAmount:      ql.DiscountAmount,
			TaxableAmount:       ql.TaxableAmount,
			LocalTaxAAmount:     ql.LocalTaxAAmount,
			LocalTaxBAmount:     ql.LocalTaxBAmount,
			IntegratedTaxAmount: ql.IntegratedTaxAmount,
			TaxAmount:           ql.TaxAmount,
			LineTotal:           ql.LineTotal,

			CreatedAt: now,
		})
	}
	return order, lines
}
