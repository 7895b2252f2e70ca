package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/orderdesk/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.UnitPrice < 0 {
		return nil, domain.ErrInvalidUnitPrice
	}
	if !validRate(req.PrepaidDiscountRate) || !validRate(req.CreditDiscountRate) || !validRate(req.TaxRate) {
		return nil, domain.ErrInvalidRate
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		sku = slug.Make(name)
	}

	now := time.Now().UTC()
	record := &domain.Product{
		ID:                   s.genID.Generate(),
		SKU:                  sku,
		Name:                 name,
		Description:          req.Description,
		UnitPrice:            req.UnitPrice,
		PrepaidDiscountRate:  req.PrepaidDiscountRate,
		CreditDiscountRate:   req.CreditDiscountRate,
		TaxRate:              req.TaxRate,
		AvailableStock:       req.AvailableStock,
		AllocationControlled: req.AllocationControlled,
		RemainingAllocation:  req.RemainingAllocation,
		Active:               true,
		Metadata:             datatypes.JSONMap(req.Metadata),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	resp := toResponse(record)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	products, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(products))
	for i := range products {
		resp = append(resp, toResponse(&products[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(product)
	return &resp, nil
}

func toResponse(p *domain.Product) domain.Response {
	return domain.Response{
		ID:                   p.ID.String(),
		SKU:                  p.SKU,
		Name:                 p.Name,
		Description:          p.Description,
		UnitPrice:            p.UnitPrice,
		PrepaidDiscountRate:  p.PrepaidDiscountRate,
		CreditDiscountRate:   p.CreditDiscountRate,
		TaxRate:              p.TaxRate,
		AvailableStock:       p.AvailableStock,
		AllocationControlled: p.AllocationControlled,
		RemainingAllocation:  p.RemainingAllocation,
		Active:               p.Active,
		Metadata:             p.Metadata,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func validRate(rate float64) bool {
	return rate >= 0 && rate <= 100
}
