package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/orderdesk/internal/promotion/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("promotion.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Allocate(ctx context.Context, productID string, quantity int64) (*domain.Allocation, error) {
	id, err := parseID(productID)
	if err != nil {
		return nil, domain.ErrInvalidProduct
	}

	slabs, err := s.repo.ListActiveByProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	allocation := allocateGreedy(slabs, quantity)
	s.log.Debug("slab allocation computed",
		zap.String("product_id", productID),
		zap.Int64("quantity", quantity),
		zap.Int64("free_units", allocation.TotalFreeUnits),
	)
	return &allocation, nil
}

func (s *Service) ListSlabs(ctx context.Context, productID string) ([]domain.Slab, error) {
	id, err := parseID(productID)
	if err != nil {
		return nil, domain.ErrInvalidProduct
	}
	return s.repo.ListActiveByProduct(ctx, id)
}

func (s *Service) CreateSlab(ctx context.Context, req domain.CreateSlabRequest) (*domain.Slab, error) {
	productID, err := parseID(req.ProductID)
	if err != nil {
		return nil, domain.ErrInvalidProduct
	}
	if req.ThresholdQuantity <= 0 {
		return nil, domain.ErrInvalidThreshold
	}
	if req.FreeQuantity < 0 {
		return nil, domain.ErrInvalidFreeQty
	}

	now := time.Now().UTC()
	slab := &domain.Slab{
		ID:                s.genID.Generate(),
		ProductID:         productID,
		ThresholdQuantity: req.ThresholdQuantity,
		FreeQuantity:      req.FreeQuantity,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, slab); err != nil {
		return nil, err
	}
	return slab, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
