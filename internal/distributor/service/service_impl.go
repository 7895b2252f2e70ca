package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/orderdesk/internal/distributor/domain"
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
		log:   p.Log.Named("distributor.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, domain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	jurisdiction := strings.ToUpper(strings.TrimSpace(req.Jurisdiction))
	if jurisdiction == "" {
		return nil, domain.ErrInvalidJurisdiction
	}

	now := time.Now().UTC()
	record := &domain.Distributor{
		ID:                 s.genID.Generate(),
		Code:               code,
		Name:               name,
		Jurisdiction:       jurisdiction,
		CreditLimit:        req.CreditLimit,
		OutstandingBalance: req.OutstandingBalance,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	resp := toResponse(record)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	distributors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(distributors))
	for i := range distributors {
		resp = append(resp, toResponse(&distributors[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(record)
	return &resp, nil
}

func (s *Service) CreditPosition(ctx context.Context, id string) (*domain.CreditPosition, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	position := &domain.CreditPosition{
		CreditLimit:        record.CreditLimit,
		OutstandingBalance: record.OutstandingBalance,
		Unlimited:          record.CreditLimit == 0,
	}
	if !position.Unlimited {
		position.Available = record.CreditLimit - record.OutstandingBalance
	}
	return position, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Distributor, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	record, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func toResponse(d *domain.Distributor) domain.Response {
	return domain.Response{
		ID:                 d.ID.String(),
		Code:               d.Code,
		Name:               d.Name,
		Jurisdiction:       d.Jurisdiction,
		CreditLimit:        d.CreditLimit,
		OutstandingBalance: d.OutstandingBalance,
		Active:             d.Active,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}
