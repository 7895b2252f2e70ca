package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/orderdesk/internal/distributor/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB *gorm.DB
}

type repository struct {
	db *gorm.DB
}

func Provide(p Params) domain.Repository {
	return &repository{db: p.DB}
}

func (r *repository) Create(ctx context.Context, distributor *domain.Distributor) error {
	return r.db.WithContext(ctx).Create(distributor).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Distributor, error) {
	var distributor domain.Distributor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&distributor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &distributor, nil
}

func (r *repository) List(ctx context.Context) ([]domain.Distributor, error) {
	var distributors []domain.Distributor
	err := r.db.WithContext(ctx).Order("name ASC").Find(&distributors).Error
	return distributors, err
}
