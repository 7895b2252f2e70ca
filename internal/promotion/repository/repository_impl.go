package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/orderdesk/internal/promotion/domain"
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

func (r *repository) Create(ctx context.Context, slab *domain.Slab) error {
	return r.db.WithContext(ctx).Create(slab).Error
}

func (r *repository) ListActiveByProduct(ctx context.Context, productID snowflake.ID) ([]domain.Slab, error) {
	var slabs []domain.Slab
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND active = ?", productID, true).
		Find(&slabs).Error
	return slabs, err
}
