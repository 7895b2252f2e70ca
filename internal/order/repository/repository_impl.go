package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/orderdesk/internal/order/domain"
)

type repository struct {
	db *gorm.DB
}

type Params struct {
	fx.In

	DB *gorm.DB
}

func Provide(p Params) domain.Repository {
	return &repository{db: p.DB}
}

func (r *repository) Create(ctx context.Context, tx *gorm.DB, order *domain.Order, lines []domain.OrderLine) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Create(order).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&lines).Error
}

func (r *repository) Get(ctx context.Context, id snowflake.ID) (*domain.Order, []domain.OrderLine, error) {
	var order domain.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}

	var lines []domain.OrderLine
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("id ASC").
		Find(&lines).Error; err != nil {
		return nil, nil, err
	}
	return &order, lines, nil
}

func (r *repository) List(ctx context.Context, distributorID *snowflake.ID) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{})
	if distributorID != nil {
		q = q.Where("distributor_id = ?", *distributorID)
	}

	var orders []domain.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
