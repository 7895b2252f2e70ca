package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/orderdesk/internal/catalog/domain"
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

func (r *repository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, filter domain.ListRequest) ([]domain.Product, error) {
	stmt := r.db.WithContext(ctx).Model(&domain.Product{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		stmt = stmt.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}

	var products []domain.Product
	err := stmt.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *repository) DecrementOnSubmit(ctx context.Context, tx *gorm.DB, id snowflake.ID, quantity int64, allocationControlled bool) error {
	updates := map[string]any{
		"available_stock": gorm.Expr("available_stock - ?", quantity),
	}
	if allocationControlled {
		updates["remaining_allocation"] = gorm.Expr("remaining_allocation - ?", quantity)
	}

	result := tx.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
