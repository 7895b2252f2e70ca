package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id snowflake.ID) (*Product, error)
	List(ctx context.Context, filter ListRequest) ([]Product, error)

	// DecrementOnSubmit reduces stock and, for allocation-controlled
	// products, the remaining allocation inside the caller's transaction.
	DecrementOnSubmit(ctx context.Context, tx *gorm.DB, id snowflake.ID, quantity int64, allocationControlled bool) error
}
