package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, slab *Slab) error
	ListActiveByProduct(ctx context.Context, productID snowflake.ID) ([]Slab, error)
}
