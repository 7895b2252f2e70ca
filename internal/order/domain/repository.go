package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, tx *gorm.DB, order *Order, lines []OrderLine) error
	Get(ctx context.Context, id snowflake.ID) (*Order, []OrderLine, error)
	List(ctx context.Context, distributorID *snowflake.ID) ([]Order, error)
}
