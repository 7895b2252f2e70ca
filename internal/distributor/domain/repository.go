package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, distributor *Distributor) error
	FindByID(ctx context.Context, id snowflake.ID) (*Distributor, error)
	List(ctx context.Context) ([]Distributor, error)
}
