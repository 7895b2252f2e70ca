package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Allocate computes the free-goods entitlement for a product at the
	// requested quantity from the product's active slabs.
	Allocate(ctx context.Context, productID string, quantity int64) (*Allocation, error)
	ListSlabs(ctx context.Context, productID string) ([]Slab, error)
	CreateSlab(ctx context.Context, req CreateSlabRequest) (*Slab, error)
}

type CreateSlabRequest struct {
	ProductID         string `json:"product_id"`
	ThresholdQuantity int64  `json:"threshold_quantity"`
	FreeQuantity      int64  `json:"free_quantity"`
}

var (
	ErrInvalidProduct   = errors.New("invalid_product")
	ErrInvalidThreshold = errors.New("invalid_threshold_quantity")
	ErrInvalidFreeQty   = errors.New("invalid_free_quantity")
)
