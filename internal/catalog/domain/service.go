package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	Search string
	Active *bool
}

type CreateRequest struct {
	SKU                  string         `json:"sku"`
	Name                 string         `json:"name"`
	Description          *string        `json:"description"`
	UnitPrice            int64          `json:"unit_price"`
	PrepaidDiscountRate  float64        `json:"prepaid_discount_rate"`
	CreditDiscountRate   float64        `json:"credit_discount_rate"`
	TaxRate              float64        `json:"tax_rate"`
	AvailableStock       int64          `json:"available_stock"`
	AllocationControlled bool           `json:"allocation_controlled"`
	RemainingAllocation  int64          `json:"remaining_allocation"`
	Metadata             map[string]any `json:"metadata"`
}

type Response struct {
	ID                   string         `json:"id"`
	SKU                  string         `json:"sku"`
	Name                 string         `json:"name"`
	Description          *string        `json:"description,omitempty"`
	UnitPrice            int64          `json:"unit_price"`
	PrepaidDiscountRate  float64        `json:"prepaid_discount_rate"`
	CreditDiscountRate   float64        `json:"credit_discount_rate"`
	TaxRate              float64        `json:"tax_rate"`
	AvailableStock       int64          `json:"available_stock"`
	AllocationControlled bool           `json:"allocation_controlled"`
	RemainingAllocation  int64          `json:"remaining_allocation"`
	Active               bool           `json:"active"`
	Metadata             map[string]any `json:"metadata,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidUnitPrice = errors.New("invalid_unit_price")
	ErrInvalidRate      = errors.New("invalid_rate")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
)
