package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	CreditPosition(ctx context.Context, id string) (*CreditPosition, error)
}

type CreateRequest struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	Jurisdiction       string `json:"jurisdiction"`
	CreditLimit        int64  `json:"credit_limit"`
	OutstandingBalance int64  `json:"outstanding_balance"`
}

type Response struct {
	ID                 string    `json:"id"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	Jurisdiction       string    `json:"jurisdiction"`
	CreditLimit        int64     `json:"credit_limit"`
	OutstandingBalance int64     `json:"outstanding_balance"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreditPosition is the distributor's current credit snapshot. Available is
// meaningful only when Unlimited is false.
type CreditPosition struct {
	CreditLimit        int64 `json:"credit_limit"`
	OutstandingBalance int64 `json:"outstanding_balance"`
	Available          int64 `json:"available"`
	Unlimited          bool  `json:"unlimited"`
}

var (
	ErrInvalidCode         = errors.New("invalid_code")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidJurisdiction = errors.New("invalid_jurisdiction")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
