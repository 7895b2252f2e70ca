package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type OrderStatus string

const (
	OrderStatusSubmitted OrderStatus = "submitted"
)

// Order is a submitted order header with denormalized totals. Derived
// amounts are written once at submit time from the pricing pass that was
// validated; they are never recomputed from the rows.
type Order struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	DistributorID snowflake.ID `gorm:"not null;index"`

	PaymentMethod        string `gorm:"type:text;not null"`
	SellerJurisdiction   string `gorm:"type:text;not null"`
	DeliveryJurisdiction string `gorm:"type:text"`
	TaxChannel           string `gorm:"type:text;not null"`

	Quantity            int64 `gorm:"not null"`
	Subtotal            int64 `gorm:"not null"`
	DiscountAmount      int64 `gorm:"not null"`
	TaxableAmount       int64 `gorm:"not null"`
	LocalTaxAAmount     int64 `gorm:"not null"`
	LocalTaxBAmount     int64 `gorm:"not null"`
	IntegratedTaxAmount int64 `gorm:"not null"`
	TaxAmount           int64 `gorm:"not null"`
	NetAmount           int64 `gorm:"not null"`

	Status OrderStatus `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Order) TableName() string { return "orders" }

// OrderLine is one submitted line with its derived monetary fields
// denormalized at submit time.
type OrderLine struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	OrderID   snowflake.ID `gorm:"not null;index"`
	ProductID snowflake.ID `gorm:"not null;index"`

	SKU         string `gorm:"type:text;not null"`
	ProductName string `gorm:"type:text;not null"`

	Quantity       int64   `gorm:"not null"`
	UnitPrice      int64   `gorm:"not null"`
	DiscountRate   float64 `gorm:"not null"`
	NominalTaxRate float64 `gorm:"not null"`

	Subtotal            int64 `gorm:"not null"`
	DiscountAmount      int64 `gorm:"not null"`
	TaxableAmount       int64 `gorm:"not null"`
	LocalTaxAAmount     int64 `gorm:"not null"`
	LocalTaxBAmount     int64 `gorm:"not null"`
	IntegratedTaxAmount int64 `gorm:"not null"`
	TaxAmount           int64 `gorm:"not null"`
	LineTotal           int64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (OrderLine) TableName() string { return "order_lines" }
