package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Product is one orderable catalog item. Unit price is minor currency
// units; the two discount rates are the pre-negotiated values the pricing
// engine selects between per payment method.
type Product struct {
	ID  snowflake.ID `gorm:"primaryKey"`
	SKU string       `gorm:"type:text;not null;uniqueIndex"`

	Name        string  `gorm:"type:text;not null"`
	Description *string `gorm:"type:text"`

	UnitPrice           int64   `gorm:"not null"`
	PrepaidDiscountRate float64 `gorm:"not null;default:0"`
	CreditDiscountRate  float64 `gorm:"not null;default:0"`
	TaxRate             float64 `gorm:"not null;default:0"`

	AvailableStock       int64 `gorm:"not null;default:0"`
	AllocationControlled bool  `gorm:"not null;default:false"`
	RemainingAllocation  int64 `gorm:"not null;default:0"`

	Active   bool              `gorm:"not null;default:true"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }
