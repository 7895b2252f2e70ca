// Package domain contains promotion slab definitions and allocation results.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Slab is one quantity tier of a "buy N get M free" promotion. Slabs carry
// no ordering guarantee in storage; the allocator sorts them itself.
type Slab struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	ProductID snowflake.ID `gorm:"not null;index"`

	ThresholdQuantity int64 `gorm:"not null"`
	FreeQuantity      int64 `gorm:"not null"`

	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Slab) TableName() string { return "promotion_slabs" }

// AllocationEntry records how often one slab fired and what it granted.
type AllocationEntry struct {
	ThresholdQuantity int64 `json:"threshold_quantity"`
	FreeQuantity      int64 `json:"free_quantity"`
	TimesApplied      int64 `json:"times_applied"`
	FreeUnits         int64 `json:"free_units"`
}

// Allocation is the free-goods entitlement for one ordered quantity.
type Allocation struct {
	TotalFreeUnits int64             `json:"total_free_units"`
	Breakdown      []AllocationEntry `json:"breakdown"`
}
