package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Distributor is a buying party on the portal. CreditLimit 0 means the
// distributor is not credit-capped; OutstandingBalance is maintained by the
// billing back office and read-only here.
type Distributor struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Code string       `gorm:"type:text;not null;uniqueIndex"`
	Name string       `gorm:"type:text;not null"`

	Jurisdiction string `gorm:"type:text;not null"`

	CreditLimit        int64 `gorm:"not null;default:0"`
	OutstandingBalance int64 `gorm:"not null;default:0"`

	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Distributor) TableName() string { return "distributors" }
