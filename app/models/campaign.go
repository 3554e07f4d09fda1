package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CommissionTypeFlat       = "flat"
	CommissionTypePercentage = "percentage"
)

// Campaign is a product-scoped reward definition for the influencer program.
// Flat pays CommissionValue per unit sold; percentage pays that share of the
// unit price per unit.
type Campaign struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name            string          `gorm:"size:255;not null"`
	Description     string          `gorm:"type:text"`
	ProductID       string          `gorm:"size:36;not null;index"`
	Product         Product         `gorm:"foreignKey:ProductID"`
	CommissionType  string          `gorm:"size:20;not null;default:'percentage'"`
	CommissionValue decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0.00"`
	VideoLink       string          `gorm:"size:255"`
	IsActive        bool            `gorm:"default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// RewardFor computes the campaign payout for a quantity sold at the given
// unit price. Percentage applies to the unit price; flat is a per-unit amount.
func (c *Campaign) RewardFor(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	quantity := decimal.NewFromInt(int64(qty))
	if c.CommissionType == CommissionTypePercentage {
		return unitPrice.Mul(c.CommissionValue).Div(decimal.NewFromInt(100)).Mul(quantity)
	}
	return c.CommissionValue.Mul(quantity)
}
