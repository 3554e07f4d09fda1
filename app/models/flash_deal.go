package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FlashDeal is a time-windowed discount override. While a deal is running it
// replaces both the product-level and variant-level discounts in final price
// computation; discounts never stack.
type FlashDeal struct {
	ID           string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Title        string          `gorm:"size:255;not null"`
	DiscountType string          `gorm:"size:20;not null"`
	Discount     decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	StartTime    time.Time       `gorm:"not null"`
	EndTime      time.Time       `gorm:"not null"`
	IsActive     bool            `gorm:"default:true"`

	Products []Product `gorm:"many2many:flash_deal_products;"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (f *FlashDeal) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}

// IsRunning reports whether the deal applies at the given instant.
func (f *FlashDeal) IsRunning(now time.Time) bool {
	return f.IsActive && !now.Before(f.StartTime) && !now.After(f.EndTime)
}
