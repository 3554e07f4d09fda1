package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID          string          `gorm:"primaryKey;type:varchar(36);not null;uniqueIndex" json:"id"`
	OrderID     string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	Order       Order           `gorm:"foreignKey:OrderID;references:ID"`
	ProductID   string          `gorm:"type:varchar(36);not null;index" json:"product_id"`
	Product     Product         `gorm:"foreignKey:ProductID;references:ID"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductSku  string          `gorm:"type:varchar(100)" json:"product_sku"`
	VariantKey  string          `gorm:"type:varchar(255)" json:"variant_key"`
	Qty         int             `gorm:"not null" json:"qty"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Total       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`

	// Referral attribution snapshotted at purchase time. EarnCode may point
	// at a user that no longer qualifies; commission processing skips those.
	EarnCode   string    `gorm:"size:50;index" json:"earn_code"`
	CampaignID *string   `gorm:"size:36;index" json:"campaign_id,omitempty"`
	Campaign   *Campaign `gorm:"foreignKey:CampaignID;references:ID"`

	// StockDeducted guards stock-side effects per item, independent of the
	// order-level delivered check.
	StockDeducted bool `gorm:"default:false" json:"stock_deducted"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

func (oi *OrderItem) BeforeSave(tx *gorm.DB) (err error) {
	oi.Total = oi.Price.Mul(decimal.NewFromInt(int64(oi.Qty)))
	return
}
