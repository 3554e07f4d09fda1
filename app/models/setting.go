package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CommissionModeGlobal   = "global"
	CommissionModeCampaign = "campaign"
)

// SettingID is the fixed primary key of the single settings row. Pinning the
// key makes the singleton a storage-level invariant instead of a convention.
const SettingID uint = 1

// Setting holds the process-wide commerce configuration: the global sale
// commission, the active commission mode, stock thresholds and withdrawal
// bounds. Access goes through SettingRepository.Get, which lazily creates
// the row with defaults on first use.
type Setting struct {
	ID                   uint            `gorm:"primaryKey"`
	SaleCommission       decimal.Decimal `gorm:"type:decimal(16,2);default:0.00"`
	CommissionMode       string          `gorm:"size:20;not null;default:'global'"`
	LowStockThreshold    int             `gorm:"default:10"`
	IsWithdrawal         bool            `gorm:"default:false"`
	MinWithdrawal        decimal.Decimal `gorm:"type:decimal(16,2);default:0.00"`
	MaxWithdrawal        decimal.Decimal `gorm:"type:decimal(16,2);default:0.00"`
	ActiveReferralSystem bool            `gorm:"default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (s *Setting) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = SettingID
	return
}
