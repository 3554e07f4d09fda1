package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

const (
	KycStatusNone     = ""
	KycStatusPending  = "pending"
	KycStatusApproved = "approved"
	KycStatusRejected = "rejected"
)

type User struct {
	ID       string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name     string `gorm:"size:255;not null"`
	Email    string `gorm:"size:100;not null;uniqueIndex"`
	Phone    string `gorm:"size:20"`
	Password string `gorm:"size:255;not null"`
	Role     string `gorm:"size:20;default:'customer';not null"`

	// Wallet and referral fields. Balance is a cached running total; every
	// mutation must be paired with a Transaction row (see WalletService).
	Balance         decimal.Decimal `gorm:"type:decimal(16,2);default:0.00"`
	EarnCode        *string         `gorm:"size:50;uniqueIndex;null"`
	IsInfluencer    bool            `gorm:"default:false"`
	KycStatus       string          `gorm:"size:20;default:''"`
	KycRejectReason string          `gorm:"size:255"`

	TiktokLink    string `gorm:"size:255"`
	InstagramLink string `gorm:"size:255"`
	YoutubeLink   string `gorm:"size:255"`

	Addresses []Address `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// CanEarn reports whether the user qualifies for the earn/wallet features:
// an influencer whose KYC has been approved.
func (u *User) CanEarn() bool {
	return u.IsInfluencer && u.KycStatus == KycStatusApproved
}
