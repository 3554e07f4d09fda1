package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

// Withdrawal is a two-state request: pending -> approved pays out the amount
// pre-debited at request time; pending -> rejected compensates by crediting
// the amount back.
type Withdrawal struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID        string          `gorm:"size:36;not null;index"`
	User          User            `gorm:"foreignKey:UserID"`
	Amount        decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Status        string          `gorm:"size:20;not null;default:'pending'"`
	PaymentStatus string          `gorm:"size:20;not null;default:'pending'"`
	Remarks       string          `gorm:"size:255"`
	RejectReason  string          `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (w *Withdrawal) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return
}
