package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIn  = "in"
	TransactionTypeOut = "out"
)

const (
	TransactionStatusPending = "pending"
	TransactionStatusSuccess = "success"
	TransactionStatusFailed  = "failed"
)

// Effect types distinguishing why a ledger row exists. Together with
// OrderItemID they form the structured idempotency key for per-item effects.
const (
	EffectCommission        = "commission"
	EffectWithdrawalRequest = "withdrawal_request"
	EffectWithdrawalRefund  = "withdrawal_refund"
	EffectManualAdjustment  = "manual_adjustment"
)

// Transaction is one append-only balance ledger entry. Rows are never
// updated or deleted; corrections are compensating entries.
type Transaction struct {
	ID     string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID string          `gorm:"size:36;not null;index"`
	User   User            `gorm:"foreignKey:UserID"`
	Amount decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Type   string          `gorm:"size:10;not null"`
	Status string          `gorm:"size:20;not null;default:'success'"`

	// OrderItemID + EffectType carry a unique index so a commission can be
	// credited at most once per order item, enforced by the storage layer.
	// Nil OrderItemID rows (withdrawals, manual adjustments) are exempt.
	OrderItemID *string `gorm:"size:36;index:idx_transactions_effect,unique"`
	EffectType  string  `gorm:"size:30;index:idx_transactions_effect,unique"`

	Remarks string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}
