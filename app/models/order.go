package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID    string    `gorm:"size:36;index"`
	User      User      `gorm:"foreignKey:UserID"`
	OrderCode string    `gorm:"type:varchar(255);unique;not null" json:"order_code"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`

	PaymentStatus string `gorm:"size:20;default:'pending'"`
	OrderStatus   string `gorm:"size:20;default:'pending'"`

	OrderItems   []OrderItem
	SubTotal     decimal.Decimal `gorm:"type:decimal(16,2);"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(16,2);"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(16,2);"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(16,2);"`

	BillingAddressID  string  `gorm:"size:36"`
	BillingAddress    Address `gorm:"foreignKey:BillingAddressID;references:ID"`
	ShippingAddressID string  `gorm:"size:36"`
	ShippingAddress   Address `gorm:"foreignKey:ShippingAddressID;references:ID"`

	MidtransTransactionID string `gorm:"size:255;index"`
	MidtransPaymentURL    string `gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// CalculateTotal recomputes the grand total from the component amounts.
// Invariant: total = sub_total + shipping + tax.
func (o *Order) CalculateTotal() decimal.Decimal {
	o.GrandTotal = o.SubTotal.Add(o.ShippingCost).Add(o.TaxAmount)
	return o.GrandTotal
}

// IsFulfillable reports whether the order sits in the one state combination
// that triggers fulfillment side effects.
func (o *Order) IsFulfillable() bool {
	return o.OrderStatus == OrderStatusDelivered && o.PaymentStatus == PaymentStatusPaid
}
