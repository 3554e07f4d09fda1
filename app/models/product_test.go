package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func variantProduct() *Product {
	return &Product{
		Name:         "Shirt",
		RegularPrice: decimal.NewFromInt(100),
		Stock:        7,
		Variants: &VariantSchema{
			VariantName:   "color",
			VariantValues: []string{"red", "blue"},
			Combinations: map[string]VariantCombination{
				"red": {Price: decimal.NewFromInt(100), Stock: 5, IsPrimary: true},
				"blue": {
					Price:        decimal.NewFromInt(150),
					Stock:        8,
					DiscountType: DiscountTypePercentage,
					Discount:     decimal.NewFromInt(10),
				},
			},
		},
	}
}

func TestApplyDiscount(t *testing.T) {
	base := decimal.NewFromInt(100)

	assert.True(t, ApplyDiscount(base, DiscountTypeFlat, decimal.NewFromInt(30)).Equal(decimal.NewFromInt(70)))
	assert.True(t, ApplyDiscount(base, DiscountTypePercentage, decimal.NewFromInt(25)).Equal(decimal.NewFromInt(75)))
	assert.True(t, ApplyDiscount(base, DiscountTypeNone, decimal.NewFromInt(30)).Equal(base))

	// Clamped at zero, never negative.
	assert.True(t, ApplyDiscount(base, DiscountTypeFlat, decimal.NewFromInt(130)).IsZero())
}

func TestVariantStockFallback(t *testing.T) {
	p := variantProduct()

	assert.Equal(t, 5, p.VariantStock("red"))
	assert.Equal(t, 8, p.VariantStock("blue"))
	assert.Equal(t, 7, p.VariantStock("green"))
	assert.Equal(t, 7, p.VariantStock(""))

	scalar := &Product{Stock: 3}
	assert.Equal(t, 3, scalar.VariantStock("red"))
}

func TestFinalPriceCombinationDiscountWins(t *testing.T) {
	p := variantProduct()
	p.DiscountType = DiscountTypeFlat
	p.Discount = decimal.NewFromInt(40)

	// Blue carries its own 10 percent; the product's flat 40 does not apply.
	assert.True(t, p.FinalPrice("blue").Equal(decimal.NewFromInt(135)))

	// Red has no combination discount, so the product-level discount applies
	// to the combination price.
	assert.True(t, p.FinalPrice("red").Equal(decimal.NewFromInt(60)))

	// Unknown key falls back to the regular price with the product discount.
	assert.True(t, p.FinalPrice("green").Equal(decimal.NewFromInt(60)))
}

func TestDisplayPriceUsesPrimaryCombination(t *testing.T) {
	p := variantProduct()
	assert.True(t, p.DisplayPrice().Equal(decimal.NewFromInt(100)))

	key, combo, ok := p.PrimaryCombination()
	assert.True(t, ok)
	assert.Equal(t, "red", key)
	assert.Equal(t, 5, combo.Stock)

	scalar := &Product{RegularPrice: decimal.NewFromInt(80)}
	assert.True(t, scalar.DisplayPrice().Equal(decimal.NewFromInt(80)))
}

func TestCampaignRewardFor(t *testing.T) {
	percentage := &Campaign{CommissionType: CommissionTypePercentage, CommissionValue: decimal.NewFromInt(10)}
	assert.True(t, percentage.RewardFor(decimal.NewFromInt(100), 3).Equal(decimal.NewFromInt(30)))

	flat := &Campaign{CommissionType: CommissionTypeFlat, CommissionValue: decimal.NewFromInt(5)}
	assert.True(t, flat.RewardFor(decimal.NewFromInt(100), 3).Equal(decimal.NewFromInt(15)))
}

func TestOrderCalculateTotal(t *testing.T) {
	o := &Order{
		SubTotal:     decimal.NewFromInt(300),
		ShippingCost: decimal.NewFromInt(20),
		TaxAmount:    decimal.NewFromInt(39),
	}
	assert.True(t, o.CalculateTotal().Equal(decimal.NewFromInt(359)))
	assert.True(t, o.GrandTotal.Equal(decimal.NewFromInt(359)))
}

func TestOrderIsFulfillable(t *testing.T) {
	o := &Order{OrderStatus: OrderStatusDelivered, PaymentStatus: PaymentStatusPaid}
	assert.True(t, o.IsFulfillable())

	o.PaymentStatus = PaymentStatusPending
	assert.False(t, o.IsFulfillable())

	o.PaymentStatus = PaymentStatusPaid
	o.OrderStatus = OrderStatusShipped
	assert.False(t, o.IsFulfillable())
}
