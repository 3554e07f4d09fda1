package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DiscountTypeNone       = ""
	DiscountTypeFlat       = "flat"
	DiscountTypePercentage = "percentage"
)

// VariantCombination holds the price/stock overrides for one concrete choice
// of product options, keyed by a combination string such as "red/xl".
type VariantCombination struct {
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	IsPrimary    bool            `json:"is_primary"`
	DiscountType string          `json:"discount_type"`
	Discount     decimal.Decimal `json:"discount"`
}

// VariantSchema describes a product's option axis and its combinations.
// Exactly one combination is expected to be marked primary; the primary
// combination drives the displayed price for the product.
type VariantSchema struct {
	VariantName   string                        `json:"variant_name"`
	VariantValues []string                      `json:"variant_values"`
	Combinations  map[string]VariantCombination `json:"combinations"`
}

type Product struct {
	ID               string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name             string          `gorm:"size:255;not null"`
	Slug             string          `gorm:"size:255;not null;uniqueIndex"`
	Sku              string          `gorm:"size:100;uniqueIndex"`
	ShortDescription string          `gorm:"type:text"`
	LongDescription  string          `gorm:"type:text"`
	RegularPrice     decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	DiscountType     string          `gorm:"size:20"`
	Discount         decimal.Decimal `gorm:"type:decimal(16,2);default:0.00"`

	// Stock is the scalar quantity. For variant-bearing products it acts as
	// the fallback used whenever a supplied combination key does not exist
	// in the schema; per-combination quantities live inside Variants.
	Stock int `gorm:"not null;default:0"`

	Variants *VariantSchema `gorm:"serializer:json"`

	IsActive   bool `gorm:"default:true"`
	IsFeatured bool `gorm:"default:false"`

	Categories    []Category `gorm:"many2many:product_categories;"`
	ProductImages []ProductImage

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// HasVariants reports whether the product carries a usable variant schema.
func (p *Product) HasVariants() bool {
	return p.Variants != nil && len(p.Variants.Combinations) > 0
}

// Combination looks up one variant combination. The second return is false
// when the key is empty or absent from the schema; callers fall back to the
// scalar fields in that case.
func (p *Product) Combination(variantKey string) (VariantCombination, bool) {
	if variantKey == "" || !p.HasVariants() {
		return VariantCombination{}, false
	}
	combo, ok := p.Variants.Combinations[variantKey]
	return combo, ok
}

// PrimaryCombination returns the combination marked primary, if any.
func (p *Product) PrimaryCombination() (string, VariantCombination, bool) {
	if !p.HasVariants() {
		return "", VariantCombination{}, false
	}
	for key, combo := range p.Variants.Combinations {
		if combo.IsPrimary {
			return key, combo, true
		}
	}
	return "", VariantCombination{}, false
}

// VariantStock returns the quantity tracked for the given combination key,
// falling back to the scalar stock when the key is missing. An unknown key
// is not an error; order items store empty/stale keys and depend on this.
func (p *Product) VariantStock(variantKey string) int {
	if combo, ok := p.Combination(variantKey); ok {
		return combo.Stock
	}
	return p.Stock
}

// BasePrice returns the undiscounted price for the given combination key,
// falling back to the regular price.
func (p *Product) BasePrice(variantKey string) decimal.Decimal {
	if combo, ok := p.Combination(variantKey); ok {
		return combo.Price
	}
	return p.RegularPrice
}

// FinalPrice computes the sell price after the product's own discount. When
// the combination carries its own discount it takes precedence over the
// product-level one. Flash deal overrides are layered on top of this by
// PricingService, never here.
func (p *Product) FinalPrice(variantKey string) decimal.Decimal {
	base := p.BasePrice(variantKey)
	discountType := p.DiscountType
	discount := p.Discount
	if combo, ok := p.Combination(variantKey); ok && combo.DiscountType != DiscountTypeNone {
		discountType = combo.DiscountType
		discount = combo.Discount
	}
	return ApplyDiscount(base, discountType, discount)
}

// DisplayPrice is the storefront list price: the primary combination's final
// price for variant products, the scalar final price otherwise.
func (p *Product) DisplayPrice() decimal.Decimal {
	if key, _, ok := p.PrimaryCombination(); ok {
		return p.FinalPrice(key)
	}
	return p.FinalPrice("")
}

// ApplyDiscount applies a flat or percentage discount to a base price,
// clamping the result at zero.
func ApplyDiscount(base decimal.Decimal, discountType string, discount decimal.Decimal) decimal.Decimal {
	var final decimal.Decimal
	switch discountType {
	case DiscountTypeFlat:
		final = base.Sub(discount)
	case DiscountTypePercentage:
		final = base.Mul(decimal.NewFromInt(100).Sub(discount)).Div(decimal.NewFromInt(100))
	default:
		final = base
	}
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

type ProductImage struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string `gorm:"size:36;index"`
	Path      string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}
