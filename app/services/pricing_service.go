package services

import (
	"context"
	"log"
	"time"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/shopspring/decimal"
)

// PricingService resolves the effective sell price for a product, layering
// flash deals over the product's own pricing. A running flash deal replaces
// both the product-level and variant-level discounts; its discount applies
// to the base (or variant) price and never stacks with the others.
type PricingService struct {
	flashDealRepo repositories.FlashDealRepository
}

func NewPricingService(flashDealRepo repositories.FlashDealRepository) *PricingService {
	return &PricingService{flashDealRepo: flashDealRepo}
}

// FinalPrice returns the price a buyer pays right now for the product,
// optionally scoped to a variant combination key.
func (s *PricingService) FinalPrice(ctx context.Context, product *models.Product, variantKey string) decimal.Decimal {
	return s.FinalPriceAt(ctx, product, variantKey, time.Now())
}

// FinalPriceAt computes the price at a given instant, which keeps flash deal
// windows testable.
func (s *PricingService) FinalPriceAt(ctx context.Context, product *models.Product, variantKey string, now time.Time) decimal.Decimal {
	deal, err := s.flashDealRepo.ActiveForProduct(ctx, product.ID, now)
	if err != nil {
		log.Printf("ERROR: PricingService: flash deal lookup for product %s: %v", product.ID, err)
		deal = nil
	}
	if deal != nil {
		return models.ApplyDiscount(product.BasePrice(variantKey), deal.DiscountType, deal.Discount)
	}
	return product.FinalPrice(variantKey)
}

// DisplayPrice mirrors Product.DisplayPrice with flash deals applied: the
// primary combination for variant products, the scalar price otherwise.
func (s *PricingService) DisplayPrice(ctx context.Context, product *models.Product) decimal.Decimal {
	if key, _, ok := product.PrimaryCombination(); ok {
		return s.FinalPrice(ctx, product, key)
	}
	return s.FinalPrice(ctx, product, "")
}
