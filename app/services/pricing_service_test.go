package services

import (
	"context"
	"testing"
	"time"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedFlashDeal(t *testing.T, db *gorm.DB, product *models.Product, discountType string, discount int64, start, end time.Time) *models.FlashDeal {
	t.Helper()

	deal := &models.FlashDeal{
		Title:        "Deal " + t.Name(),
		DiscountType: discountType,
		Discount:     decimal.NewFromInt(discount),
		StartTime:    start,
		EndTime:      end,
		IsActive:     true,
		Products:     []models.Product{*product},
	}
	require.NoError(t, db.Create(deal).Error)
	return deal
}

func TestPricingFlashDealOverridesProductDiscount(t *testing.T) {
	db := newTestDB(t)
	svc := NewPricingService(repositories.NewFlashDealRepository(db))
	ctx := context.Background()
	now := time.Now()

	product := seedProduct(t, db, 10)
	product.DiscountType = models.DiscountTypeFlat
	product.Discount = decimal.NewFromInt(30)
	require.NoError(t, db.Save(product).Error)

	seedFlashDeal(t, db, product, models.DiscountTypePercentage, 20, now.Add(-time.Hour), now.Add(time.Hour))

	// The deal's 20 percent off 100 wins; the product's flat 30 is ignored,
	// never stacked.
	price := svc.FinalPriceAt(ctx, product, "", now)
	assert.True(t, price.Equal(decimal.NewFromInt(80)), "got %s", price)
}

func TestPricingOutsideDealWindowFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewPricingService(repositories.NewFlashDealRepository(db))
	ctx := context.Background()
	now := time.Now()

	product := seedProduct(t, db, 10)
	product.DiscountType = models.DiscountTypeFlat
	product.Discount = decimal.NewFromInt(30)
	require.NoError(t, db.Save(product).Error)

	seedFlashDeal(t, db, product, models.DiscountTypePercentage, 20, now.Add(time.Hour), now.Add(2*time.Hour))

	price := svc.FinalPriceAt(ctx, product, "", now)
	assert.True(t, price.Equal(decimal.NewFromInt(70)), "got %s", price)
}

func TestPricingFlashDealOnVariantBasePrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewPricingService(repositories.NewFlashDealRepository(db))
	ctx := context.Background()
	now := time.Now()

	product := seedVariantProduct(t, db, 5, 8)
	seedFlashDeal(t, db, product, models.DiscountTypeFlat, 25, now.Add(-time.Hour), now.Add(time.Hour))

	// The deal applies to the combination's own base price.
	price := svc.FinalPriceAt(ctx, product, "blue", now)
	assert.True(t, price.Equal(decimal.NewFromInt(125)), "got %s", price)
}

func TestPricingDisabledDealIgnored(t *testing.T) {
	db := newTestDB(t)
	svc := NewPricingService(repositories.NewFlashDealRepository(db))
	ctx := context.Background()
	now := time.Now()

	product := seedProduct(t, db, 10)
	deal := seedFlashDeal(t, db, product, models.DiscountTypePercentage, 50, now.Add(-time.Hour), now.Add(time.Hour))
	deal.IsActive = false
	require.NoError(t, db.Save(deal).Error)

	price := svc.FinalPriceAt(ctx, product, "", now)
	assert.True(t, price.Equal(decimal.NewFromInt(100)), "got %s", price)
}
