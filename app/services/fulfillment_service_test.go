package services

import (
	"context"
	"testing"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFulfillmentService(db *gorm.DB) *FulfillmentService {
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	return NewFulfillmentService(
		db,
		repositories.NewOrderItemRepository(db),
		repositories.NewTransactionRepository(db),
		userRepo,
		NewCommissionService(userRepo, repositories.NewSettingRepository(db)),
		NewStockService(db, productRepo),
	)
}

func seedOrderWithItem(t *testing.T, db *gorm.DB, product *models.Product, earnCode string, qty int) (*models.Order, *models.OrderItem) {
	t.Helper()

	order := &models.Order{
		UserID:        "buyer",
		OrderCode:     "INV-" + t.Name(),
		PaymentStatus: models.PaymentStatusPaid,
		OrderStatus:   models.OrderStatusDelivered,
	}
	require.NoError(t, db.Create(order).Error)

	item := &models.OrderItem{
		OrderID:     order.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Qty:         qty,
		Price:       decimal.NewFromInt(100),
		EarnCode:    earnCode,
	}
	require.NoError(t, db.Create(item).Error)
	return order, item
}

func TestFulfillmentDeliveredCreditsCommissionAndDeductsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newFulfillmentService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.SaleCommission = decimal.NewFromInt(10)
	})
	influencer := seedInfluencer(t, db, "EKFUL1", decimal.Zero)
	product := seedProduct(t, db, 10)
	order, item := seedOrderWithItem(t, db, product, "EKFUL1", 3)

	require.NoError(t, svc.HandleStatusChange(ctx, order, models.OrderStatusShipped))

	// 300 line total at 10 percent.
	assert.True(t, reloadUser(t, db, influencer.ID).Balance.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(1), countTransactions(t, db, influencer.ID))
	assert.Equal(t, 7, reloadProduct(t, db, product.ID).Stock)

	var reloadedItem models.OrderItem
	require.NoError(t, db.First(&reloadedItem, "id = ?", item.ID).Error)
	assert.True(t, reloadedItem.StockDeducted)
}

func TestFulfillmentRedeliveryIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := newFulfillmentService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.SaleCommission = decimal.NewFromInt(10)
	})
	influencer := seedInfluencer(t, db, "EKFUL2", decimal.Zero)
	product := seedProduct(t, db, 10)
	order, _ := seedOrderWithItem(t, db, product, "EKFUL2", 3)

	require.NoError(t, svc.HandleStatusChange(ctx, order, models.OrderStatusShipped))

	// Already delivered: old == new matches no transition.
	require.NoError(t, svc.HandleStatusChange(ctx, order, models.OrderStatusDelivered))

	assert.True(t, reloadUser(t, db, influencer.ID).Balance.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(1), countTransactions(t, db, influencer.ID))
	assert.Equal(t, 7, reloadProduct(t, db, product.ID).Stock)
}

func TestFulfillmentRepeatedTransitionStaysIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newFulfillmentService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.SaleCommission = decimal.NewFromInt(10)
	})
	influencer := seedInfluencer(t, db, "EKFUL3", decimal.Zero)
	product := seedProduct(t, db, 10)
	order, _ := seedOrderWithItem(t, db, product, "EKFUL3", 3)

	require.NoError(t, svc.HandleStatusChange(ctx, order, models.OrderStatusShipped))

	// Bounced back to shipped and delivered again: the ledger's idempotency
	// key and the per-item stock flag keep both effects single-shot.
	require.NoError(t, svc.HandleStatusChange(ctx, order, models.OrderStatusShipped))

	assert.True(t, reloadUser(t, db, influencer.ID).Balance.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(1), countTransactions(t, db, influencer.ID))
	assert.Equal(t, 7, reloadProduct(t, db, product.ID).Stock)
}

func TestFulfillmentUnpaidDeliveryDoesNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newFulfillmentService(db)
	ctx := context.Background()

	seedSetting(t, db, nil)
	influencer := seedInfluencer(t, db, "EKFUL4", decimal.Zero)
	product := seedProduct(t, db, 10)
	order, _ := seedOrderWithItem(t, db, product, "EKFUL4", 3)
	order.PaymentStatus = models.PaymentStatusPending

	require.NoError(t, svc.HandleStatusChange(ctx, order, models.OrderStatusShipped))

	assert.True(t, reloadUser(t, db, influencer.ID).Balance.IsZero())
	assert.Equal(t, 10, reloadProduct(t, db, product.ID).Stock)
}

func TestFulfillmentInsufficientStockDoesNotBlockCommission(t *testing.T) {
	db := newTestDB(t)
	svc := newFulfillmentService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.SaleCommission = decimal.NewFromInt(10)
	})
	influencer := seedInfluencer(t, db, "EKFUL5", decimal.Zero)
	product := seedProduct(t, db, 1)
	order, item := seedOrderWithItem(t, db, product, "EKFUL5", 3)

	// Stock is short: the deduction is skipped with a warning but the status
	// change and the commission stand.
	require.NoError(t, svc.HandleStatusChange(ctx, order, models.OrderStatusShipped))

	assert.True(t, reloadUser(t, db, influencer.ID).Balance.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 1, reloadProduct(t, db, product.ID).Stock)

	var reloadedItem models.OrderItem
	require.NoError(t, db.First(&reloadedItem, "id = ?", item.ID).Error)
	assert.False(t, reloadedItem.StockDeducted)
}

func TestFulfillmentCancellationRestoresStock(t *testing.T) {
	db := newTestDB(t)
	svc := newFulfillmentService(db)
	ctx := context.Background()

	seedSetting(t, db, nil)
	product := seedProduct(t, db, 7)
	order, _ := seedOrderWithItem(t, db, product, "", 3)
	order.OrderStatus = models.OrderStatusCancelled
	order.PaymentStatus = models.PaymentStatusRefunded

	require.NoError(t, svc.HandleStatusChange(ctx, order, models.OrderStatusProcessing))

	assert.Equal(t, 10, reloadProduct(t, db, product.ID).Stock)
}

func TestFulfillmentVariantItemDeductsCombination(t *testing.T) {
	db := newTestDB(t)
	svc := newFulfillmentService(db)
	ctx := context.Background()

	seedSetting(t, db, nil)
	product := seedVariantProduct(t, db, 5, 8)

	order := &models.Order{
		UserID:        "buyer",
		OrderCode:     "INV-" + t.Name(),
		PaymentStatus: models.PaymentStatusPaid,
		OrderStatus:   models.OrderStatusDelivered,
	}
	require.NoError(t, db.Create(order).Error)
	item := &models.OrderItem{
		OrderID:     order.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		VariantKey:  "blue",
		Qty:         2,
		Price:       decimal.NewFromInt(150),
	}
	require.NoError(t, db.Create(item).Error)

	require.NoError(t, svc.HandleStatusChange(ctx, order, models.OrderStatusProcessing))

	reloaded := reloadProduct(t, db, product.ID)
	assert.Equal(t, 6, reloaded.Variants.Combinations["blue"].Stock)
	assert.Equal(t, 7, reloaded.Stock)
}
