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

func newOrderService(db *gorm.DB) *OrderService {
	userRepo := repositories.NewUserRepository(db)
	commissionSvc := NewCommissionService(userRepo, repositories.NewSettingRepository(db))
	return NewOrderService(db, repositories.NewOrderRepository(db), commissionSvc, newFulfillmentService(db))
}

func TestOrderServiceUpdateStatusesRunsFulfillment(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.SaleCommission = decimal.NewFromInt(10)
	})
	influencer := seedInfluencer(t, db, "EKORD1", decimal.Zero)
	product := seedProduct(t, db, 10)

	order := &models.Order{
		UserID:        "buyer",
		OrderCode:     "INV-" + t.Name(),
		PaymentStatus: models.PaymentStatusPaid,
		OrderStatus:   models.OrderStatusShipped,
	}
	require.NoError(t, db.Create(order).Error)
	item := &models.OrderItem{
		OrderID:     order.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Qty:         2,
		Price:       decimal.NewFromInt(100),
		EarnCode:    "EKORD1",
	}
	require.NoError(t, db.Create(item).Error)

	updated, err := svc.UpdateStatuses(ctx, order.ID, models.PaymentStatusPaid, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.OrderStatus)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, reloaded.OrderStatus)

	// The transition into delivered paid the 10 percent commission on the
	// 200 line total and deducted the stock.
	assert.True(t, reloadUser(t, db, influencer.ID).Balance.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 8, reloadProduct(t, db, product.ID).Stock)
}

func TestOrderServiceRewardPreviews(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.SaleCommission = decimal.NewFromInt(10)
	})
	influencer := seedInfluencer(t, db, "EKORD2", decimal.Zero)

	order := &models.Order{
		OrderItems: []models.OrderItem{
			{EarnCode: "EKORD2", Price: decimal.NewFromInt(100), Qty: 3, Total: decimal.NewFromInt(300)},
			{Price: decimal.NewFromInt(50), Qty: 1, Total: decimal.NewFromInt(50)},
		},
	}

	previews, err := svc.RewardPreviews(ctx, order)
	require.NoError(t, err)
	require.Len(t, previews, 2)

	assert.True(t, previews[0].Reward.Equal(decimal.NewFromInt(30)))
	require.NotNil(t, previews[0].Earner)
	assert.Equal(t, influencer.ID, previews[0].Earner.ID)

	assert.True(t, previews[1].Reward.IsZero())
	assert.Nil(t, previews[1].Earner)
}
