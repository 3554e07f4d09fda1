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

func newCommissionService(db *gorm.DB) *CommissionService {
	return NewCommissionService(repositories.NewUserRepository(db), repositories.NewSettingRepository(db))
}

func TestCommissionGlobalMode(t *testing.T) {
	db := newTestDB(t)
	svc := newCommissionService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.SaleCommission = decimal.NewFromInt(10)
	})
	influencer := seedInfluencer(t, db, "EKGLOBAL1", decimal.Zero)

	item := &models.OrderItem{
		EarnCode: "EKGLOBAL1",
		Price:    decimal.NewFromInt(100),
		Qty:      3,
		Total:    decimal.NewFromInt(300),
	}

	reward, earner, err := svc.RewardFor(ctx, item)
	require.NoError(t, err)
	require.NotNil(t, earner)
	assert.Equal(t, influencer.ID, earner.ID)
	assert.True(t, reward.Equal(decimal.NewFromInt(30)), "got %s", reward)
}

func TestCommissionCampaignModePercentage(t *testing.T) {
	db := newTestDB(t)
	svc := newCommissionService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.CommissionMode = models.CommissionModeCampaign
	})
	seedInfluencer(t, db, "EKCAMP1", decimal.Zero)

	campaign := &models.Campaign{
		Name:            "Campaign",
		ProductID:       "p1",
		CommissionType:  models.CommissionTypePercentage,
		CommissionValue: decimal.NewFromInt(10),
		IsActive:        true,
	}
	item := &models.OrderItem{
		EarnCode: "EKCAMP1",
		Campaign: campaign,
		Price:    decimal.NewFromInt(100),
		Qty:      3,
		Total:    decimal.NewFromInt(300),
	}

	reward, earner, err := svc.RewardFor(ctx, item)
	require.NoError(t, err)
	require.NotNil(t, earner)
	assert.True(t, reward.Equal(decimal.NewFromInt(30)), "got %s", reward)
}

func TestCommissionCampaignModeFlat(t *testing.T) {
	db := newTestDB(t)
	svc := newCommissionService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.CommissionMode = models.CommissionModeCampaign
	})
	seedInfluencer(t, db, "EKCAMP2", decimal.Zero)

	campaign := &models.Campaign{
		Name:            "Campaign",
		ProductID:       "p1",
		CommissionType:  models.CommissionTypeFlat,
		CommissionValue: decimal.NewFromInt(5),
		IsActive:        true,
	}
	item := &models.OrderItem{
		EarnCode: "EKCAMP2",
		Campaign: campaign,
		Price:    decimal.NewFromInt(100),
		Qty:      3,
	}

	reward, _, err := svc.RewardFor(ctx, item)
	require.NoError(t, err)
	assert.True(t, reward.Equal(decimal.NewFromInt(15)), "got %s", reward)
}

func TestCommissionCampaignModeRequiresCampaign(t *testing.T) {
	db := newTestDB(t)
	svc := newCommissionService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.CommissionMode = models.CommissionModeCampaign
	})
	seedInfluencer(t, db, "EKCAMP3", decimal.Zero)

	// No campaign attached: nothing earned in campaign mode.
	item := &models.OrderItem{
		EarnCode: "EKCAMP3",
		Price:    decimal.NewFromInt(100),
		Qty:      1,
		Total:    decimal.NewFromInt(100),
	}

	reward, earner, err := svc.RewardFor(ctx, item)
	require.NoError(t, err)
	assert.Nil(t, earner)
	assert.True(t, reward.IsZero())
}

func TestCommissionCampaignModeRequiresApprovedKyc(t *testing.T) {
	db := newTestDB(t)
	svc := newCommissionService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.CommissionMode = models.CommissionModeCampaign
	})

	earnCode := "EKNOKYC"
	user := &models.User{
		Name:         "Pending",
		Email:        "pending@example.com",
		Password:     "hashed",
		EarnCode:     &earnCode,
		IsInfluencer: true,
		KycStatus:    models.KycStatusPending,
	}
	require.NoError(t, db.Create(user).Error)

	item := &models.OrderItem{
		EarnCode: earnCode,
		Campaign: &models.Campaign{CommissionType: models.CommissionTypeFlat, CommissionValue: decimal.NewFromInt(5)},
		Price:    decimal.NewFromInt(100),
		Qty:      1,
	}

	reward, earner, err := svc.RewardFor(ctx, item)
	require.NoError(t, err)
	assert.Nil(t, earner)
	assert.True(t, reward.IsZero())
}

func TestCommissionSilentSkips(t *testing.T) {
	db := newTestDB(t)
	svc := newCommissionService(db)
	ctx := context.Background()

	seedSetting(t, db, nil)

	// No earn code at all.
	reward, earner, err := svc.RewardFor(ctx, &models.OrderItem{Total: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Nil(t, earner)
	assert.True(t, reward.IsZero())

	// Earn code that resolves to nobody.
	reward, earner, err = svc.RewardFor(ctx, &models.OrderItem{EarnCode: "EKNOBODY", Total: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Nil(t, earner)
	assert.True(t, reward.IsZero())
}

func TestCommissionGlobalModeZeroPercent(t *testing.T) {
	db := newTestDB(t)
	svc := newCommissionService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.SaleCommission = decimal.Zero
	})
	seedInfluencer(t, db, "EKZERO", decimal.Zero)

	reward, earner, err := svc.RewardFor(ctx, &models.OrderItem{EarnCode: "EKZERO", Total: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Nil(t, earner)
	assert.True(t, reward.IsZero())
}
