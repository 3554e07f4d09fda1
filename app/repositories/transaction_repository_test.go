package repositories

import (
	"context"
	"testing"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTransactionRepositoryIdempotencyKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	itemID := "item-1"
	first := &models.Transaction{
		UserID:      "u1",
		Amount:      decimal.NewFromInt(30),
		Type:        models.TransactionTypeIn,
		Status:      models.TransactionStatusSuccess,
		OrderItemID: &itemID,
		EffectType:  models.EffectCommission,
	}
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.CreateTx(ctx, tx, first)
	}))

	exists, err := repo.ExistsForOrderItem(ctx, itemID, models.EffectCommission)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForOrderItem(ctx, "item-2", models.EffectCommission)
	require.NoError(t, err)
	assert.False(t, exists)

	// The unique index backs the check at the storage level.
	dup := &models.Transaction{
		UserID:      "u1",
		Amount:      decimal.NewFromInt(30),
		Type:        models.TransactionTypeIn,
		Status:      models.TransactionStatusSuccess,
		OrderItemID: &itemID,
		EffectType:  models.EffectCommission,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return repo.CreateTx(ctx, tx, dup)
	})
	require.Error(t, err)

	// Rows without an order item are exempt from the key.
	for i := 0; i < 2; i++ {
		entry := &models.Transaction{
			UserID:     "u1",
			Amount:     decimal.NewFromInt(10),
			Type:       models.TransactionTypeOut,
			Status:     models.TransactionStatusSuccess,
			EffectType: models.EffectWithdrawalRequest,
		}
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			return repo.CreateTx(ctx, tx, entry)
		}))
	}
}
