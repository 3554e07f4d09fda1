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

func TestUserRepositoryBalanceGuards(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Name:     "Wallet Owner",
		Email:    "owner@example.com",
		Password: "hashed",
		Balance:  decimal.NewFromInt(100),
	}
	require.NoError(t, db.Create(user).Error)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.CreditBalanceTx(ctx, tx, user.ID, decimal.NewFromInt(50))
	}))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.True(t, reloaded.Balance.Equal(decimal.NewFromInt(150)))

	// A debit larger than the balance matches no row and reports false.
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		ok, err := repo.DebitBalanceTx(ctx, tx, user.ID, decimal.NewFromInt(200))
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	}))

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		ok, err := repo.DebitBalanceTx(ctx, tx, user.ID, decimal.NewFromInt(150))
		require.NoError(t, err)
		assert.True(t, ok)
		return nil
	}))

	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.True(t, reloaded.Balance.IsZero())
}
