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

func newWalletService(db *gorm.DB) *WalletService {
	return NewWalletService(
		db,
		repositories.NewUserRepository(db),
		repositories.NewTransactionRepository(db),
		repositories.NewWithdrawalRepository(db),
		repositories.NewSettingRepository(db),
	)
}

func TestWalletRequestWithdrawalPreDebits(t *testing.T) {
	db := newTestDB(t)
	svc := newWalletService(db)
	ctx := context.Background()

	seedSetting(t, db, nil)
	user := seedInfluencer(t, db, "EKWAL1", decimal.NewFromInt(200))

	withdrawal, err := svc.RequestWithdrawal(ctx, user.ID, decimal.NewFromInt(150))
	require.NoError(t, err)
	require.NotNil(t, withdrawal)
	assert.Equal(t, models.WithdrawalStatusPending, withdrawal.Status)

	assert.True(t, reloadUser(t, db, user.ID).Balance.Equal(decimal.NewFromInt(50)))

	var tx models.Transaction
	require.NoError(t, db.First(&tx, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.TransactionTypeOut, tx.Type)
	assert.Equal(t, models.EffectWithdrawalRequest, tx.EffectType)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(150)))
}

func TestWalletRequestWithdrawalInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newWalletService(db)
	ctx := context.Background()

	seedSetting(t, db, nil)
	user := seedInfluencer(t, db, "EKWAL2", decimal.NewFromInt(100))

	_, err := svc.RequestWithdrawal(ctx, user.ID, decimal.NewFromInt(150))
	require.ErrorIs(t, err, ErrNegativeBalance)

	// No partial writes.
	assert.True(t, reloadUser(t, db, user.ID).Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(0), countTransactions(t, db, user.ID))

	var n int64
	require.NoError(t, db.Model(&models.Withdrawal{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestWalletRequestWithdrawalBounds(t *testing.T) {
	db := newTestDB(t)
	svc := newWalletService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.MinWithdrawal = decimal.NewFromInt(50)
		s.MaxWithdrawal = decimal.NewFromInt(500)
	})
	user := seedInfluencer(t, db, "EKWAL3", decimal.NewFromInt(1000))

	_, err := svc.RequestWithdrawal(ctx, user.ID, decimal.NewFromInt(10))
	require.ErrorIs(t, err, ErrWithdrawalBounds)

	_, err = svc.RequestWithdrawal(ctx, user.ID, decimal.NewFromInt(600))
	require.ErrorIs(t, err, ErrWithdrawalBounds)

	_, err = svc.RequestWithdrawal(ctx, user.ID, decimal.NewFromInt(-5))
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestWalletRequestWithdrawalDisabled(t *testing.T) {
	db := newTestDB(t)
	svc := newWalletService(db)
	ctx := context.Background()

	seedSetting(t, db, func(s *models.Setting) {
		s.IsWithdrawal = false
	})
	user := seedInfluencer(t, db, "EKWAL4", decimal.NewFromInt(200))

	_, err := svc.RequestWithdrawal(ctx, user.ID, decimal.NewFromInt(50))
	require.ErrorIs(t, err, ErrWithdrawalsDisabled)
}

func TestWalletApproveMovesNoMoney(t *testing.T) {
	db := newTestDB(t)
	svc := newWalletService(db)
	ctx := context.Background()

	seedSetting(t, db, nil)
	user := seedInfluencer(t, db, "EKWAL5", decimal.NewFromInt(200))

	withdrawal, err := svc.RequestWithdrawal(ctx, user.ID, decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, withdrawal.ID, "paid via bank transfer"))

	// The debit happened at request time; approval only flips statuses.
	assert.True(t, reloadUser(t, db, user.ID).Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(1), countTransactions(t, db, user.ID))

	var reloaded models.Withdrawal
	require.NoError(t, db.First(&reloaded, "id = ?", withdrawal.ID).Error)
	assert.Equal(t, models.WithdrawalStatusApproved, reloaded.Status)
	assert.Equal(t, models.PaymentStatusPaid, reloaded.PaymentStatus)

	// A second approval hits the pending guard.
	require.ErrorIs(t, svc.Approve(ctx, withdrawal.ID, "again"), ErrWithdrawalNotPending)
}

func TestWalletRejectRefunds(t *testing.T) {
	db := newTestDB(t)
	svc := newWalletService(db)
	ctx := context.Background()

	seedSetting(t, db, nil)
	user := seedInfluencer(t, db, "EKWAL6", decimal.NewFromInt(200))

	withdrawal, err := svc.RequestWithdrawal(ctx, user.ID, decimal.NewFromInt(150))
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, withdrawal.ID, "bank details invalid"))

	assert.True(t, reloadUser(t, db, user.ID).Balance.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, int64(2), countTransactions(t, db, user.ID))

	var refund models.Transaction
	require.NoError(t, db.First(&refund, "user_id = ? AND effect_type = ?", user.ID, models.EffectWithdrawalRefund).Error)
	assert.Equal(t, models.TransactionTypeIn, refund.Type)
	assert.True(t, refund.Amount.Equal(decimal.NewFromInt(150)))

	var reloaded models.Withdrawal
	require.NoError(t, db.First(&reloaded, "id = ?", withdrawal.ID).Error)
	assert.Equal(t, models.WithdrawalStatusRejected, reloaded.Status)
	assert.Equal(t, models.PaymentStatusRefunded, reloaded.PaymentStatus)
	assert.Equal(t, "bank details invalid", reloaded.RejectReason)

	// A second rejection cannot double-refund.
	require.ErrorIs(t, svc.Reject(ctx, withdrawal.ID, "again"), ErrWithdrawalNotPending)
	assert.True(t, reloadUser(t, db, user.ID).Balance.Equal(decimal.NewFromInt(200)))
}

func TestWalletAdjust(t *testing.T) {
	db := newTestDB(t)
	svc := newWalletService(db)
	ctx := context.Background()

	user := seedInfluencer(t, db, "EKWAL7", decimal.NewFromInt(50))

	require.NoError(t, svc.Adjust(ctx, user.ID, decimal.NewFromInt(25), models.TransactionTypeIn, "goodwill credit"))
	assert.True(t, reloadUser(t, db, user.ID).Balance.Equal(decimal.NewFromInt(75)))

	require.NoError(t, svc.Adjust(ctx, user.ID, decimal.NewFromInt(70), models.TransactionTypeOut, "correction"))
	assert.True(t, reloadUser(t, db, user.ID).Balance.Equal(decimal.NewFromInt(5)))

	err := svc.Adjust(ctx, user.ID, decimal.NewFromInt(10), models.TransactionTypeOut, "too much")
	require.ErrorIs(t, err, ErrNegativeBalance)
	assert.True(t, reloadUser(t, db, user.ID).Balance.Equal(decimal.NewFromInt(5)))

	// Failed debit leaves no ledger row behind.
	assert.Equal(t, int64(2), countTransactions(t, db, user.ID))

	require.ErrorIs(t, svc.Adjust(ctx, user.ID, decimal.Zero, models.TransactionTypeIn, "noop"), ErrInvalidAmount)
}
