package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNegativeBalance      = errors.New("debit would drive balance negative")
	ErrWithdrawalsDisabled  = errors.New("withdrawals are currently disabled")
	ErrWithdrawalBounds     = errors.New("amount outside withdrawal bounds")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrWithdrawalNotPending = errors.New("withdrawal is not pending")
)

// WalletService owns every balance mutation. Each mutation pairs the cached
// balance update with exactly one appended Transaction row, both inside one
// database transaction so the two can never diverge.
type WalletService struct {
	db             *gorm.DB
	userRepo       repositories.UserRepository
	txRepo         repositories.TransactionRepository
	withdrawalRepo repositories.WithdrawalRepository
	settingRepo    repositories.SettingRepository
}

func NewWalletService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	settingRepo repositories.SettingRepository,
) *WalletService {
	return &WalletService{
		db:             db,
		userRepo:       userRepo,
		txRepo:         txRepo,
		withdrawalRepo: withdrawalRepo,
		settingRepo:    settingRepo,
	}
}

// Adjust applies a manual admin credit or debit. A debit that would drive
// the balance negative is rejected with ErrNegativeBalance and performs no
// mutation at all.
func (s *WalletService) Adjust(ctx context.Context, userID string, amount decimal.Decimal, txType, remarks string) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if txType != models.TransactionTypeIn && txType != models.TransactionTypeOut {
		return fmt.Errorf("invalid transaction type %q", txType)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if txType == models.TransactionTypeIn {
			if err := s.userRepo.CreditBalanceTx(ctx, tx, userID, amount); err != nil {
				return fmt.Errorf("failed to credit balance: %w", err)
			}
		} else {
			ok, err := s.userRepo.DebitBalanceTx(ctx, tx, userID, amount)
			if err != nil {
				return fmt.Errorf("failed to debit balance: %w", err)
			}
			if !ok {
				return ErrNegativeBalance
			}
		}

		transaction := &models.Transaction{
			UserID:     userID,
			Amount:     amount,
			Type:       txType,
			Status:     models.TransactionStatusSuccess,
			EffectType: models.EffectManualAdjustment,
			Remarks:    remarks,
		}
		if err := s.txRepo.CreateTx(ctx, tx, transaction); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		return nil
	})
}

// RequestWithdrawal validates the request against the settings bounds and
// the user's balance, then pre-debits the amount: a pending Withdrawal, the
// balance decrement and an `out` Transaction are written together.
func (s *WalletService) RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal) (*models.Withdrawal, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if !setting.IsWithdrawal {
		return nil, ErrWithdrawalsDisabled
	}
	if amount.LessThan(setting.MinWithdrawal) || amount.GreaterThan(setting.MaxWithdrawal) {
		return nil, ErrWithdrawalBounds
	}

	withdrawal := &models.Withdrawal{
		UserID:        userID,
		Amount:        amount,
		Status:        models.WithdrawalStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.userRepo.DebitBalanceTx(ctx, tx, userID, amount)
		if err != nil {
			return fmt.Errorf("failed to debit balance: %w", err)
		}
		if !ok {
			return ErrNegativeBalance
		}

		if err := s.withdrawalRepo.CreateTx(ctx, tx, withdrawal); err != nil {
			return fmt.Errorf("failed to create withdrawal: %w", err)
		}

		transaction := &models.Transaction{
			UserID:     userID,
			Amount:     amount,
			Type:       models.TransactionTypeOut,
			Status:     models.TransactionStatusSuccess,
			EffectType: models.EffectWithdrawalRequest,
			Remarks:    fmt.Sprintf("Withdrawal Request (ID: %s)", withdrawal.ID),
		}
		if err := s.txRepo.CreateTx(ctx, tx, transaction); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// Approve moves a pending withdrawal to approved. The balance was already
// debited at request time, so nothing further moves; only the request and
// its payment status change.
func (s *WalletService) Approve(ctx context.Context, withdrawalID, remarks string) error {
	withdrawal, err := s.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return fmt.Errorf("failed to load withdrawal %s: %w", withdrawalID, err)
	}
	if withdrawal == nil {
		return fmt.Errorf("withdrawal %s not found", withdrawalID)
	}
	if withdrawal.Status != models.WithdrawalStatusPending {
		return ErrWithdrawalNotPending
	}

	withdrawal.Status = models.WithdrawalStatusApproved
	withdrawal.PaymentStatus = models.PaymentStatusPaid
	withdrawal.Remarks = remarks

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.withdrawalRepo.SaveTx(ctx, tx, withdrawal)
	})
}

// Reject compensates the pre-debit: the amount is credited back and an `in`
// Transaction appended. The pending-status guard prevents a second refund.
func (s *WalletService) Reject(ctx context.Context, withdrawalID, reason string) error {
	withdrawal, err := s.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return fmt.Errorf("failed to load withdrawal %s: %w", withdrawalID, err)
	}
	if withdrawal == nil {
		return fmt.Errorf("withdrawal %s not found", withdrawalID)
	}
	if withdrawal.Status != models.WithdrawalStatusPending {
		return ErrWithdrawalNotPending
	}

	withdrawal.Status = models.WithdrawalStatusRejected
	withdrawal.PaymentStatus = models.PaymentStatusRefunded
	withdrawal.RejectReason = reason

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreditBalanceTx(ctx, tx, withdrawal.UserID, withdrawal.Amount); err != nil {
			return fmt.Errorf("failed to refund balance: %w", err)
		}

		transaction := &models.Transaction{
			UserID:     withdrawal.UserID,
			Amount:     withdrawal.Amount,
			Type:       models.TransactionTypeIn,
			Status:     models.TransactionStatusSuccess,
			EffectType: models.EffectWithdrawalRefund,
			Remarks:    fmt.Sprintf("Withdrawal Refund (Rejected ID: %s)", withdrawal.ID),
		}
		if err := s.txRepo.CreateTx(ctx, tx, transaction); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}

		return s.withdrawalRepo.SaveTx(ctx, tx, withdrawal)
	})
}
