package repositories

import (
	"context"
	"errors"

	"github.com/prabeshkharel/earnkart/app/models"
	"gorm.io/gorm"
)

type WithdrawalRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, withdrawal *models.Withdrawal) error
	GetByID(ctx context.Context, id string) (*models.Withdrawal, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Withdrawal, error)
	GetAll(ctx context.Context, statusFilter string) ([]models.Withdrawal, error)
	SaveTx(ctx context.Context, tx *gorm.DB, withdrawal *models.Withdrawal) error
}

type gormWithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &gormWithdrawalRepository{db: db}
}

func (r *gormWithdrawalRepository) CreateTx(ctx context.Context, tx *gorm.DB, withdrawal *models.Withdrawal) error {
	return tx.WithContext(ctx).Create(withdrawal).Error
}

func (r *gormWithdrawalRepository) GetByID(ctx context.Context, id string) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := r.db.WithContext(ctx).Preload("User").First(&withdrawal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &withdrawal, nil
}

func (r *gormWithdrawalRepository) GetByUserID(ctx context.Context, userID string) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&withdrawals).Error
	return withdrawals, err
}

func (r *gormWithdrawalRepository) GetAll(ctx context.Context, statusFilter string) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	query := r.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}
	err := query.Find(&withdrawals).Error
	return withdrawals, err
}

func (r *gormWithdrawalRepository) SaveTx(ctx context.Context, tx *gorm.DB, withdrawal *models.Withdrawal) error {
	return tx.WithContext(ctx).Save(withdrawal).Error
}
