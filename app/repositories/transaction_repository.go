package repositories

import (
	"context"

	"github.com/prabeshkharel/earnkart/app/models"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, transaction *models.Transaction) error
	ExistsForOrderItem(ctx context.Context, orderItemID, effectType string) (bool, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Transaction, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Transaction, int64, error)
}

type gormTransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &gormTransactionRepository{db: db}
}

// CreateTx appends a ledger row inside the caller's transaction. The ledger
// is append-only; there is deliberately no update or delete method here.
func (r *gormTransactionRepository) CreateTx(ctx context.Context, tx *gorm.DB, transaction *models.Transaction) error {
	return tx.WithContext(ctx).Create(transaction).Error
}

// ExistsForOrderItem checks the structured idempotency key before crediting
// an order-item effect a second time. The unique index on
// (order_item_id, effect_type) backs this check at the storage layer.
func (r *gormTransactionRepository) ExistsForOrderItem(ctx context.Context, orderItemID, effectType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("order_item_id = ? AND effect_type = ?", orderItemID, effectType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormTransactionRepository) GetByUserID(ctx context.Context, userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *gormTransactionRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error

	return transactions, total, err
}
