package repositories

import (
	"context"
	"time"

	"github.com/prabeshkharel/earnkart/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error
	GetByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error)
	MarkStockDeducted(ctx context.Context, itemID string) error
}

type gormOrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &gormOrderItemRepository{db: db}
}

func (r *gormOrderItemRepository) BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *gormOrderItemRepository) GetByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Campaign").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

// MarkStockDeducted flips the per-item idempotency flag. Called only after a
// successful stock deduction.
func (r *gormOrderItemRepository) MarkStockDeducted(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("id = ?", itemID).Updates(map[string]interface{}{
		"stock_deducted": true,
		"updated_at":     time.Now(),
	}).Error
}
