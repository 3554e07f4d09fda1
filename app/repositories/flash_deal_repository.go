package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/prabeshkharel/earnkart/app/models"
	"gorm.io/gorm"
)

type FlashDealRepository interface {
	Create(ctx context.Context, deal *models.FlashDeal) error
	GetByID(ctx context.Context, id string) (*models.FlashDeal, error)
	GetRunning(ctx context.Context, now time.Time) ([]models.FlashDeal, error)
	ActiveForProduct(ctx context.Context, productID string, now time.Time) (*models.FlashDeal, error)
	Update(ctx context.Context, deal *models.FlashDeal) error
}

type gormFlashDealRepository struct {
	db *gorm.DB
}

func NewFlashDealRepository(db *gorm.DB) FlashDealRepository {
	return &gormFlashDealRepository{db: db}
}

func (r *gormFlashDealRepository) Create(ctx context.Context, deal *models.FlashDeal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

func (r *gormFlashDealRepository) GetByID(ctx context.Context, id string) (*models.FlashDeal, error) {
	var deal models.FlashDeal
	err := r.db.WithContext(ctx).Preload("Products").First(&deal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

func (r *gormFlashDealRepository) GetRunning(ctx context.Context, now time.Time) ([]models.FlashDeal, error) {
	var deals []models.FlashDeal
	err := r.db.WithContext(ctx).
		Preload("Products").
		Where("is_active = ? AND start_time <= ? AND end_time >= ?", true, now, now).
		Order("created_at DESC").
		Find(&deals).Error
	return deals, err
}

// ActiveForProduct returns the deal that currently applies to a product.
// At most one deal is considered: the newest running deal wins.
func (r *gormFlashDealRepository) ActiveForProduct(ctx context.Context, productID string, now time.Time) (*models.FlashDeal, error) {
	var deal models.FlashDeal
	err := r.db.WithContext(ctx).
		Joins("JOIN flash_deal_products fdp ON fdp.flash_deal_id = flash_deals.id").
		Where("fdp.product_id = ?", productID).
		Where("flash_deals.is_active = ? AND flash_deals.start_time <= ? AND flash_deals.end_time >= ?", true, now, now).
		Order("flash_deals.created_at DESC").
		First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

func (r *gormFlashDealRepository) Update(ctx context.Context, deal *models.FlashDeal) error {
	return r.db.WithContext(ctx).Save(deal).Error
}
