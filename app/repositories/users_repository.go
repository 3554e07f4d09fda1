package repositories

import (
	"context"
	"errors"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEarnCode(ctx context.Context, earnCode string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	CreditBalanceTx(ctx context.Context, tx *gorm.DB, userID string, amount decimal.Decimal) error
	DebitBalanceTx(ctx context.Context, tx *gorm.DB, userID string, amount decimal.Decimal) (bool, error)
	GetInfluencers(ctx context.Context) ([]models.User, error)
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEarnCode(ctx context.Context, earnCode string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "earn_code = ?", earnCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// CreditBalanceTx adds to the cached balance inside the caller's transaction
// so it commits or rolls back together with the paired Transaction row.
func (r *gormUserRepository) CreditBalanceTx(ctx context.Context, tx *gorm.DB, userID string, amount decimal.Decimal) error {
	return tx.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}

// DebitBalanceTx subtracts from the cached balance, guarded so the balance
// can never go negative. Returns false when the guard rejected the debit.
func (r *gormUserRepository) DebitBalanceTx(ctx context.Context, tx *gorm.DB, userID string, amount decimal.Decimal) (bool, error) {
	result := tx.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormUserRepository) GetInfluencers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("is_influencer = ?", true).Find(&users).Error
	return users, err
}
