package repositories

import (
	"context"

	"github.com/prabeshkharel/earnkart/app/models"
	"gorm.io/gorm"
)

type SettingRepository interface {
	Get(ctx context.Context) (*models.Setting, error)
	Update(ctx context.Context, setting *models.Setting) error
}

type gormSettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &gormSettingRepository{db: db}
}

// Get returns the single settings row, creating it with defaults on first
// access. The fixed primary key keeps the row unique at the storage layer.
func (r *gormSettingRepository) Get(ctx context.Context) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).
		Where(models.Setting{ID: models.SettingID}).
		FirstOrCreate(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *gormSettingRepository) Update(ctx context.Context, setting *models.Setting) error {
	setting.ID = models.SettingID
	return r.db.WithContext(ctx).Save(setting).Error
}
