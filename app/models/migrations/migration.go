package migrations

import (
	"github.com/prabeshkharel/earnkart/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.FlashDeal{},
		&models.Campaign{},
		&models.Order{},
		&models.OrderItem{},
		&models.Transaction{},
		&models.Withdrawal{},
		&models.Setting{},
	)
}
