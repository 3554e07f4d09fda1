package seeders

import (
	"time"

	"github.com/prabeshkharel/earnkart/app/db/fakers"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Seeder struct {
	Seeder interface{}
}

func SeedersRegister(db *gorm.DB) []Seeder {
	influencer := fakers.InfluencerFaker(db)
	products := []*models.Product{
		fakers.ProductFaker(db),
		fakers.ProductFaker(db),
		fakers.VariantProductFaker(db),
	}

	campaign := &models.Campaign{
		Name:            "Launch campaign",
		Description:     "Seeded campaign for the launch product",
		ProductID:       products[0].ID,
		CommissionType:  models.CommissionTypePercentage,
		CommissionValue: decimal.NewFromInt(10),
		IsActive:        true,
	}

	flashDeal := &models.FlashDeal{
		Title:        "Opening week deal",
		DiscountType: models.DiscountTypePercentage,
		Discount:     decimal.NewFromInt(20),
		StartTime:    time.Now().Add(-time.Hour),
		EndTime:      time.Now().Add(7 * 24 * time.Hour),
		IsActive:     true,
		Products:     []models.Product{*products[1]},
	}

	seeders := []Seeder{
		{Seeder: fakers.UserFaker(db)},
		{Seeder: influencer},
	}
	for _, product := range products {
		seeders = append(seeders, Seeder{Seeder: product})
	}
	seeders = append(seeders,
		Seeder{Seeder: campaign},
		Seeder{Seeder: flashDeal},
	)
	return seeders
}

func DBSeed(db *gorm.DB) error {
	// The settings singleton is created through FirstOrCreate so reseeding
	// never duplicates or resets it.
	setting := models.Setting{
		SaleCommission:    decimal.NewFromInt(5),
		CommissionMode:    models.CommissionModeGlobal,
		LowStockThreshold: 10,
		IsWithdrawal:      true,
		MinWithdrawal:     decimal.NewFromInt(10),
		MaxWithdrawal:     decimal.NewFromInt(10000),
	}
	if err := db.Where("id = ?", models.SettingID).FirstOrCreate(&setting).Error; err != nil {
		return err
	}

	for _, seeder := range SeedersRegister(db) {
		if err := db.Debug().Create(seeder.Seeder).Error; err != nil {
			return err
		}
	}
	return nil
}
