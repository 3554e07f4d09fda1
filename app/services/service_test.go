package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/models/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One named in-memory database per test so parallel tests never share
	// state through the connection pool.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func seedSetting(t *testing.T, db *gorm.DB, mutate func(*models.Setting)) *models.Setting {
	t.Helper()

	setting := &models.Setting{
		SaleCommission:    decimal.NewFromInt(5),
		CommissionMode:    models.CommissionModeGlobal,
		LowStockThreshold: 10,
		IsWithdrawal:      true,
		MinWithdrawal:     decimal.NewFromInt(10),
		MaxWithdrawal:     decimal.NewFromInt(1000),
	}
	if mutate != nil {
		mutate(setting)
	}
	require.NoError(t, db.Create(setting).Error)
	return setting
}

func seedInfluencer(t *testing.T, db *gorm.DB, earnCode string, balance decimal.Decimal) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test Influencer",
		Email:        earnCode + "@example.com",
		Password:     "hashed",
		Role:         models.RoleCustomer,
		Balance:      balance,
		EarnCode:     &earnCode,
		IsInfluencer: true,
		KycStatus:    models.KycStatusApproved,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:         "Test Product",
		Slug:         "test-product-" + strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-")),
		Sku:          "sku-" + strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-")),
		RegularPrice: decimal.NewFromInt(100),
		Stock:        stock,
		IsActive:     true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedVariantProduct(t *testing.T, db *gorm.DB, redStock, blueStock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:         "Variant Product",
		Slug:         "variant-product-" + strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-")),
		Sku:          "vsku-" + strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-")),
		RegularPrice: decimal.NewFromInt(100),
		Stock:        7,
		IsActive:     true,
		Variants: &models.VariantSchema{
			VariantName:   "color",
			VariantValues: []string{"red", "blue"},
			Combinations: map[string]models.VariantCombination{
				"red":  {Price: decimal.NewFromInt(100), Stock: redStock, IsPrimary: true},
				"blue": {Price: decimal.NewFromInt(150), Stock: blueStock},
			},
		},
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func reloadUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	return &user
}

func reloadProduct(t *testing.T, db *gorm.DB, id string) *models.Product {
	t.Helper()

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return &product
}

func countTransactions(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}
