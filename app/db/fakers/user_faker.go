package fakers

import (
	"log"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/prabeshkharel/earnkart/app/helpers"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func UserFaker(db *gorm.DB) *models.User {
	password, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatal("failed to hash faker password:", err)
	}

	return &models.User{
		ID:       uuid.New().String(),
		Name:     faker.Name(),
		Email:    faker.Email(),
		Phone:    faker.Phonenumber(),
		Password: password,
		Role:     models.RoleCustomer,
		Balance:  decimal.Zero,
	}
}

// InfluencerFaker builds a KYC-approved influencer with an earn code, ready
// to be attributed on referral links.
func InfluencerFaker(db *gorm.DB) *models.User {
	user := UserFaker(db)
	earnCode := "EK" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])

	user.IsInfluencer = true
	user.KycStatus = models.KycStatusApproved
	user.EarnCode = &earnCode
	user.TiktokLink = "https://tiktok.com/@" + faker.Username()
	user.InstagramLink = "https://instagram.com/" + faker.Username()
	return user
}
