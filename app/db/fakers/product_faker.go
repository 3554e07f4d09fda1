package fakers

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func fakePrice() float64 {
	return float64(rand.Intn(9000)+1000) / 10
}

func ProductFaker(db *gorm.DB) *models.Product {
	name := faker.Word() + " " + faker.Word()
	productID := uuid.New().String()

	return &models.Product{
		ID:               productID,
		Name:             name,
		Slug:             slug.Make(name + "-" + uuid.NewString()[:6]),
		Sku:              slug.Make(name) + "-" + uuid.NewString()[:4],
		ShortDescription: faker.Sentence(),
		LongDescription:  faker.Paragraph(),
		RegularPrice:     decimal.NewFromFloat(fakePrice()),
		Stock:            rand.Intn(90) + 10,
		IsActive:         true,
		IsFeatured:       rand.Intn(3) == 0,
		ProductImages: []models.ProductImage{
			{ID: uuid.New().String(), ProductID: productID, Path: "/images/products/placeholder.jpg"},
		},
	}
}

// VariantProductFaker builds a product with a color axis. One combination is
// primary and carries its own discount, exercising the variant price paths.
func VariantProductFaker(db *gorm.DB) *models.Product {
	product := ProductFaker(db)
	base := product.RegularPrice

	product.Variants = &models.VariantSchema{
		VariantName:   "color",
		VariantValues: []string{"red", "blue"},
		Combinations: map[string]models.VariantCombination{
			"red": {
				Price:     base,
				Stock:     rand.Intn(40) + 5,
				IsPrimary: true,
			},
			"blue": {
				Price:        base.Add(decimal.NewFromInt(50)),
				Stock:        rand.Intn(40) + 5,
				DiscountType: models.DiscountTypePercentage,
				Discount:     decimal.NewFromInt(10),
			},
		},
	}
	return product
}
