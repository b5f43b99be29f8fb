package seeders

import (
	"log"

	"github.com/attarhouse/storefront/app/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DBSeed installs the default catalog and a starter set of promo codes.
// Existing rows are left alone so reseeding is safe.
func DBSeed(db *gorm.DB) error {
	products := models.DefaultProducts()
	for i := range products {
		if err := db.Where("id = ?", products[i].ID).FirstOrCreate(&products[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d products", len(products))

	promos := defaultPromoCodes()
	for i := range promos {
		if err := db.Where("code = ?", promos[i].Code).FirstOrCreate(&promos[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d promo codes", len(promos))

	return nil
}

func defaultPromoCodes() []models.PromoCode {
	return []models.PromoCode{
		{
			ID:              uuid.New().String(),
			Code:            "WELCOME10",
			DiscountPercent: decimal.NewFromInt(10),
			Active:          true,
		},
		{
			ID:              uuid.New().String(),
			Code:            "ATTAR20",
			DiscountPercent: decimal.NewFromInt(20),
			Active:          true,
		},
	}
}
