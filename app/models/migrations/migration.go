package migrations

import (
	"github.com/attarhouse/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.PromoCode{},
		&models.Order{},
		&models.OrderItem{},
	)
}
