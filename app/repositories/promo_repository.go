package repositories

import (
	"context"
	"errors"

	"github.com/attarhouse/storefront/app/models"
	"gorm.io/gorm"
)

var ErrPromoNotFound = errors.New("promo code not found")

type PromoRepositoryImpl interface {
	FindByCode(ctx context.Context, code string) (*models.PromoCode, error)
}

type promoRepository struct {
	db *gorm.DB
}

func NewPromoRepository(db *gorm.DB) PromoRepositoryImpl {
	return &promoRepository{db}
}

func (p *promoRepository) FindByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := p.db.WithContext(ctx).
		Model(&models.PromoCode{}).
		Where("code = ?", code).
		First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	return &promo, nil
}
