package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromoCode struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Code            string          `gorm:"size:64;not null;uniqueIndex" json:"code"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_percent"`
	Active          bool            `gorm:"default:true" json:"active"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Usable reports whether the code can currently grant a discount.
func (p *PromoCode) Usable(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return false
	}
	return true
}

// PromoResult is the outcome of validating a promo code. DiscountPercent is
// meaningful only when IsValid is true.
type PromoResult struct {
	IsValid         bool            `json:"isValid"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}
