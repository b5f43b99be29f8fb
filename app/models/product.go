package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             string          `gorm:"size:64;not null;uniqueIndex;primary_key" json:"id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	ImageURL       string          `gorm:"size:512" json:"image_url,omitempty"`
	TargetAudience string          `gorm:"size:32" json:"target_audience,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DefaultProducts is the static catalog used when the product table cannot be
// reached, so the storefront keeps working without a database.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:             "mystic-blossom",
			Name:           "Mystic Blossom",
			Description:    "A delicate and enchanting fragrance with floral notes that bloom beautifully on the skin. This exquisite attar is specially crafted with feminine elegance in mind, making it the perfect choice for girls who appreciate sophisticated and graceful scents.",
			Price:          decimal.NewFromInt(250),
			TargetAudience: "girls",
		},
		{
			ID:             "sapphire-sand",
			Name:           "Sapphire Sand",
			Description:    "A bold and mysterious fragrance that captures the essence of desert winds and precious gems. This masculine scent combines earthy undertones with luxurious depth, making it an excellent choice for men who want to make a lasting impression.",
			Price:          decimal.NewFromInt(250),
			TargetAudience: "men",
		},
		{
			ID:             "raw-pulse",
			Name:           "Raw Pulse",
			Description:    "An intense and dynamic fragrance that embodies raw energy and power. This commanding attar delivers a strong, masculine presence with bold notes that resonate confidence, perfect for men who embrace their inner strength.",
			Price:          decimal.NewFromInt(250),
			TargetAudience: "men",
		},
	}
}
