package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending = "pending"

	PaymentMethodCOD = "cod"
)

// Order is the immutable snapshot persisted at checkout. It is write-once:
// nothing in the storefront updates an order after insertion.
type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderCode string    `gorm:"type:varchar(64);unique;not null" json:"order_code"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`

	CustomerName string `gorm:"size:255;not null" json:"customer_name"`
	Phone        string `gorm:"size:64;not null" json:"phone"`
	Address      string `gorm:"type:text;not null" json:"address"`
	Notes        string `gorm:"type:text" json:"notes,omitempty"`

	OrderItems []OrderItem `json:"order_items"`

	Subtotal        decimal.Decimal `gorm:"type:decimal(16,2);" json:"subtotal"`
	PromoCode       *string         `gorm:"size:64" json:"promo_code,omitempty"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(10,2);" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(16,2);" json:"discount_amount"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(16,2);" json:"grand_total"`

	PaymentMethod string `gorm:"size:32;default:cod" json:"payment_method"`
	Status        string `gorm:"size:32;default:pending" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// OrderItem is a frozen copy of one cart line at submission time, not a live
// reference back to the cart.
type OrderItem struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID     string          `gorm:"size:36;index;not null" json:"order_id"`
	ProductID   string          `gorm:"size:64;not null" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Image       string          `gorm:"size:512" json:"image,omitempty"`
	Qty         int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);" json:"price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(16,2);" json:"subtotal"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
