package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attarhouse/storefront/app/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	GenerateOrderNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, order *models.Order) error
	FindByCode(ctx context.Context, orderCode string) (*models.Order, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

// GenerateOrderNumber mints a fresh ORD-YYYYMMDD-xxxxxxxx code and confirms it
// is unused. A generated number that never gets an order (insert failed, user
// gave up) is simply abandoned; order codes are not a gapless sequence.
func (r *gormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])

		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Order{}).
			Where("order_code = ?", code).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check order code uniqueness: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique order number")
}

func (r *gormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.OrderCode, err)
	}
	return nil
}

func (r *gormOrderRepository) FindByCode(ctx context.Context, orderCode string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		First(&order, "order_code = ?", orderCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}
