package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/attarhouse/storefront/app/models"
	"github.com/attarhouse/storefront/app/repositories"
	"github.com/attarhouse/storefront/app/utils/calc"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError carries the field-level failures from the checkout form so
// the handler can surface them inline without a remote call having happened.
type ValidationError struct {
	Errs validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form validation failed: %v", e.Errs)
}

// CheckoutForm is the customer-facing order form. Payment is always cash on
// delivery, so no payment fields exist.
type CheckoutForm struct {
	Name      string `json:"name" validate:"required,min=2"`
	Phone     string `json:"phone" validate:"required,min=6"`
	Address   string `json:"address" validate:"required,min=10"`
	Notes     string `json:"notes"`
	PromoCode string `json:"promo_code"`
}

// CheckoutService turns a cart plus customer details into a persisted order:
// validate locally, fetch a fresh order number, insert the snapshot. The cart
// is cleared only after the insert succeeds; any earlier failure leaves cart
// and form state intact so the shopper can retry.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	promoSvc  *PromoService
	validate  *validator.Validate
	timeout   time.Duration
}

func NewCheckoutService(orderRepo repositories.OrderRepository, promoSvc *PromoService, timeout time.Duration) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		promoSvc:  promoSvc,
		validate:  validator.New(),
		timeout:   timeout,
	}
}

func (s *CheckoutService) Submit(ctx context.Context, sess *CartSession, form CheckoutForm) (*models.Order, error) {
	if err := s.validate.Struct(&form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, &ValidationError{Errs: verrs}
		}
		return nil, fmt.Errorf("failed to validate checkout form: %w", err)
	}

	items := sess.Cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].LineTotal())
	}

	promoCode, promoResult := s.resolvePromo(ctx, sess, form.PromoCode)
	discountPercent := decimal.Zero
	if promoResult.IsValid {
		discountPercent = promoResult.DiscountPercent
	}
	totals := calc.ComputeTotals(subtotal, discountPercent)

	orderCode, err := s.generateOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	order := &models.Order{
		OrderCode:       orderCode,
		OrderDate:       time.Now(),
		CustomerName:    form.Name,
		Phone:           form.Phone,
		Address:         form.Address,
		Notes:           form.Notes,
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		DiscountAmount:  totals.DiscountAmount,
		GrandTotal:      totals.FinalTotal,
		PaymentMethod:   models.PaymentMethodCOD,
		Status:          models.OrderStatusPending,
	}
	if promoResult.IsValid && promoCode != "" {
		order.PromoCode = &promoCode
	}

	order.OrderItems = make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID:   item.ID,
			ProductName: item.Name,
			Image:       item.Image,
			Qty:         item.Qty,
			Price:       item.Price,
			Subtotal:    item.LineTotal(),
		})
	}

	if err := s.insertOrder(ctx, order); err != nil {
		// The generated order number stays unused; order codes are not a
		// gapless sequence, so nothing needs reclaiming.
		return nil, fmt.Errorf("failed to submit order %s: %w", orderCode, err)
	}

	sess.Cart.Clear()
	sess.Promo.Reset()

	return order, nil
}

// resolvePromo reuses the discount already validated for this exact code; a
// code edited after validation arrives here un-applied and is re-checked. A
// lookup failure downgrades to no discount rather than blocking the order.
func (s *CheckoutService) resolvePromo(ctx context.Context, sess *CartSession, formCode string) (string, models.PromoResult) {
	code := strings.TrimSpace(formCode)
	if code == "" {
		return "", models.PromoResult{DiscountPercent: decimal.Zero}
	}

	appliedCode, applied := sess.Promo.Applied()
	if applied.IsValid && appliedCode == code {
		return code, applied
	}

	result, err := s.promoSvc.Validate(ctx, code)
	if err != nil {
		log.Printf("CheckoutService.resolvePromo: promo check failed for %q, continuing without discount: %v", code, err)
	}
	return code, result
}

func (s *CheckoutService) generateOrderNumber(ctx context.Context) (string, error) {
	code, err := s.tryGenerate(ctx)
	if err == nil {
		return code, nil
	}

	log.Printf("CheckoutService.generateOrderNumber: retrying after error: %v", err)
	return s.tryGenerate(ctx)
}

func (s *CheckoutService) tryGenerate(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.orderRepo.GenerateOrderNumber(ctx)
}

func (s *CheckoutService) insertOrder(ctx context.Context, order *models.Order) error {
	err := s.tryInsert(ctx, order)
	if err == nil {
		return nil
	}

	log.Printf("CheckoutService.insertOrder: retrying order %s after error: %v", order.OrderCode, err)
	return s.tryInsert(ctx, order)
}

func (s *CheckoutService) tryInsert(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.orderRepo.Create(ctx, order)
}
