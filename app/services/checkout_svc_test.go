package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/attarhouse/storefront/app/models"
	"github.com/shopspring/decimal"
)

type mockOrderRepo struct {
	mu        sync.Mutex
	orders    []*models.Order
	genErr    error
	createErr error
	genCalls  int
}

func (m *mockOrderRepo) GenerateOrderNumber(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.genCalls++
	if m.genErr != nil {
		return "", m.genErr
	}
	return fmt.Sprintf("ORD-TEST-%04d", m.genCalls), nil
}

func (m *mockOrderRepo) Create(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockOrderRepo) FindByCode(ctx context.Context, orderCode string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.OrderCode == orderCode {
			return o, nil
		}
	}
	return nil, nil
}

func (m *mockOrderRepo) generateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.genCalls
}

func (m *mockOrderRepo) inserted() []*models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Order(nil), m.orders...)
}

func validForm() CheckoutForm {
	return CheckoutForm{
		Name:    "Ayesha Rahman",
		Phone:   "01712345678",
		Address: "House 12, Road 5, Dhanmondi, Dhaka",
		Notes:   "Call before delivery",
	}
}

func checkoutFixture(promoRepo *mockPromoRepo, orderRepo *mockOrderRepo) (*CheckoutService, *CartSession) {
	promoSvc := NewPromoService(promoRepo, time.Second)
	svc := NewCheckoutService(orderRepo, promoSvc, time.Second)
	sess := &CartSession{Cart: NewCartStore(), Promo: NewPromoSession()}
	return svc, sess
}

func TestSubmit_SuccessWithPromo(t *testing.T) {
	orderRepo := &mockOrderRepo{}
	svc, sess := checkoutFixture(newMockPromoRepo(tenPercent()), orderRepo)

	sess.Cart.AddItem(cartProduct("a", 250), 1)
	sess.Cart.AddItem(cartProduct("b", 100), 2)

	gen := sess.Promo.Edit("SAVE10")
	sess.Promo.Apply(gen, models.PromoResult{IsValid: true, DiscountPercent: decimal.NewFromInt(10)})

	form := validForm()
	form.PromoCode = "SAVE10"

	order, err := svc.Submit(context.Background(), sess, form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !order.Subtotal.Equal(decimal.NewFromInt(450)) {
		t.Errorf("expected subtotal 450, got %s", order.Subtotal)
	}
	if !order.DiscountAmount.Equal(decimal.NewFromInt(45)) {
		t.Errorf("expected discount 45, got %s", order.DiscountAmount)
	}
	if !order.GrandTotal.Equal(decimal.NewFromInt(405)) {
		t.Errorf("expected final total 405, got %s", order.GrandTotal)
	}
	if order.PromoCode == nil || *order.PromoCode != "SAVE10" {
		t.Errorf("expected promo code SAVE10 on the order, got %v", order.PromoCode)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("expected status pending, got %s", order.Status)
	}
	if order.PaymentMethod != models.PaymentMethodCOD {
		t.Errorf("expected cash on delivery, got %s", order.PaymentMethod)
	}
	if len(order.OrderItems) != 2 {
		t.Fatalf("expected 2 frozen line items, got %d", len(order.OrderItems))
	}

	if !sess.Cart.IsEmpty() {
		t.Error("expected the cart to be cleared on success")
	}
	if code, applied := sess.Promo.Applied(); code != "" || applied.IsValid {
		t.Error("expected the promo state to reset on success")
	}
	if len(orderRepo.inserted()) != 1 {
		t.Errorf("expected exactly one inserted order, got %d", len(orderRepo.inserted()))
	}
}

func TestSubmit_MissingAddressRejectedBeforeRemoteCalls(t *testing.T) {
	orderRepo := &mockOrderRepo{}
	svc, sess := checkoutFixture(newMockPromoRepo(), orderRepo)

	sess.Cart.AddItem(cartProduct("a", 250), 1)

	form := validForm()
	form.Address = ""

	_, err := svc.Submit(context.Background(), sess, form)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if orderRepo.generateCalls() != 0 {
		t.Errorf("expected no remote calls on a validation failure, got %d", orderRepo.generateCalls())
	}
	if sess.Cart.TotalItems() != 1 {
		t.Error("expected the cart to be untouched on a validation failure")
	}
}

func TestSubmit_EmptyCartRejected(t *testing.T) {
	orderRepo := &mockOrderRepo{}
	svc, sess := checkoutFixture(newMockPromoRepo(), orderRepo)

	_, err := svc.Submit(context.Background(), sess, validForm())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if orderRepo.generateCalls() != 0 {
		t.Errorf("expected no remote calls for an empty cart, got %d", orderRepo.generateCalls())
	}
}

func TestSubmit_InsertFailurePreservesCart(t *testing.T) {
	orderRepo := &mockOrderRepo{createErr: errors.New("insert failed")}
	svc, sess := checkoutFixture(newMockPromoRepo(), orderRepo)

	sess.Cart.AddItem(cartProduct("a", 250), 2)

	_, err := svc.Submit(context.Background(), sess, validForm())
	if err == nil {
		t.Fatal("expected the insert failure to surface")
	}

	// Order number generation succeeded, the insert did not: the cart stays
	// intact so the shopper can resubmit.
	if orderRepo.generateCalls() == 0 {
		t.Error("expected order number generation to have run")
	}
	if sess.Cart.TotalItems() != 2 {
		t.Error("expected the cart to survive an insert failure")
	}
	if len(orderRepo.inserted()) != 0 {
		t.Error("expected no persisted order")
	}
}

func TestSubmit_OrderNumberFailureRetriesOnce(t *testing.T) {
	orderRepo := &mockOrderRepo{genErr: errors.New("backend down")}
	svc, sess := checkoutFixture(newMockPromoRepo(), orderRepo)

	sess.Cart.AddItem(cartProduct("a", 250), 1)

	_, err := svc.Submit(context.Background(), sess, validForm())
	if err == nil {
		t.Fatal("expected an error when order number generation keeps failing")
	}
	if orderRepo.generateCalls() != 2 {
		t.Errorf("expected one retry (2 calls), got %d", orderRepo.generateCalls())
	}
	if sess.Cart.TotalItems() != 1 {
		t.Error("expected the cart to be untouched")
	}
}

func TestSubmit_EditedPromoCodeIsRevalidated(t *testing.T) {
	// SAVE10 was validated earlier, then the shopper edited the field to an
	// unknown code and submitted. The stale discount must not survive.
	orderRepo := &mockOrderRepo{}
	svc, sess := checkoutFixture(newMockPromoRepo(tenPercent()), orderRepo)

	sess.Cart.AddItem(cartProduct("a", 250), 1)

	gen := sess.Promo.Edit("SAVE10")
	sess.Promo.Apply(gen, models.PromoResult{IsValid: true, DiscountPercent: decimal.NewFromInt(10)})
	sess.Promo.Edit("SAVE99")

	form := validForm()
	form.PromoCode = "SAVE99"

	order, err := svc.Submit(context.Background(), sess, form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !order.DiscountAmount.IsZero() {
		t.Errorf("expected no discount for the edited code, got %s", order.DiscountAmount)
	}
	if order.PromoCode != nil {
		t.Errorf("expected no promo code on the order, got %q", *order.PromoCode)
	}
	if !order.GrandTotal.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected full price 250, got %s", order.GrandTotal)
	}
}

func TestSubmit_PromoBackendFailureDoesNotBlockOrder(t *testing.T) {
	promoRepo := newMockPromoRepo(tenPercent())
	promoRepo.err = errors.New("promo backend unreachable")
	orderRepo := &mockOrderRepo{}
	svc, sess := checkoutFixture(promoRepo, orderRepo)

	sess.Cart.AddItem(cartProduct("a", 250), 1)

	form := validForm()
	form.PromoCode = "SAVE10"

	order, err := svc.Submit(context.Background(), sess, form)
	if err != nil {
		t.Fatalf("a promo backend failure must not block checkout, got: %v", err)
	}
	if !order.DiscountAmount.IsZero() {
		t.Errorf("expected no discount when validation is unavailable, got %s", order.DiscountAmount)
	}
	if len(orderRepo.inserted()) != 1 {
		t.Error("expected the order to be placed anyway")
	}
}
