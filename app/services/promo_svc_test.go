package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/attarhouse/storefront/app/models"
	"github.com/attarhouse/storefront/app/repositories"
	"github.com/shopspring/decimal"
)

type mockPromoRepo struct {
	mu     sync.Mutex
	promos map[string]*models.PromoCode
	err    error
	calls  int
}

func newMockPromoRepo(promos ...*models.PromoCode) *mockPromoRepo {
	m := &mockPromoRepo{promos: make(map[string]*models.PromoCode)}
	for _, p := range promos {
		m.promos[p.Code] = p
	}
	return m
}

func (m *mockPromoRepo) FindByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	promo, ok := m.promos[code]
	if !ok {
		return nil, repositories.ErrPromoNotFound
	}
	return promo, nil
}

func (m *mockPromoRepo) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func tenPercent() *models.PromoCode {
	return &models.PromoCode{
		ID:              "promo-1",
		Code:            "SAVE10",
		DiscountPercent: decimal.NewFromInt(10),
		Active:          true,
	}
}

func TestValidate_EmptyCodeSkipsRemoteCall(t *testing.T) {
	repo := newMockPromoRepo()
	svc := NewPromoService(repo, time.Second)

	for _, code := range []string{"", "   ", "\t"} {
		result, err := svc.Validate(context.Background(), code)
		if err != nil {
			t.Errorf("code %q: unexpected error: %v", code, err)
		}
		if result.IsValid {
			t.Errorf("code %q: expected not-applied result", code)
		}
	}

	if repo.callCount() != 0 {
		t.Errorf("expected no remote calls for blank codes, got %d", repo.callCount())
	}
}

func TestValidate_KnownCode(t *testing.T) {
	repo := newMockPromoRepo(tenPercent())
	svc := NewPromoService(repo, time.Second)

	result, err := svc.Validate(context.Background(), " SAVE10 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Fatal("expected a valid result")
	}
	if !result.DiscountPercent.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected 10%% discount, got %s", result.DiscountPercent)
	}
}

func TestValidate_UnknownCodeIsInvalidNotError(t *testing.T) {
	repo := newMockPromoRepo()
	svc := NewPromoService(repo, time.Second)

	result, err := svc.Validate(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("unknown code should not be an error, got: %v", err)
	}
	if result.IsValid {
		t.Error("expected an invalid result for an unknown code")
	}
}

func TestValidate_InactiveAndExpiredCodes(t *testing.T) {
	inactive := tenPercent()
	inactive.Active = false

	past := time.Now().Add(-time.Hour)
	expired := tenPercent()
	expired.Code = "OLD10"
	expired.ExpiresAt = &past

	repo := newMockPromoRepo(inactive, expired)
	svc := NewPromoService(repo, time.Second)

	for _, code := range []string{"SAVE10", "OLD10"} {
		result, err := svc.Validate(context.Background(), code)
		if err != nil {
			t.Errorf("code %q: unexpected error: %v", code, err)
		}
		if result.IsValid {
			t.Errorf("code %q: expected an invalid result", code)
		}
	}
}

func TestValidate_RemoteFailureDowngradesWithRetry(t *testing.T) {
	repo := newMockPromoRepo(tenPercent())
	repo.err = errors.New("backend unreachable")
	svc := NewPromoService(repo, time.Second)

	result, err := svc.Validate(context.Background(), "SAVE10")
	if err == nil {
		t.Fatal("expected the lookup error to be reported")
	}
	if result.IsValid {
		t.Error("a failed lookup must never apply a discount")
	}
	if repo.callCount() != 2 {
		t.Errorf("expected one retry (2 calls), got %d", repo.callCount())
	}
}

func TestPromoSession_EditResetsAppliedDiscount(t *testing.T) {
	sess := NewPromoSession()

	gen := sess.Edit("SAVE10")
	if !sess.Apply(gen, models.PromoResult{IsValid: true, DiscountPercent: decimal.NewFromInt(10)}) {
		t.Fatal("expected the result for the current generation to apply")
	}

	// The shopper edits the code: the old discount must vanish immediately,
	// before any new validation completes.
	sess.Edit("SAVE2")

	code, applied := sess.Applied()
	if code != "SAVE2" {
		t.Errorf("expected the edited code, got %q", code)
	}
	if applied.IsValid || !applied.DiscountPercent.IsZero() {
		t.Errorf("expected the discount to reset on edit, got %+v", applied)
	}
}

func TestPromoSession_StaleResultIsDiscarded(t *testing.T) {
	sess := NewPromoSession()

	staleGen := sess.Edit("SAVE10")
	freshGen := sess.Edit("SAVE20")

	if sess.Apply(staleGen, models.PromoResult{IsValid: true, DiscountPercent: decimal.NewFromInt(10)}) {
		t.Error("a result for a superseded generation must be discarded")
	}

	if !sess.Apply(freshGen, models.PromoResult{IsValid: true, DiscountPercent: decimal.NewFromInt(20)}) {
		t.Fatal("expected the fresh result to apply")
	}

	_, applied := sess.Applied()
	if !applied.DiscountPercent.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected the fresh 20%% discount, got %s", applied.DiscountPercent)
	}
}

func TestPromoSession_ResetClearsEverything(t *testing.T) {
	sess := NewPromoSession()
	gen := sess.Edit("SAVE10")
	sess.Apply(gen, models.PromoResult{IsValid: true, DiscountPercent: decimal.NewFromInt(10)})

	sess.Reset()

	code, applied := sess.Applied()
	if code != "" || applied.IsValid {
		t.Errorf("expected blank promo state after Reset, got %q %+v", code, applied)
	}
	if sess.Apply(gen, models.PromoResult{IsValid: true, DiscountPercent: decimal.NewFromInt(10)}) {
		t.Error("a pre-reset result must not apply after Reset")
	}
}
