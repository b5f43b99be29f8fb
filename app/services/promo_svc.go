package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/attarhouse/storefront/app/models"
	"github.com/attarhouse/storefront/app/repositories"
	"github.com/shopspring/decimal"
)

// PromoService checks promo codes against the backend. A backend failure is
// never fatal to checkout: the caller gets a not-applied result plus the error
// for a user notice.
type PromoService struct {
	promoRepo repositories.PromoRepositoryImpl
	timeout   time.Duration
}

func NewPromoService(promoRepo repositories.PromoRepositoryImpl, timeout time.Duration) *PromoService {
	return &PromoService{
		promoRepo: promoRepo,
		timeout:   timeout,
	}
}

// Validate looks up a code. Empty or whitespace-only codes short-circuit to
// not-applied without touching the backend.
func (s *PromoService) Validate(ctx context.Context, code string) (models.PromoResult, error) {
	notApplied := models.PromoResult{IsValid: false, DiscountPercent: decimal.Zero}

	code = strings.TrimSpace(code)
	if code == "" {
		return notApplied, nil
	}

	promo, err := s.lookup(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrPromoNotFound) {
			return notApplied, nil
		}
		log.Printf("PromoService.Validate: lookup failed for code %q: %v", code, err)
		return notApplied, err
	}

	if !promo.Usable(time.Now()) {
		return notApplied, nil
	}

	return models.PromoResult{IsValid: true, DiscountPercent: promo.DiscountPercent}, nil
}

// lookup runs the remote call with a bounded deadline and one retry for
// transient failures.
func (s *PromoService) lookup(ctx context.Context, code string) (*models.PromoCode, error) {
	promo, err := s.tryLookup(ctx, code)
	if err == nil || errors.Is(err, repositories.ErrPromoNotFound) {
		return promo, err
	}

	log.Printf("PromoService.lookup: retrying code %q after error: %v", code, err)
	return s.tryLookup(ctx, code)
}

func (s *PromoService) tryLookup(ctx context.Context, code string) (*models.PromoCode, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.promoRepo.FindByCode(ctx, code)
}

// PromoSession tracks the discount applied to the current checkout attempt.
// Every edit of the code text bumps a generation counter and clears the
// applied discount, so a validation result for an older input can never
// overwrite the state for a newer one.
type PromoSession struct {
	mu      sync.Mutex
	gen     uint64
	code    string
	applied models.PromoResult
}

func NewPromoSession() *PromoSession {
	return &PromoSession{applied: models.PromoResult{DiscountPercent: decimal.Zero}}
}

// Edit records a new code value, immediately reverting any applied discount,
// and returns the generation token the eventual validation result must carry.
func (p *PromoSession) Edit(code string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	p.code = strings.TrimSpace(code)
	p.applied = models.PromoResult{DiscountPercent: decimal.Zero}
	return p.gen
}

// Apply installs a validation result. Results from a superseded generation
// are discarded and Apply reports false.
func (p *PromoSession) Apply(gen uint64, result models.PromoResult) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		return false
	}
	p.applied = result
	return true
}

// Applied returns the current code and its validation outcome.
func (p *PromoSession) Applied() (string, models.PromoResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.code, p.applied
}

// Reset clears all promo state, used after a successful checkout.
func (p *PromoSession) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	p.code = ""
	p.applied = models.PromoResult{DiscountPercent: decimal.Zero}
}
