package services

import (
	"context"
	"log"
	"sync"

	"github.com/attarhouse/storefront/app/models"
	"github.com/shopspring/decimal"
)

// CartStore is the sole authority over one browsing session's line items.
// It is in-memory only; durability, if configured, lives behind the
// CartSnapshotter and never leaks into the mutation logic here.
type CartStore struct {
	mu    sync.Mutex
	items []models.CartItem
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddItem puts a product in the cart. Adding a product that is already
// present accumulates its quantity instead of creating a second line.
func (s *CartStore) AddItem(product models.CartProduct, qty int) {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Qty += qty
			return
		}
	}

	s.items = append(s.items, models.CartItem{
		ID:    product.ID,
		Name:  product.Name,
		Image: product.Image,
		Price: product.Price,
		Qty:   qty,
	})
}

// UpdateQuantity sets the quantity of a line item. A quantity of zero or less
// removes the line; an unknown id is a no-op.
func (s *CartStore) UpdateQuantity(id string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if qty <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Qty = qty
		}
		return
	}
}

// RemoveItem deletes a line item; absent ids are a no-op.
func (s *CartStore) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// TotalItems is the sum of quantities, not the count of distinct lines.
func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for i := range s.items {
		total += s.items[i].Qty
	}
	return total
}

// TotalPrice is the undiscounted subtotal over all lines.
func (s *CartStore) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for i := range s.items {
		total = total.Add(s.items[i].LineTotal())
	}
	return total
}

// Items returns a frozen copy of the line items in insertion order.
func (s *CartStore) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *CartStore) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

func (s *CartStore) restore(items []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.CartItem(nil), items...)
}

// CartSession bundles the per-session mutable state: the cart itself and the
// promo validation state attached to the current checkout attempt.
type CartSession struct {
	Cart  *CartStore
	Promo *PromoSession
}

// CartManager owns the live CartSessions, keyed by the cart session cookie id.
// Each browsing session gets an independent cart; nothing is shared across
// sessions.
type CartManager struct {
	mu        sync.Mutex
	sessions  map[string]*CartSession
	snapshots CartSnapshotter
}

// NewCartManager builds a manager. snapshots may be nil, in which case carts
// live only as long as the process.
func NewCartManager(snapshots CartSnapshotter) *CartManager {
	return &CartManager{
		sessions:  make(map[string]*CartSession),
		snapshots: snapshots,
	}
}

// Session returns the session for cartID, creating it on first sight. A new
// session is seeded from the snapshot store when one is configured.
func (m *CartManager) Session(ctx context.Context, cartID string) *CartSession {
	m.mu.Lock()
	if sess, ok := m.sessions[cartID]; ok {
		m.mu.Unlock()
		return sess
	}

	sess := &CartSession{
		Cart:  NewCartStore(),
		Promo: NewPromoSession(),
	}
	m.sessions[cartID] = sess
	m.mu.Unlock()

	if m.snapshots != nil {
		items, err := m.snapshots.Load(ctx, cartID)
		if err != nil {
			log.Printf("CartManager.Session: failed to load cart snapshot %s: %v", cartID, err)
		} else if len(items) > 0 {
			sess.Cart.restore(items)
		}
	}

	return sess
}

// SaveSnapshot persists the session's current items, best effort. Snapshot
// failures never surface to the shopper.
func (m *CartManager) SaveSnapshot(ctx context.Context, cartID string) {
	if m.snapshots == nil {
		return
	}

	sess := m.Session(ctx, cartID)
	items := sess.Cart.Items()

	var err error
	if len(items) == 0 {
		err = m.snapshots.Drop(ctx, cartID)
	} else {
		err = m.snapshots.Save(ctx, cartID, items)
	}
	if err != nil {
		log.Printf("CartManager.SaveSnapshot: failed to persist cart %s: %v", cartID, err)
	}
}
