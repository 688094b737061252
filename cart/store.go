// Package cart implements the session-scoped shopping cart. A Store holds an
// ordered list of items unique by product id; quantity never drops below 1
// except through Remove or Clear, and the total is recomputed on every read.
package cart

import (
	"errors"
	"sync"

	"github.com/emekaobi/storefront-backend/models"
)

// ErrMissingProductID is returned by Add when the product has no id. The cart
// is left unchanged.
var ErrMissingProductID = errors.New("cart: product id is required")

// Observer is called with a snapshot of the items after every state change.
type Observer func(items []models.CartItem)

// Store is a mutable cart owned by a single shopper session. Constructed per
// session, never shared between sessions.
type Store struct {
	mu        sync.RWMutex
	items     []models.CartItem
	visible   bool
	observers []Observer
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers an observer notified after every mutation.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Add appends the product with quantity 1, or increments the quantity of the
// existing line with the same product id.
func (s *Store) Add(p models.Product) error {
	if p.ID == "" {
		return ErrMissingProductID
	}

	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, models.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			Quantity:  1,
		})
	}
	s.notifyLocked()
	return nil
}

// Increase bumps the quantity of the matching line by one. Unknown product ids
// are a no-op.
func (s *Store) Increase(productID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity++
			break
		}
	}
	s.notifyLocked()
}

// Decrease lowers the quantity of the matching line by one, flooring at 1.
// The line is never removed here; that is what Remove is for.
func (s *Store) Decrease(productID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			if s.items[i].Quantity > 1 {
				s.items[i].Quantity--
			}
			break
		}
	}
	s.notifyLocked()
}

// Remove deletes the matching line entirely. Unknown product ids are a no-op.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.notifyLocked()
}

// Clear resets the cart to empty.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.notifyLocked()
}

// Replace swaps in items loaded from persistence. Entries without a product
// id are dropped, duplicate ids are merged into the first entry, and
// quantities are floored at 1, so a corrupt blob can never break the cart's
// invariants.
func (s *Store) Replace(items []models.CartItem) {
	s.mu.Lock()
	s.items = nil
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		merged := false
		for i := range s.items {
			if s.items[i].ProductID == item.ProductID {
				s.items[i].Quantity += item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			s.items = append(s.items, item)
		}
	}
	s.notifyLocked()
}

// Items returns a snapshot copy of the current lines.
func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Total returns Σ unit price × quantity in kobo. Always derived from the
// current items, never cached.
func (s *Store) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, item := range s.items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// SetVisible toggles the cart panel visibility flag.
func (s *Store) SetVisible(visible bool) {
	s.mu.Lock()
	s.visible = visible
	s.mu.Unlock()
}

// Visible reports the cart panel visibility flag.
func (s *Store) Visible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible
}

func (s *Store) snapshot() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// notifyLocked snapshots state, releases the lock, and invokes observers, so
// an observer may call back into the store without deadlocking.
func (s *Store) notifyLocked() {
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	items := s.snapshot()
	s.mu.Unlock()

	for _, fn := range observers {
		fn(items)
	}
}
