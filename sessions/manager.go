// Package sessions owns the lifetime of per-session cart stores. Each browser
// session gets exactly one cart.Store, created on first use and rehydrated
// from persistence when available.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emekaobi/storefront-backend/cart"
	"github.com/emekaobi/storefront-backend/common/logger"
	"github.com/emekaobi/storefront-backend/models"
)

const saveTimeout = 3 * time.Second

// session pairs a cart with its last access time for idle eviction.
type session struct {
	store    *cart.Store
	lastSeen time.Time
}

// Manager hands out session-scoped cart stores. Safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*session
	persister Persister
}

// NewManager creates a Manager. persister may be nil, in which case carts
// live only in memory.
func NewManager(persister Persister) *Manager {
	return &Manager{
		sessions:  make(map[string]*session),
		persister: persister,
	}
}

// NewSessionID mints an opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Cart returns the store for the given session, creating and rehydrating it
// on first access. The same pointer is returned for the life of the session.
func (m *Manager) Cart(ctx context.Context, sessionID string) *cart.Store {
	m.mu.Lock()
	if s, ok := m.sessions[sessionID]; ok {
		s.lastSeen = time.Now()
		m.mu.Unlock()
		return s.store
	}
	store := cart.NewStore()
	m.sessions[sessionID] = &session{store: store, lastSeen: time.Now()}
	m.mu.Unlock()

	if m.persister != nil {
		items, err := m.persister.Load(ctx, sessionID)
		if err != nil {
			logger.Log.Warn("Failed to load persisted cart",
				zap.String("session_id", sessionID), zap.Error(err))
		} else if len(items) > 0 {
			store.Replace(items)
		}

		// Write-behind: every mutation is persisted best-effort.
		store.Subscribe(func(items []models.CartItem) {
			saveCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()
			if err := m.persister.Save(saveCtx, sessionID, items); err != nil {
				logger.Log.Warn("Failed to persist cart",
					zap.String("session_id", sessionID), zap.Error(err))
			}
		})
	}

	return store
}

// EvictIdle forgets in-memory carts not touched within maxIdle. Persisted
// copies are untouched, so an evicted session rehydrates from Redis on its
// next request. Returns the number of carts evicted.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Drop forgets the session's cart in memory and persistence. Used when a
// session is explicitly ended.
func (m *Manager) Drop(ctx context.Context, sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if m.persister != nil {
		if err := m.persister.Delete(ctx, sessionID); err != nil {
			logger.Log.Warn("Failed to delete persisted cart",
				zap.String("session_id", sessionID), zap.Error(err))
		}
	}
}
