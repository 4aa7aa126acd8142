package services

import (
	"context"
	"sync"
	"time"

	"petstore/internal/storage"

	"go.uber.org/zap"
)

// Session groups the client-state containers of one shopper.
type Session struct {
	ID       string
	Cart     *Cart
	Wishlist *Wishlist
}

type registryEntry struct {
	session  *Session
	lastUsed time.Time
}

// SessionRegistry is built once at start-up and hands out the containers of
// each session, hydrating them from storage on first use. Sessions left idle
// are dropped from memory by EvictIdle and reloaded by the next Get.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*registryEntry
	store    *storage.Adapter
	logger   *zap.Logger
}

// NewSessionRegistry creates a new SessionRegistry.
func NewSessionRegistry(store *storage.Adapter, logger *zap.Logger) *SessionRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRegistry{
		sessions: make(map[string]*registryEntry),
		store:    store,
		logger:   logger,
	}
}

// Get returns the session with id, creating it if needed.
func (r *SessionRegistry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[id]; ok {
		e.lastUsed = time.Now()
		return e.session
	}

	scoped := r.store.WithNamespace(id)
	logger := r.logger.With(zap.String("session_id", id))
	s := &Session{
		ID:       id,
		Cart:     NewCart(scoped, logger),
		Wishlist: NewWishlist(scoped, logger),
	}
	r.sessions[id] = &registryEntry{session: s, lastUsed: time.Now()}
	logger.Debug("session loaded",
		zap.Int("cart_lines", len(s.Cart.Items())),
		zap.Int("wishlist_items", s.Wishlist.Count()))
	return s
}

// Forget drops the in-memory containers of id. Persisted state is kept and
// reloaded by the next Get.
func (r *SessionRegistry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Purge drops the containers of id and deletes its persisted state.
func (r *SessionRegistry) Purge(id string) {
	r.Forget(id)
	scoped := r.store.WithNamespace(id)
	scoped.Remove(storage.CartKey)
	scoped.Remove(storage.WishlistKey)
}

// EvictIdle forgets every session last used before cutoff and returns how
// many were dropped.
func (r *SessionRegistry) EvictIdle(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// RunEviction calls EvictIdle every interval for sessions idle longer than
// idle, until ctx is done.
func (r *SessionRegistry) RunEviction(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.EvictIdle(now.Add(-idle)); n > 0 {
				r.logger.Debug("evicted idle sessions", zap.Int("count", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}

// Len returns the number of sessions held in memory.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
