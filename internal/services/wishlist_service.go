package services

import (
	"sync"

	"petstore/internal/models"
	"petstore/internal/storage"

	"go.uber.org/zap"
)

// Wishlist owns the saved products of one shopping session. It has set
// semantics by product ID. Observers must not mutate the wishlist they
// observe from inside the callback.
type Wishlist struct {
	mu    sync.RWMutex
	items []models.WishlistEntry

	store     *storage.Adapter
	observers observers[[]models.WishlistEntry]
	logger    *zap.Logger
}

// NewWishlist creates a wishlist hydrated from store.
func NewWishlist(store *storage.Adapter, logger *zap.Logger) *Wishlist {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Wishlist{
		store:  store,
		logger: logger,
	}

	stored := storage.Load(store, storage.WishlistKey, []models.WishlistEntry{})
	w.items = make([]models.WishlistEntry, 0, len(stored))
	for _, p := range stored {
		if p.ID == "" || w.indexLocked(p.ID) >= 0 {
			continue
		}
		w.items = append(w.items, p)
	}
	return w
}

// AddToWishlist saves product. Adding a product twice has no effect.
func (w *Wishlist) AddToWishlist(product models.Product) {
	w.mutate(func() bool {
		if w.indexLocked(product.ID) >= 0 {
			return false
		}
		w.items = append(w.items, product)
		return true
	})
}

// RemoveFromWishlist removes productID if it is saved.
func (w *Wishlist) RemoveFromWishlist(productID string) {
	w.mutate(func() bool {
		i := w.indexLocked(productID)
		if i < 0 {
			return false
		}
		w.items = append(w.items[:i], w.items[i+1:]...)
		return true
	})
}

// ClearWishlist removes every saved product.
func (w *Wishlist) ClearWishlist() {
	w.mutate(func() bool {
		if len(w.items) == 0 {
			return false
		}
		w.items = []models.WishlistEntry{}
		return true
	})
}

func (w *Wishlist) mutate(fn func() bool) {
	w.mu.Lock()
	if !fn() {
		w.mu.Unlock()
		return
	}
	snapshot := w.snapshotLocked()
	w.store.Save(storage.WishlistKey, snapshot)

	w.observers.dispatch.Lock()
	w.mu.Unlock()
	defer w.observers.dispatch.Unlock()
	w.observers.notify(snapshot)
}

// IsInWishlist reports whether productID is saved.
func (w *Wishlist) IsInWishlist(productID string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.indexLocked(productID) >= 0
}

// Items returns a copy of the saved products in the order they were added.
func (w *Wishlist) Items() []models.WishlistEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshotLocked()
}

// Count returns the number of saved products.
func (w *Wishlist) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items)
}

// Subscribe registers fn to be called with the saved products after every change.
func (w *Wishlist) Subscribe(fn func([]models.WishlistEntry)) (unsubscribe func()) {
	return w.observers.subscribe(fn)
}

func (w *Wishlist) snapshotLocked() []models.WishlistEntry {
	snapshot := make([]models.WishlistEntry, len(w.items))
	copy(snapshot, w.items)
	return snapshot
}

func (w *Wishlist) indexLocked(productID string) int {
	for i := range w.items {
		if w.items[i].ID == productID {
			return i
		}
	}
	return -1
}
