package services

import (
	"sync"

	"petstore/internal/models"
	"petstore/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Cart owns the line items of one shopping session. Every mutation is
// persisted through the storage adapter and then announced to observers.
// Quantities below 1 never stay in the cart: updating a line to less than 1
// removes it. Quantities above models.MaxLineQuantity are capped.
//
// Observers are called in mutation order and must not mutate the cart they
// observe from inside the callback.
type Cart struct {
	mu     sync.RWMutex
	items  []models.CartLineItem
	isOpen bool

	store     *storage.Adapter
	observers observers[[]models.CartLineItem]
	logger    *zap.Logger
}

// NewCart creates a cart hydrated from store.
func NewCart(store *storage.Adapter, logger *zap.Logger) *Cart {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cart{
		store:  store,
		logger: logger,
	}
	c.items = c.hydrate()
	return c
}

func (c *Cart) hydrate() []models.CartLineItem {
	stored := storage.Load(c.store, storage.CartKey, []models.CartLineItem{})
	items := make([]models.CartLineItem, 0, len(stored))
	seen := make(map[string]int, len(stored))
	for _, item := range stored {
		if item.ID == "" || item.Quantity < 1 {
			c.logger.Warn("dropping invalid stored cart line", zap.String("product_id", item.ID), zap.Int("quantity", item.Quantity))
			continue
		}
		item.Quantity = capQuantity(item.Quantity)
		if i, ok := seen[item.ID]; ok {
			items[i].Quantity = capQuantity(items[i].Quantity + item.Quantity)
			continue
		}
		seen[item.ID] = len(items)
		items = append(items, item)
	}
	return items
}

// AddToCart adds quantity units of product. A quantity below 1 counts as 1.
// Adding a product that is already in the cart increases its quantity, up to
// models.MaxLineQuantity.
func (c *Cart) AddToCart(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	quantity = capQuantity(quantity)
	c.mutate(func(items []models.CartLineItem) ([]models.CartLineItem, bool) {
		if i := indexOfLine(items, product.ID); i >= 0 {
			next := capQuantity(items[i].Quantity + quantity)
			if next == items[i].Quantity {
				return items, false
			}
			items[i].Quantity = next
			return items, true
		}
		return append(items, models.CartLineItem{Product: product, Quantity: quantity}), true
	})
}

// UpdateQuantity sets the quantity of a line. A quantity below 1 removes the
// line; an unknown product is ignored.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.RemoveFromCart(productID)
		return
	}
	quantity = capQuantity(quantity)
	c.mutate(func(items []models.CartLineItem) ([]models.CartLineItem, bool) {
		i := indexOfLine(items, productID)
		if i < 0 || items[i].Quantity == quantity {
			return items, false
		}
		items[i].Quantity = quantity
		return items, true
	})
}

// RemoveFromCart deletes the line for productID if there is one.
func (c *Cart) RemoveFromCart(productID string) {
	c.mutate(func(items []models.CartLineItem) ([]models.CartLineItem, bool) {
		i := indexOfLine(items, productID)
		if i < 0 {
			return items, false
		}
		return append(items[:i], items[i+1:]...), true
	})
}

// RemoveLines takes the quantities in ordered out of the cart. A line whose
// quantity grew since ordered was read keeps the difference; lines added
// since then are left alone.
func (c *Cart) RemoveLines(ordered []models.CartLineItem) {
	c.mutate(func(items []models.CartLineItem) ([]models.CartLineItem, bool) {
		changed := false
		for _, line := range ordered {
			i := indexOfLine(items, line.ID)
			if i < 0 {
				continue
			}
			changed = true
			if rest := items[i].Quantity - line.Quantity; rest > 0 {
				items[i].Quantity = rest
				continue
			}
			items = append(items[:i], items[i+1:]...)
		}
		return items, changed
	})
}

// ClearCart removes every line.
func (c *Cart) ClearCart() {
	c.mutate(func(items []models.CartLineItem) ([]models.CartLineItem, bool) {
		if len(items) == 0 {
			return items, false
		}
		return []models.CartLineItem{}, true
	})
}

// mutate applies fn under the write lock and persists the result if fn
// reports a change. The dispatch lock is taken before the write lock is
// released so observers see snapshots in mutation order.
func (c *Cart) mutate(fn func([]models.CartLineItem) ([]models.CartLineItem, bool)) {
	c.mu.Lock()
	items, changed := fn(c.items)
	if !changed {
		c.mu.Unlock()
		return
	}
	c.items = items
	snapshot := c.snapshotLocked()
	c.store.Save(storage.CartKey, snapshot)

	c.observers.dispatch.Lock()
	c.mu.Unlock()
	defer c.observers.dispatch.Unlock()
	c.observers.notify(snapshot)
}

func (c *Cart) snapshotLocked() []models.CartLineItem {
	snapshot := make([]models.CartLineItem, len(c.items))
	copy(snapshot, c.items)
	return snapshot
}

// Items returns a copy of the cart lines in the order they were added.
func (c *Cart) Items() []models.CartLineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Line returns the line for productID.
func (c *Cart) Line(productID string) (models.CartLineItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := indexOfLine(c.items, productID); i >= 0 {
		return c.items[i], true
	}
	return models.CartLineItem{}, false
}

// TotalItems returns the sum of all quantities.
func (c *Cart) TotalItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price * quantity over all lines, unrounded.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsOpen reports whether the cart sidebar is visible.
func (c *Cart) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isOpen
}

// SetOpen shows or hides the cart sidebar.
func (c *Cart) SetOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = open
}

// ToggleVisibility flips the sidebar flag and returns the new value.
func (c *Cart) ToggleVisibility() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = !c.isOpen
	return c.isOpen
}

// Subscribe registers fn to be called with the cart lines after every change.
func (c *Cart) Subscribe(fn func([]models.CartLineItem)) (unsubscribe func()) {
	return c.observers.subscribe(fn)
}

func capQuantity(quantity int) int {
	return min(quantity, models.MaxLineQuantity)
}

func indexOfLine(items []models.CartLineItem, productID string) int {
	for i := range items {
		if items[i].ID == productID {
			return i
		}
	}
	return -1
}
