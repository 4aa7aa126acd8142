// Package storage persists client state as JSON values in a key-value
// repository. It is best-effort: failures are logged and never returned.
package storage

import (
	"encoding/json"
	"errors"

	"petstore/internal/repositories"

	"go.uber.org/zap"
)

// Keys under which client state is stored.
const (
	CartKey     = "petstore_cart"
	WishlistKey = "petstore_wishlist"
)

// DefaultMaxValueBytes matches the usual browser localStorage quota.
const DefaultMaxValueBytes = 5 << 20

// DefaultNamespace is used when an adapter is not scoped to a session.
const DefaultNamespace = "default"

// Adapter reads and writes JSON values in one namespace of a KeyValueRepository.
type Adapter struct {
	repo          repositories.KeyValueRepository
	namespace     string
	maxValueBytes int
	logger        *zap.Logger
}

// NewAdapter creates an Adapter for the default namespace. A maxValueBytes
// of 0 or less selects DefaultMaxValueBytes.
func NewAdapter(repo repositories.KeyValueRepository, maxValueBytes int, logger *zap.Logger) *Adapter {
	if maxValueBytes <= 0 {
		maxValueBytes = DefaultMaxValueBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		repo:          repo,
		namespace:     DefaultNamespace,
		maxValueBytes: maxValueBytes,
		logger:        logger,
	}
}

// WithNamespace returns a copy of the adapter scoped to namespace.
func (a *Adapter) WithNamespace(namespace string) *Adapter {
	scoped := *a
	scoped.namespace = namespace
	scoped.logger = a.logger.With(zap.String("namespace", namespace))
	return &scoped
}

// Namespace returns the namespace the adapter writes to.
func (a *Adapter) Namespace() string {
	return a.namespace
}

// Load returns the value stored under key, or fallback when the key is
// missing, unreadable or not valid JSON for T.
func Load[T any](a *Adapter, key string, fallback T) T {
	raw, err := a.repo.Get(a.namespace, key)
	if err != nil {
		if errors.Is(err, repositories.ErrKeyNotFound) {
			a.logger.Debug("no stored value, using default", zap.String("key", key))
		} else {
			a.logger.Warn("failed to read stored value, using default", zap.String("key", key), zap.Error(err))
		}
		return fallback
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		a.logger.Warn("stored value is corrupt, using default", zap.String("key", key), zap.Error(err))
		return fallback
	}
	return value
}

// Save writes value under key. Errors are logged and swallowed.
func (a *Adapter) Save(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		a.logger.Error("failed to serialize value", zap.String("key", key), zap.Error(err))
		return
	}
	if len(raw) > a.maxValueBytes {
		a.logger.Error("storage quota exceeded, value not saved",
			zap.String("key", key),
			zap.Int("size", len(raw)),
			zap.Int("limit", a.maxValueBytes))
		return
	}
	if err := a.repo.Put(a.namespace, key, raw); err != nil {
		a.logger.Error("failed to save value", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes key. Errors are logged and swallowed.
func (a *Adapter) Remove(key string) {
	if err := a.repo.Delete(a.namespace, key); err != nil {
		a.logger.Error("failed to remove value", zap.String("key", key), zap.Error(err))
	}
}
