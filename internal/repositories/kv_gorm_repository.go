package repositories

import (
	"errors"
	"fmt"
	"time"

	"petstore/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMKeyValueRepository is a GORM implementation of KeyValueRepository.
type GORMKeyValueRepository struct {
	db *gorm.DB
}

// NewGORMKeyValueRepository creates a new instance of GORMKeyValueRepository.
func NewGORMKeyValueRepository(db *gorm.DB) *GORMKeyValueRepository {
	return &GORMKeyValueRepository{
		db: db,
	}
}

// Get retrieves the value stored under namespace/key.
func (r *GORMKeyValueRepository) Get(namespace, key string) ([]byte, error) {
	var entry models.KeyValueEntry
	err := r.db.First(&entry, "namespace = ? AND entry_key = ?", namespace, key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s/%s: %w", namespace, key, ErrKeyNotFound)
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", namespace, key, err)
	}
	return entry.Value, nil
}

// Put inserts or replaces the value stored under namespace/key.
func (r *GORMKeyValueRepository) Put(namespace, key string, value []byte) error {
	entry := models.KeyValueEntry{
		Namespace: namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Delete removes namespace/key. Deleting a missing key is not an error.
func (r *GORMKeyValueRepository) Delete(namespace, key string) error {
	res := r.db.Delete(&models.KeyValueEntry{}, "namespace = ? AND entry_key = ?", namespace, key)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, res.Error)
	}
	return nil
}
