package models

import "time"

// KeyValueEntry is one persisted client-state value, scoped by namespace.
type KeyValueEntry struct {
	Namespace string `gorm:"primaryKey;type:varchar(64)"`
	Key       string `gorm:"column:entry_key;primaryKey;type:varchar(128)"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides the GORM default.
func (KeyValueEntry) TableName() string {
	return "kv_entries"
}
