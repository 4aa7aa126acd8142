package repositories

// KeyValueRepository defines the interface for namespaced key-value storage.
type KeyValueRepository interface {
	Get(namespace, key string) ([]byte, error)
	Put(namespace, key string, value []byte) error
	Delete(namespace, key string) error
}
