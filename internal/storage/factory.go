package storage

import (
	"fmt"
	"os"
)

// DefaultStoreKind resolves the backend from the PONDNET_STORE environment
// variable. An empty value selects the in-memory store.
func DefaultStoreKind() string {
	if kind := os.Getenv("PONDNET_STORE"); kind != "" {
		return kind
	}
	return "memory"
}

func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
