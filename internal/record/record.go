// Package record is the persistence port for the marketplace: named
// collections read and written whole, as JSON. This mirrors the
// key-value model the platform was built on — there are no partial
// updates and no cross-collection transactions, so every mutation is a
// read-modify-write of the master collection in memory followed by a
// full overwrite.
package record

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection names. The session pointers hold only the id of the active
// account; views are always recomputed from the master collections.
const (
	Stores        = "stores"
	Sellers       = "sellers"
	Products      = "products"
	CurrentStore  = "current_store"
	CurrentSeller = "current_seller"
)

// Store is the record store port. Get returns nil for an absent
// collection; Put overwrites the whole collection.
type Store interface {
	Get(ctx context.Context, collection string) ([]byte, error)
	Put(ctx context.Context, collection string, data []byte) error
}

// Load decodes a collection into a typed slice. An absent or empty
// collection loads as an empty slice.
func Load[T any](ctx context.Context, s Store, collection string) ([]T, error) {
	raw, err := s.Get(ctx, collection)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return items, nil
}

// Save overwrites a collection with the given items. A nil slice is
// written as an empty array so readers never see null.
func Save[T any](ctx context.Context, s Store, collection string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}
	return s.Put(ctx, collection, raw)
}

// SetCurrent stores the id of the active account for the given session
// pointer collection. An empty id clears the pointer.
func SetCurrent(ctx context.Context, s Store, collection, id string) error {
	if id == "" {
		return s.Put(ctx, collection, nil)
	}
	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.Put(ctx, collection, raw)
}

// Current returns the active account id for the given session pointer
// collection, or "" when no session is set.
func Current(ctx context.Context, s Store, collection string) (string, error) {
	raw, err := s.Get(ctx, collection)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("decode session pointer %s: %w", collection, err)
	}
	return id, nil
}
