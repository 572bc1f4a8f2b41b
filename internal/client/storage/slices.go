package storage

import "context"

//go:generate moq -out slicestorage_mock.go . SliceStorage

// SliceStorage defines the raw key-value contract of the local store.
// Each call is independently durable; there is no multi-key transaction.
type SliceStorage interface {
	// GetSlice returns the raw stored text for key
	// Returns ErrSliceNotFound if nothing is stored under key
	GetSlice(ctx context.Context, key string) (string, error)

	// SetSlice stores raw text under key, replacing any previous value
	SetSlice(ctx context.Context, key, raw string) error

	// RemoveSlice deletes key. Removing an absent key is not an error
	RemoveSlice(ctx context.Context, key string) error
}
