package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/lifetracker/internal/client/storage"
)

// GetSlice returns the raw text stored under key
func (s *Storage) GetSlice(ctx context.Context, key string) (string, error) {
	var raw string

	err := s.view(func(tx *bbolt.Tx) error {
		bucket, err := bucketOf(tx, bucketSlices)
		if err != nil {
			return err
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrSliceNotFound
		}

		// bbolt отдаёт память mmap, валидную только внутри транзакции
		raw = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}

	return raw, nil
}

// SetSlice stores raw text under key in its own transaction
func (s *Storage) SetSlice(ctx context.Context, key, raw string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket, err := bucketOf(tx, bucketSlices)
		if err != nil {
			return err
		}

		if err := bucket.Put([]byte(key), []byte(raw)); err != nil {
			return fmt.Errorf("failed to save slice %q: %w", key, err)
		}

		return nil
	})
}

// RemoveSlice deletes key; absent keys are ignored
func (s *Storage) RemoveSlice(ctx context.Context, key string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket, err := bucketOf(tx, bucketSlices)
		if err != nil {
			return err
		}

		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to remove slice %q: %w", key, err)
		}

		return nil
	})
}
