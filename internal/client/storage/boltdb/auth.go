package boltdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/iudanet/lifetracker/internal/client/storage"
)

// в bucket auth хранится одна запись: текущая сессия устройства
var currentSessionKey = []byte("current")

// SaveAuth replaces the stored session. Tokens arrive already sealed.
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	if auth == nil {
		return errors.New("auth data is nil")
	}
	data, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal auth data: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucketOf(tx, bucketAuth)
		if err != nil {
			return err
		}
		if err := b.Put(currentSessionKey, data); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}
		return nil
	})
}

// GetAuth returns the stored session or storage.ErrAuthNotFound.
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	var auth storage.AuthData

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucketOf(tx, bucketAuth)
		if err != nil {
			return err
		}
		data := b.Get(currentSessionKey)
		if data == nil {
			return storage.ErrAuthNotFound
		}
		// Unmarshal копирует данные, mmap-память дальше не нужна
		if err := json.Unmarshal(data, &auth); err != nil {
			return fmt.Errorf("failed to unmarshal auth data: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

// DeleteAuth forgets the session; storage.ErrAuthNotFound if none is stored
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucketOf(tx, bucketAuth)
		if err != nil {
			return err
		}
		if b.Get(currentSessionKey) == nil {
			return storage.ErrAuthNotFound
		}
		return b.Delete(currentSessionKey)
	})
}

// IsAuthenticated reports whether a session with an unexpired access token
// is stored. An expired one may still be refreshable.
func (s *Storage) IsAuthenticated(ctx context.Context) (bool, error) {
	auth, err := s.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return time.Now().Unix() < auth.ExpiresAt, nil
}
