// Package slices адаптирует сырое key-value хранилище клиента к слайсам
// состояния: смешанное представление (скаляры как сырой текст,
// структуры как JSON) и сборка агрегированного снимка.
package slices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/lifetracker/internal/client/storage"
	"github.com/iudanet/lifetracker/internal/codec"
	"github.com/iudanet/lifetracker/internal/models"
)

// Store reads and writes slice values through a storage.SliceStorage.
type Store struct {
	raw    storage.SliceStorage
	logger *slog.Logger
}

// NewStore creates a slice adapter over raw storage
func NewStore(raw storage.SliceStorage, logger *slog.Logger) *Store {
	return &Store{
		raw:    raw,
		logger: logger,
	}
}

// Encode returns the stored text form of a slice value.
// Strings are stored as-is; every other value is stored as JSON.
func Encode(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	data, err := codec.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode converts stored text back into a slice value according to the
// slice's representation kind. A structured slice that fails to parse is
// returned as the raw string together with the parse error.
func Decode(def models.SliceDef, raw string) (any, error) {
	if def.Kind == models.KindRaw {
		return raw, nil
	}
	v, err := codec.DecodeValue([]byte(raw))
	if err != nil {
		return raw, err
	}
	return v, nil
}

// Read returns the decoded value of key and whether it is present.
// Corrupt structured values come back as their raw text.
func (s *Store) Read(ctx context.Context, key string) (any, bool, error) {
	def, err := models.LookupSlice(key)
	if err != nil {
		return nil, false, err
	}

	raw, err := s.raw.GetSlice(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrSliceNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slice %q: %w", key, err)
	}

	v, err := Decode(def, raw)
	if err != nil {
		s.logger.Warn("Stored slice is not valid JSON, using raw text",
			"key", key,
			"error", err)
	}
	return v, true, nil
}

// ReadOrDefault returns the stored value or the slice default.
// Raw slices without a value return nil.
func (s *Store) ReadOrDefault(ctx context.Context, key string) (any, error) {
	v, ok, err := s.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		return v, nil
	}

	def, _ := models.LookupSlice(key)
	if def.Default == nil {
		return nil, nil
	}
	return def.Default(), nil
}

// Write encodes value with the mixed representation and stores it.
func (s *Store) Write(ctx context.Context, key string, value any) error {
	if _, err := models.LookupSlice(key); err != nil {
		return err
	}

	raw, err := Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode slice %q: %w", key, err)
	}

	if err := s.raw.SetSlice(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write slice %q: %w", key, err)
	}
	return nil
}

// Remove deletes the stored value of key.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := models.LookupSlice(key); err != nil {
		return err
	}
	if err := s.raw.RemoveSlice(ctx, key); err != nil {
		return fmt.Errorf("failed to remove slice %q: %w", key, err)
	}
	return nil
}

// ApplyDocument writes every known key of doc to the local store.
// Unknown keys are skipped. Returns the keys that were written.
func (s *Store) ApplyDocument(ctx context.Context, doc models.Document) ([]models.SliceKey, error) {
	for key := range doc {
		if !models.IsKnownSlice(key) {
			s.logger.Warn("Skipping unknown slice key from remote", "key", key)
		}
	}

	written := make([]models.SliceKey, 0, len(doc))
	for _, key := range doc.Keys() {
		if err := s.Write(ctx, string(key), doc[string(key)]); err != nil {
			return written, err
		}
		written = append(written, key)
	}
	return written, nil
}
