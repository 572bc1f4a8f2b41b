package slices

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/lifetracker/internal/client/storage"
	"github.com/iudanet/lifetracker/internal/models"
)

// BuildSnapshot собирает агрегированный документ из всех известных слайсов.
// Отсутствующие слайсы в документ не попадают (не null), чтобы merge-запись
// не затирала значения, которых локально ещё нет. Слайс с битым JSON
// попадает в документ как сырая строка и не ломает остальные.
func (s *Store) BuildSnapshot(ctx context.Context) (models.Document, error) {
	doc := make(models.Document)

	for _, def := range models.Slices() {
		key := string(def.Key)

		raw, err := s.raw.GetSlice(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrSliceNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to read slice %q: %w", key, err)
		}

		v, err := Decode(def, raw)
		if err != nil {
			s.logger.Warn("Corrupt slice included as raw text",
				"key", key,
				"error", err)
		}
		doc[key] = v
	}

	return doc, nil
}
