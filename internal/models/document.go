package models

import "time"

// Document представляет агрегированный документ пользователя:
// ключ слайса -> значение слайса. Значения в JSON-совместимом виде
// (map[string]any, []any, float64, string, bool, nil).
type Document map[string]any

// Keys returns the document keys that belong to the closed slice set,
// in canonical slice order.
func (d Document) Keys() []SliceKey {
	keys := make([]SliceKey, 0, len(d))
	for _, k := range SliceKeys() {
		if _, ok := d[string(k)]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Clone returns a shallow copy of the document map.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Record is the remote representation of a user's state.
type Record struct {
	UpdatedAt time.Time `json:"updatedAt"`
	State     Document  `json:"state"`
}
