// Package codec содержит каноническую JSON-сериализацию документов
// и отпечаток (fingerprint), по которому движок синхронизации узнаёт
// собственные записи, вернувшиеся через подписку.
package codec

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/zeebo/xxh3"
)

// Marshal encodes v as compact JSON without HTML escaping, the way a
// browser's JSON.stringify does. Map keys are emitted in sorted order,
// so equal documents always produce equal bytes.
func Marshal(v any) ([]byte, error) {
	data, err := json.MarshalNoEscape(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal: %w", err)
	}
	return nil
}

// DecodeValue parses a single JSON value into its generic form
// (map[string]any, []any, float64, string, bool or nil).
// Trailing data after the value is an error.
func DecodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("failed to decode value: trailing data")
	}
	return v, nil
}

// Normalize returns an independent copy of v converted to generic JSON
// types. Caller-owned maps and slices can be mutated afterwards without
// affecting the result.
func Normalize(v any) (any, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	return DecodeValue(data)
}

// Fingerprint identifies a serialized document. The zero value matches
// nothing.
type Fingerprint struct {
	sum  xxh3.Uint128
	size int
	set  bool
}

// FingerprintOf computes the fingerprint of a document's canonical
// serialization.
func FingerprintOf(v any) (Fingerprint, error) {
	data, err := Marshal(v)
	if err != nil {
		return Fingerprint{}, err
	}
	return FingerprintBytes(data), nil
}

// FingerprintBytes computes the fingerprint of already serialized data.
func FingerprintBytes(data []byte) Fingerprint {
	return Fingerprint{sum: xxh3.Hash128(data), size: len(data), set: true}
}

// IsZero reports whether the fingerprint was never set.
func (f Fingerprint) IsZero() bool {
	return !f.set
}

// Equal сравнивает отпечатки; пустой отпечаток не равен ничему
func (f Fingerprint) Equal(other Fingerprint) bool {
	if !f.set || !other.set {
		return false
	}
	return f.size == other.size && f.sum == other.sum
}

// String returns a short hex form for logging.
func (f Fingerprint) String() string {
	if !f.set {
		return "none"
	}
	return fmt.Sprintf("%016x%016x/%d", f.sum.Hi, f.sum.Lo, f.size)
}
