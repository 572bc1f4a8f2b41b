package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSlice(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		wantKind Kind
		wantErr  bool
	}{
		{name: "structured weights", key: "weights", wantKind: KindStructured},
		{name: "raw weight goal", key: "weightGoal", wantKind: KindRaw},
		{name: "raw theme", key: "theme", wantKind: KindRaw},
		{name: "structured todo", key: "todoState", wantKind: KindStructured},
		{name: "unknown key", key: "passwords", wantErr: true},
		{name: "empty key", key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := LookupSlice(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownSlice)
				assert.False(t, IsKnownSlice(tt.key))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, SliceKey(tt.key), def.Key)
			assert.Equal(t, tt.wantKind, def.Kind)
			assert.True(t, IsKnownSlice(tt.key))
		})
	}
}

func TestSliceKeys_ClosedSet(t *testing.T) {
	keys := SliceKeys()
	assert.Len(t, keys, 8)
	assert.Equal(t, SliceWeights, keys[0])
	assert.Equal(t, SliceTheme, keys[len(keys)-1])

	// Slices возвращает копию, изменения не влияют на таблицу
	s := Slices()
	s[0].Key = "mutated"
	assert.Equal(t, SliceWeights, Slices()[0].Key)
}

func TestSliceDefaults(t *testing.T) {
	for _, def := range Slices() {
		if def.Kind == KindRaw {
			assert.Nil(t, def.Default, "raw slice %s must not have a default", def.Key)
			continue
		}
		require.NotNil(t, def.Default, "structured slice %s needs a default", def.Key)

		// каждый вызов возвращает новое значение
		a := def.Default()
		b := def.Default()
		if m, ok := a.(map[string]any); ok {
			m["x"] = 1
			assert.NotContains(t, b.(map[string]any), "x")
		}
	}
}

func TestDocument_KeysAndClone(t *testing.T) {
	doc := Document{
		"theme":     "dark",
		"weights":   []any{},
		"unknown":   1.0,
		"todoState": map[string]any{"items": []any{}},
	}

	assert.Equal(t, []SliceKey{SliceWeights, SliceTodoState, SliceTheme}, doc.Keys())

	clone := doc.Clone()
	clone["theme"] = "light"
	assert.Equal(t, "dark", doc["theme"])
}

func TestRefreshToken_IsExpired(t *testing.T) {
	now := time.Now()
	tok := &RefreshToken{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, tok.IsExpired(now))
	assert.True(t, tok.IsExpired(now.Add(time.Minute)))
}
