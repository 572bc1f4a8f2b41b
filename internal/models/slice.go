package models

import (
	"errors"
	"fmt"
)

// ErrUnknownSlice возвращается для ключа, которого нет в таблице слайсов
var ErrUnknownSlice = errors.New("unknown slice key")

// SliceKey идентифицирует один независимый срез состояния приложения
type SliceKey string

// Закрытый набор ключей. Значения совпадают с ключами, под которыми
// данные уже лежат у существующих пользователей, менять их нельзя.
const (
	SliceWeights       SliceKey = "weights"
	SliceWeightGoal    SliceKey = "weightGoal"
	SliceHabitsState   SliceKey = "habitsState"
	SliceGoalsState    SliceKey = "goalsState"
	SliceJournalState  SliceKey = "journalState"
	SliceShoppingState SliceKey = "shoppingState"
	SliceTodoState     SliceKey = "todoState"
	SliceTheme         SliceKey = "theme"
)

// Kind describes how a slice is represented in the local store.
type Kind int

const (
	// KindRaw slices are plain scalars kept as their raw text form.
	KindRaw Kind = iota
	// KindStructured slices are kept as serialized JSON.
	KindStructured
)

// String returns a human readable kind name
func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindStructured:
		return "structured"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// SliceDef статическое описание слайса
type SliceDef struct {
	// Default строит значение, которое показывается пользователю, если слайса
	// ещё нет в хранилище. Никогда не записывается и не синхронизируется.
	Default func() any
	Key     SliceKey
	Kind    Kind
}

var sliceTable = []SliceDef{
	{Key: SliceWeights, Kind: KindStructured, Default: func() any { return []any{} }},
	{Key: SliceWeightGoal, Kind: KindRaw},
	{Key: SliceHabitsState, Kind: KindStructured, Default: func() any {
		return map[string]any{
			"habits":          []any{},
			"completedByDate": map[string]any{},
			"ui":              map[string]any{"mode": "week"},
		}
	}},
	{Key: SliceGoalsState, Kind: KindStructured, Default: func() any {
		return map[string]any{"goals": []any{}}
	}},
	{Key: SliceJournalState, Kind: KindStructured, Default: func() any {
		return map[string]any{"entries": []any{}, "ui": map[string]any{"search": ""}}
	}},
	{Key: SliceShoppingState, Kind: KindStructured, Default: func() any {
		return map[string]any{"items": []any{}}
	}},
	{Key: SliceTodoState, Kind: KindStructured, Default: func() any {
		return map[string]any{"items": []any{}}
	}},
	{Key: SliceTheme, Kind: KindRaw},
}

var sliceIndex = func() map[SliceKey]SliceDef {
	idx := make(map[SliceKey]SliceDef, len(sliceTable))
	for _, s := range sliceTable {
		idx[s.Key] = s
	}
	return idx
}()

// Slices returns the fixed slice table in its canonical order.
func Slices() []SliceDef {
	out := make([]SliceDef, len(sliceTable))
	copy(out, sliceTable)
	return out
}

// SliceKeys returns all known slice keys in canonical order.
func SliceKeys() []SliceKey {
	keys := make([]SliceKey, 0, len(sliceTable))
	for _, s := range sliceTable {
		keys = append(keys, s.Key)
	}
	return keys
}

// LookupSlice возвращает описание слайса по ключу
// Возвращает ErrUnknownSlice, если ключ не из закрытого набора
func LookupSlice(key string) (SliceDef, error) {
	def, ok := sliceIndex[SliceKey(key)]
	if !ok {
		return SliceDef{}, fmt.Errorf("%w: %q", ErrUnknownSlice, key)
	}
	return def, nil
}

// IsKnownSlice reports whether key belongs to the closed slice set.
func IsKnownSlice(key string) bool {
	_, ok := sliceIndex[SliceKey(key)]
	return ok
}
