package sqlite

import (
	"context"
	"fmt"
	gosync "sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/lifetracker/internal/models"
	"github.com/iudanet/lifetracker/internal/server/storage"
)

func TestDocumentStorage_GetDocument_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	rec, err := s.GetDocument(ctx, userID)
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
	assert.Nil(t, rec)
}

func TestDocumentStorage_MergeDocument_Create(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	state := models.Document{
		"theme":   "dark",
		"weights": []any{map[string]any{"date": "2024-05-01", "value": 80.5}},
	}
	merged, err := s.MergeDocument(ctx, userID, state, now)
	require.NoError(t, err)
	assert.Equal(t, state, merged.State)
	assert.True(t, now.Equal(merged.UpdatedAt))

	rec, err := s.GetDocument(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, state, rec.State)
	assert.True(t, now.Equal(rec.UpdatedAt))
}

func TestDocumentStorage_MergeDocument_KeepsAbsentKeys(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	_, err := s.MergeDocument(ctx, userID, models.Document{
		"theme":      "dark",
		"weightGoal": "180",
	}, time.Now())
	require.NoError(t, err)

	// вторая запись заменяет только свои ключи целиком
	_, err = s.MergeDocument(ctx, userID, models.Document{
		"weightGoal":    "175",
		"shoppingState": map[string]any{"items": []any{}},
	}, time.Now())
	require.NoError(t, err)

	rec, err := s.GetDocument(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.Document{
		"theme":         "dark",
		"weightGoal":    "175",
		"shoppingState": map[string]any{"items": []any{}},
	}, rec.State)
}

func TestDocumentStorage_MergeDocument_ReplacesNestedValueWhole(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	_, err := s.MergeDocument(ctx, userID, models.Document{
		"habitsState": map[string]any{"habits": []any{"run"}, "ui": map[string]any{"mode": "week"}},
	}, time.Now())
	require.NoError(t, err)

	_, err = s.MergeDocument(ctx, userID, models.Document{
		"habitsState": map[string]any{"habits": []any{}},
	}, time.Now())
	require.NoError(t, err)

	rec, err := s.GetDocument(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"habits": []any{}}, rec.State["habitsState"], "no field-level merge")
}

func TestDocumentStorage_MergeDocument_Isolation(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s)
	bob := createTestUser(t, ctx, s)

	_, err := s.MergeDocument(ctx, alice, models.Document{"theme": "dark"}, time.Now())
	require.NoError(t, err)

	_, err = s.GetDocument(ctx, bob)
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
}

func TestDocumentStorage_MergeDocument_UnknownUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.MergeDocument(ctx, uuid.New().String(), models.Document{"theme": "dark"}, time.Now())
	assert.Error(t, err, "foreign key on users")
}

func TestDocumentStorage_MergeDocument_Concurrent(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	keys := models.SliceKeys()

	var wg gosync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key models.SliceKey) {
			defer wg.Done()
			_, err := s.MergeDocument(ctx, userID, models.Document{string(key): fmt.Sprint(i)}, time.Now())
			assert.NoError(t, err)
		}(i, key)
	}
	wg.Wait()

	rec, err := s.GetDocument(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, rec.State, len(keys), "no merge lost a key")
}

func TestDocumentStorage_DeletedWithUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	_, err := s.MergeDocument(ctx, userID, models.Document{"theme": "dark"}, time.Now())
	require.NoError(t, err)

	_, err = s.DB().ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	require.NoError(t, err)

	_, err = s.GetDocument(ctx, userID)
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
}
