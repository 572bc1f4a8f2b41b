package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/lifetracker/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	return s, func() { _ = s.Close() }
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage) string {
	t.Helper()
	userID := uuid.New().String()
	err := s.CreateUser(ctx, &models.User{
		ID:          userID,
		Username:    "testuser_" + userID[:8],
		AuthKeyHash: "hash",
		PublicSalt:  "salt",
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	return userID
}

func TestNew_MigrationsApplied(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for _, table := range []string{"users", "refresh_tokens", "documents"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	version, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)
}

func TestNew_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "server.db")

	s, err := New(ctx, path)
	require.NoError(t, err)
	userID := createTestUser(t, ctx, s)
	_, err = s.MergeDocument(ctx, userID, models.Document{"theme": "dark"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// повторные миграции на существующей базе ничего не ломают
	s, err = New(ctx, path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	rec, err := s.GetDocument(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "dark", rec.State["theme"])
}

func TestStorage_Ping(t *testing.T) {
	s, cleanup := setupTestStorage(t)

	assert.NoError(t, s.Ping(context.Background()))

	cleanup()
	assert.Error(t, s.Ping(context.Background()), "closed database")
}
