package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/lifetracker/internal/codec"
	"github.com/iudanet/lifetracker/internal/models"
	"github.com/iudanet/lifetracker/internal/server/storage"
)

// GetDocument returns the user's state document
func (s *Storage) GetDocument(ctx context.Context, userID string) (*models.Record, error) {
	query := `SELECT state, updated_at FROM documents WHERE user_id = ?`

	var (
		raw       string
		updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&raw, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	state, err := decodeState(raw)
	if err != nil {
		return nil, err
	}
	return &models.Record{State: state, UpdatedAt: updatedAt}, nil
}

// MergeDocument merges state into the stored document key by key.
// Чтение и запись идут в одной транзакции, параллельные merge не теряют ключи.
func (s *Storage) MergeDocument(ctx context.Context, userID string, state models.Document, updatedAt time.Time) (*models.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	merged := models.Document{}
	var raw string
	err = tx.QueryRowContext(ctx, `SELECT state FROM documents WHERE user_id = ?`, userID).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to read document: %w", err)
	default:
		if merged, err = decodeState(raw); err != nil {
			return nil, err
		}
	}

	for key, value := range state {
		merged[key] = value
	}

	data, err := codec.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	query := `
		INSERT INTO documents (user_id, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, query, userID, string(data), updatedAt.UTC()); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit document: %w", err)
	}
	return &models.Record{State: merged, UpdatedAt: updatedAt.UTC()}, nil
}

func decodeState(raw string) (models.Document, error) {
	var state models.Document
	if err := codec.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("stored document is corrupted: %w", err)
	}
	if state == nil {
		state = models.Document{}
	}
	return state, nil
}
