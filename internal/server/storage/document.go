package storage

import (
	"context"
	"time"

	"github.com/iudanet/lifetracker/internal/models"
)

//go:generate moq -out document_mock.go . DocumentStorage

// DocumentStorage persists one state document per user.
type DocumentStorage interface {
	// GetDocument returns the user's document
	// Returns ErrDocumentNotFound if nothing was written yet
	GetDocument(ctx context.Context, userID string) (*models.Record, error)

	// MergeDocument replaces the top-level keys present in state and keeps
	// every other key. The document is created if absent. updatedAt is the
	// server time of the write. Returns the merged document.
	MergeDocument(ctx context.Context, userID string, state models.Document, updatedAt time.Time) (*models.Record, error)
}
