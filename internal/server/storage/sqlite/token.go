package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/lifetracker/internal/models"
	"github.com/iudanet/lifetracker/internal/server/storage"
)

// tokenKey - под этим ключом токен лежит в базе; утечка базы не даёт
// действующих refresh токенов
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// SaveRefreshToken stores a refresh token by its digest
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT OR REPLACE INTO refresh_tokens (token_hash, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		tokenKey(token.Token),
		token.UserID,
		token.ExpiresAt.UTC(),
		token.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken returns the stored token or ErrTokenNotFound
func (s *Storage) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `SELECT user_id, expires_at, created_at FROM refresh_tokens WHERE token_hash = ?`

	rt := &models.RefreshToken{Token: token}
	err := s.db.QueryRowContext(ctx, query, tokenKey(token)).Scan(&rt.UserID, &rt.ExpiresAt, &rt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return rt, nil
}

// DeleteRefreshToken revokes one token. Only one of several concurrent
// calls for the same token succeeds, the others get ErrTokenNotFound.
func (s *Storage) DeleteRefreshToken(ctx context.Context, token string) error {
	n, err := s.execCount(ctx, `DELETE FROM refresh_tokens WHERE token_hash = ?`, tokenKey(token))
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	if n == 0 {
		return storage.ErrTokenNotFound
	}
	return nil
}

// DeleteUserTokens revokes every token of the user
func (s *Storage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	n, err := s.execCount(ctx, `DELETE FROM refresh_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user tokens: %w", err)
	}
	return n, nil
}

// DeleteExpiredTokens removes tokens whose expiry is not after now
func (s *Storage) DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	n, err := s.execCount(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return n, nil
}
