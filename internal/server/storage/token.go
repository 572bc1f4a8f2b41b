package storage

import (
	"context"
	"time"

	"github.com/iudanet/lifetracker/internal/models"
)

//go:generate moq -out token_mock.go . TokenStorage

// TokenStorage хранит выданные refresh token. Методы принимают токен в
// открытом виде; как он лежит в базе, решает реализация.
type TokenStorage interface {
	// SaveRefreshToken заменяет запись с тем же токеном
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// GetRefreshToken и DeleteRefreshToken возвращают ErrTokenNotFound для неизвестного токена
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	// DeleteUserTokens отзывает все токены пользователя и возвращает их число
	DeleteUserTokens(ctx context.Context, userID string) (int, error)
	// DeleteExpiredTokens удаляет токены, истёкшие до now, и возвращает их число
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error)
}
