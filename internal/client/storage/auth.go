package storage

import "context"

//go:generate moq -out authstorage_mock.go . AuthStorage

// AuthStorage хранит текущую сессию устройства. Токены приходят уже
// зашифрованными сервисом auth; хранилище их не расшифровывает.
type AuthStorage interface {
	SaveAuth(ctx context.Context, auth *AuthData) error
	// GetAuth возвращает ErrAuthNotFound, если пользователь не входил
	GetAuth(ctx context.Context) (*AuthData, error)
	// DeleteAuth стирает сессию при выходе
	DeleteAuth(ctx context.Context) error
	// IsAuthenticated true, если сессия есть и ExpiresAt ещё не наступил
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData - сессия на диске. AccessToken и RefreshToken в хранилище
// лежат как base64 шифртекста под SessionKey, в памяти сервиса открытыми.
type AuthData struct {
	Username     string `json:"username"`
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	PublicSalt   string `json:"public_salt"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}
