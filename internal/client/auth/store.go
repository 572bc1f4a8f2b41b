package auth

import (
	"context"
	"fmt"

	"github.com/iudanet/lifetracker/internal/client/storage"
	"github.com/iudanet/lifetracker/internal/crypto"
)

// метки AES-GCM: токены нельзя подменить друг другом
const (
	labelAccessToken  = "lifetracker/access_token"
	labelRefreshToken = "lifetracker/refresh_token"
)

// Store шифрует токены перед сохранением в storage.AuthStorage
// и расшифровывает их при чтении. Остальные поля хранятся открыто:
// username и соль нужны для деривации ключа до расшифровки.
type Store struct {
	storage storage.AuthStorage
}

// NewStore creates an encrypting auth store.
func NewStore(s storage.AuthStorage) *Store {
	return &Store{storage: s}
}

// Save encrypts the tokens of auth with key and persists the record.
func (s *Store) Save(ctx context.Context, auth *storage.AuthData, key []byte) error {
	if auth == nil {
		return fmt.Errorf("auth data is nil")
	}

	access, err := crypto.SealString(auth.AccessToken, key, labelAccessToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}
	refresh, err := crypto.SealString(auth.RefreshToken, key, labelRefreshToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}

	sealed := *auth
	sealed.AccessToken = access
	sealed.RefreshToken = refresh
	return s.storage.SaveAuth(ctx, &sealed)
}

// Load reads the record and decrypts its tokens.
func (s *Store) Load(ctx context.Context, key []byte) (*storage.AuthData, error) {
	stored, err := s.storage.GetAuth(ctx)
	if err != nil {
		return nil, err
	}

	access, err := crypto.OpenString(stored.AccessToken, key, labelAccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt access token: %w", err)
	}
	refresh, err := crypto.OpenString(stored.RefreshToken, key, labelRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	auth := *stored
	auth.AccessToken = access
	auth.RefreshToken = refresh
	return &auth, nil
}

// Peek returns the stored record with tokens still encrypted.
func (s *Store) Peek(ctx context.Context) (*storage.AuthData, error) {
	return s.storage.GetAuth(ctx)
}

// Delete removes the stored record.
func (s *Store) Delete(ctx context.Context) error {
	return s.storage.DeleteAuth(ctx)
}
