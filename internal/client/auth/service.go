// Package auth управляет входом пользователя: регистрация и логин через
// сервер, зашифрованное хранение токенов и выдача сессии движку синхронизации.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/iudanet/lifetracker/internal/client/storage"
	"github.com/iudanet/lifetracker/internal/client/sync"
	"github.com/iudanet/lifetracker/internal/crypto"
	"github.com/iudanet/lifetracker/internal/validation"
	pkgapi "github.com/iudanet/lifetracker/pkg/api"
)

// ErrWrongPassword - master password не подходит к сохранённой сессии
var ErrWrongPassword = errors.New("master password does not match the stored session")

// refreshMargin - токен обновляется заранее, чтобы не истечь посреди pull
const refreshMargin = 30 * time.Second

//go:generate moq -out authapi_mock.go . AuthAPI

// AuthAPI - серверные методы авторизации
type AuthAPI interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	GetSalt(ctx context.Context, username string) (*pkgapi.SaltResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// Status describes the stored session without decrypting it.
type Status struct {
	ExpiresAt time.Time
	Username  string
	UserID    string
	Expired   bool
}

// Service предоставляет функции авторизации
type Service struct {
	api    AuthAPI
	store  *Store
	logger *slog.Logger
	now    func() time.Time
	params crypto.Params
	// refreshMu: refresh token одноразовый, обновлять его может только один вызов
	refreshMu gosync.Mutex
}

// NewService создает новый сервис авторизации
func NewService(api AuthAPI, authStorage storage.AuthStorage, params crypto.Params, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		store:  NewStore(authStorage),
		params: params,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates the account on the server and signs in.
func (s *Service) Register(ctx context.Context, username, masterPassword string) (*sync.Session, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(masterPassword); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	// 1. Генерируем публичную соль
	salt, err := crypto.GenerateSaltBase64()
	if err != nil {
		return nil, err
	}

	// 2. Деривируем ключи и хешируем auth key
	keys, authKeyHash, err := s.derive(masterPassword, username, salt)
	if err != nil {
		return nil, err
	}

	// 3. Регистрируем
	if _, err := s.api.Register(ctx, pkgapi.RegisterRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
		PublicSalt:  salt,
	}); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	// 4. Сразу входим, чтобы получить токены
	return s.login(ctx, username, salt, keys, authKeyHash)
}

// Login authenticates against the server and stores the encrypted session.
func (s *Service) Login(ctx context.Context, username, masterPassword string) (*sync.Session, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(masterPassword); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	saltResp, err := s.api.GetSalt(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get salt: %w", err)
	}

	keys, authKeyHash, err := s.derive(masterPassword, username, saltResp.PublicSalt)
	if err != nil {
		return nil, err
	}
	return s.login(ctx, username, saltResp.PublicSalt, keys, authKeyHash)
}

func (s *Service) login(ctx context.Context, username, salt string, keys *crypto.Keys, authKeyHash string) (*sync.Session, error) {
	resp, err := s.api.Login(ctx, pkgapi.LoginRequest{Username: username, AuthKeyHash: authKeyHash})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	auth := &storage.AuthData{
		Username:     username,
		UserID:       resp.UserID,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		PublicSalt:   salt,
		ExpiresAt:    s.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}
	if err := s.store.Save(ctx, auth, keys.SessionKey); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Signed in", "username", username, "user_id", resp.UserID)
	return s.session(auth, keys.SessionKey), nil
}

func (s *Service) session(auth *storage.AuthData, key []byte) *sync.Session {
	return &sync.Session{
		UserID:      auth.UserID,
		AccessToken: auth.AccessToken,
		Renew:       s.renewer(key),
	}
}

// renewer обновляет токен сохранённой сессии по ключу, полученному при
// разблокировке. Если сохранённый токен уже не равен rejected, он
// возвращается без обращения к серверу.
func (s *Service) renewer(key []byte) sync.RenewFunc {
	return func(ctx context.Context, rejected string) (string, error) {
		s.refreshMu.Lock()
		defer s.refreshMu.Unlock()

		auth, err := s.store.Load(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to read session: %w", err)
		}
		if auth.AccessToken != rejected {
			return auth.AccessToken, nil
		}
		updated, err := s.refresh(ctx, auth, key)
		if err != nil {
			return "", err
		}
		return updated.AccessToken, nil
	}
}

// Session unlocks the stored session with the master password and
// refreshes the access token when it is about to expire. It returns
// nil, nil when no one is signed in.
func (s *Service) Session(ctx context.Context, masterPassword string) (*sync.Session, error) {
	stored, err := s.store.Peek(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	keys, err := crypto.DeriveKeysFromBase64Salt(masterPassword, stored.Username, stored.PublicSalt, s.params)
	if err != nil {
		return nil, fmt.Errorf("failed to derive keys: %w", err)
	}

	auth, err := s.store.Load(ctx, keys.SessionKey)
	if err != nil {
		if errors.Is(err, crypto.ErrDecrypt) {
			return nil, ErrWrongPassword
		}
		return nil, err
	}

	if s.now().Add(refreshMargin).Unix() >= auth.ExpiresAt {
		s.refreshMu.Lock()
		auth, err = s.refresh(ctx, auth, keys.SessionKey)
		s.refreshMu.Unlock()
		if err != nil {
			return nil, err
		}
	}

	return s.session(auth, keys.SessionKey), nil
}

func (s *Service) refresh(ctx context.Context, auth *storage.AuthData, key []byte) (*storage.AuthData, error) {
	resp, err := s.api.Refresh(ctx, auth.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	updated := *auth
	updated.AccessToken = resp.AccessToken
	updated.RefreshToken = resp.RefreshToken
	updated.ExpiresAt = s.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
	if err := s.store.Save(ctx, &updated, key); err != nil {
		return nil, fmt.Errorf("failed to save refreshed session: %w", err)
	}

	s.logger.Debug("Access token refreshed", "user_id", auth.UserID)
	return &updated, nil
}

// Logout removes the local session. With the master password the refresh
// token is also revoked on the server (best effort).
func (s *Service) Logout(ctx context.Context, masterPassword string) error {
	stored, err := s.store.Peek(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	if masterPassword != "" {
		s.revoke(ctx, stored, masterPassword)
	}

	// локальные данные удаляются всегда, даже если сервер недоступен
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}
	s.logger.Info("Signed out", "username", stored.Username)
	return nil
}

func (s *Service) revoke(ctx context.Context, stored *storage.AuthData, masterPassword string) {
	keys, err := crypto.DeriveKeysFromBase64Salt(masterPassword, stored.Username, stored.PublicSalt, s.params)
	if err != nil {
		s.logger.Warn("Skipping server logout", "error", err)
		return
	}
	auth, err := s.store.Load(ctx, keys.SessionKey)
	if err != nil {
		s.logger.Warn("Skipping server logout", "error", err)
		return
	}
	if err := s.api.Logout(ctx, auth.AccessToken, auth.RefreshToken); err != nil {
		s.logger.Warn("Failed to logout on server", "error", err)
	}
}

// Status reports who is signed in, or nil.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	stored, err := s.store.Peek(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	expiresAt := time.Unix(stored.ExpiresAt, 0)
	return &Status{
		Username:  stored.Username,
		UserID:    stored.UserID,
		ExpiresAt: expiresAt,
		Expired:   !s.now().Before(expiresAt),
	}, nil
}

func (s *Service) derive(masterPassword, username, salt string) (*crypto.Keys, string, error) {
	keys, err := crypto.DeriveKeysFromBase64Salt(masterPassword, username, salt, s.params)
	if err != nil {
		return nil, "", fmt.Errorf("failed to derive keys: %w", err)
	}
	authKeyHash, err := crypto.HashAuthKey(keys.AuthKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash auth key: %w", err)
	}
	return keys, authKeyHash, nil
}
