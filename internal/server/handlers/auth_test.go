package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/lifetracker/internal/crypto"
	"github.com/iudanet/lifetracker/internal/models"
	"github.com/iudanet/lifetracker/internal/server/storage"
	"github.com/iudanet/lifetracker/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// userDB - moq-мок UserStorage поверх map username -> User
type userDB struct {
	*storage.UserStorageMock
	rows map[string]*models.User
}

func newUserDB(rows map[string]*models.User) *userDB {
	db := &userDB{rows: rows}
	db.UserStorageMock = &storage.UserStorageMock{
		CreateUserFunc: func(ctx context.Context, user *models.User) error {
			if _, taken := db.rows[user.Username]; taken {
				return storage.ErrUserAlreadyExists
			}
			db.rows[user.Username] = user
			return nil
		},
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if user, ok := db.rows[username]; ok {
				return user, nil
			}
			return nil, storage.ErrUserNotFound
		},
		GetUserByIDFunc: func(ctx context.Context, userID string) (*models.User, error) {
			for _, user := range db.rows {
				if user.ID == userID {
					return user, nil
				}
			}
			return nil, storage.ErrUserNotFound
		},
		UpdateLastLoginFunc: func(ctx context.Context, userID string, lastLogin time.Time) error {
			return nil
		},
	}
	return db
}

// failLookups ломает оба способа поиска пользователя
func (db *userDB) failLookups(err error) {
	db.GetUserByUsernameFunc = func(context.Context, string) (*models.User, error) { return nil, err }
	db.GetUserByIDFunc = func(context.Context, string) (*models.User, error) { return nil, err }
}

// tokenDB - moq-мок TokenStorage поверх map token -> RefreshToken
type tokenDB struct {
	*storage.TokenStorageMock
	rows map[string]*models.RefreshToken
}

func newTokenDB(rows map[string]*models.RefreshToken) *tokenDB {
	db := &tokenDB{rows: rows}
	db.TokenStorageMock = &storage.TokenStorageMock{
		SaveRefreshTokenFunc: func(ctx context.Context, token *models.RefreshToken) error {
			db.rows[token.Token] = token
			return nil
		},
		GetRefreshTokenFunc: func(ctx context.Context, token string) (*models.RefreshToken, error) {
			if rt, ok := db.rows[token]; ok {
				return rt, nil
			}
			return nil, storage.ErrTokenNotFound
		},
		DeleteRefreshTokenFunc: func(ctx context.Context, token string) error {
			if _, ok := db.rows[token]; !ok {
				return storage.ErrTokenNotFound
			}
			delete(db.rows, token)
			return nil
		},
	}
	return db
}

func (db *tokenDB) saved() []*models.RefreshToken {
	var out []*models.RefreshToken
	for _, call := range db.SaveRefreshTokenCalls() {
		out = append(out, call.Token)
	}
	return out
}

func (db *tokenDB) deleted() []string {
	var out []string
	for _, call := range db.DeleteRefreshTokenCalls() {
		out = append(out, call.Token)
	}
	return out
}

func failingSave(err error) func(context.Context, *models.RefreshToken) error {
	return func(context.Context, *models.RefreshToken) error { return err }
}

func failingDelete(err error) func(context.Context, string) error {
	return func(context.Context, string) error { return err }
}

var testJWTConfig = JWTConfig{
	Secret:          []byte("test-secret-key-that-is-long-enough"),
	AccessTokenTTL:  15 * time.Minute,
	RefreshTokenTTL: 30 * 24 * time.Hour,
}

// storedUser возвращает пользователя, чей сохранённый credential
// соответствует authKeyHash
func storedUser(t *testing.T, authKeyHash string) *models.User {
	t.Helper()
	credential, err := crypto.HashCredential(authKeyHash)
	require.NoError(t, err)
	return &models.User{
		ID:          "user123",
		Username:    "testuser",
		AuthKeyHash: credential,
		PublicSalt:  "salt123",
	}
}

func newTestAuthHandler(users map[string]*models.User, tokens map[string]*models.RefreshToken) (*AuthHandler, *userDB, *tokenDB) {
	if users == nil {
		users = make(map[string]*models.User)
	}
	if tokens == nil {
		tokens = make(map[string]*models.RefreshToken)
	}
	userStore, tokenStore := newUserDB(users), newTokenDB(tokens)
	return NewAuthHandler(setupTestLogger(), userStore, tokenStore, testJWTConfig), userStore, tokenStore
}

func jsonRequest(t *testing.T, method, path string, v any) *http.Request {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler, userStorage, _ := newTestAuthHandler(nil, nil)

	req := jsonRequest(t, http.MethodPost, "/api/v1/auth/register", api.RegisterRequest{
		Username:    "testuser",
		AuthKeyHash: "hash123",
		PublicSalt:  "salt123",
	})
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response api.RegisterResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response.UserID)

	user := userStorage.rows["testuser"]
	require.NotNil(t, user)
	assert.Equal(t, response.UserID, user.ID)
	assert.Equal(t, "salt123", user.PublicSalt)
	// хеш от клиента не хранится в открытом виде
	assert.NotEqual(t, "hash123", user.AuthKeyHash)
	assert.NoError(t, crypto.VerifyCredential("hash123", user.AuthKeyHash))
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	handler, _, _ := newTestAuthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("{invalid")))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     api.RegisterRequest
		wantMsg string
	}{
		{
			name:    "short username",
			req:     api.RegisterRequest{Username: "ab", AuthKeyHash: "hash", PublicSalt: "salt"},
			wantMsg: "at least",
		},
		{
			name:    "invalid characters",
			req:     api.RegisterRequest{Username: "test-user!", AuthKeyHash: "hash", PublicSalt: "salt"},
			wantMsg: "can only contain",
		},
		{
			name:    "missing auth key hash",
			req:     api.RegisterRequest{Username: "testuser", PublicSalt: "salt"},
			wantMsg: "auth_key_hash is required",
		},
		{
			name:    "missing public salt",
			req:     api.RegisterRequest{Username: "testuser", AuthKeyHash: "hash"},
			wantMsg: "public_salt is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, userStorage, _ := newTestAuthHandler(nil, nil)

			w := httptest.NewRecorder()
			handler.Register(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/register", tt.req))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
			assert.Empty(t, userStorage.rows)
			assert.Empty(t, userStorage.CreateUserCalls())
		})
	}
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	handler, _, _ := newTestAuthHandler(map[string]*models.User{
		"testuser": {ID: "existing", Username: "testuser"},
	}, nil)

	w := httptest.NewRecorder()
	handler.Register(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/register", api.RegisterRequest{
		Username:    "testuser",
		AuthKeyHash: "hash123",
		PublicSalt:  "salt123",
	}))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "username already taken")
}

func TestAuthHandler_Register_StorageError(t *testing.T) {
	handler, userStorage, _ := newTestAuthHandler(nil, nil)
	userStorage.CreateUserFunc = func(context.Context, *models.User) error { return errors.New("database error") }

	w := httptest.NewRecorder()
	handler.Register(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/register", api.RegisterRequest{
		Username:    "testuser",
		AuthKeyHash: "hash123",
		PublicSalt:  "salt123",
	}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database error", "internal details are not leaked")
}

func TestAuthHandler_GetSalt_Success(t *testing.T) {
	handler, _, _ := newTestAuthHandler(map[string]*models.User{
		"testuser": {ID: "user123", Username: "testuser", PublicSalt: "salt123"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/salt/testuser", nil)
	req.SetPathValue("username", "testuser")
	w := httptest.NewRecorder()
	handler.GetSalt(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response api.SaltResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "salt123", response.PublicSalt)
}

func TestAuthHandler_GetSalt_Errors(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		getErr     error
		wantStatus int
	}{
		{name: "empty username", username: "", wantStatus: http.StatusBadRequest},
		{name: "invalid username", username: "a!", wantStatus: http.StatusBadRequest},
		{name: "user not found", username: "nobody", wantStatus: http.StatusNotFound},
		{name: "db error", username: "testuser", getErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, userStorage, _ := newTestAuthHandler(nil, nil)
			if tt.getErr != nil {
				userStorage.failLookups(tt.getErr)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/salt/"+tt.username, nil)
			req.SetPathValue("username", tt.username)
			w := httptest.NewRecorder()
			handler.GetSalt(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler, _, tokenStorage := newTestAuthHandler(map[string]*models.User{
		"testuser": storedUser(t, "hash123"),
	}, nil)

	w := httptest.NewRecorder()
	handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username:    "testuser",
		AuthKeyHash: "hash123",
	}))

	assert.Equal(t, http.StatusOK, w.Code)

	var response api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, "user123", response.UserID)
	assert.Equal(t, int64(15*60), response.ExpiresIn)

	claims, err := ValidateAccessToken(testJWTConfig, response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID())
	assert.Equal(t, "testuser", claims.Username)

	require.Len(t, tokenStorage.saved(), 1)
	assert.Equal(t, "user123", tokenStorage.saved()[0].UserID)
	assert.Equal(t, response.RefreshToken, tokenStorage.saved()[0].Token)
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	handler, _, _ := newTestAuthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_EmptyFields(t *testing.T) {
	handler, _, _ := newTestAuthHandler(nil, nil)

	w := httptest.NewRecorder()
	handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{Username: "testuser"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "auth_key_hash is required")
}

func TestAuthHandler_Login_UserNotFound(t *testing.T) {
	handler, _, _ := newTestAuthHandler(nil, nil)

	w := httptest.NewRecorder()
	handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username:    "nonexistent",
		AuthKeyHash: "hash123",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler, _, tokenStorage := newTestAuthHandler(map[string]*models.User{
		"testuser": storedUser(t, "hash123"),
	}, nil)

	w := httptest.NewRecorder()
	handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username:    "testuser",
		AuthKeyHash: "wrong-hash",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
	assert.Empty(t, tokenStorage.saved())
}

func TestAuthHandler_Login_MalformedStoredCredential(t *testing.T) {
	handler, _, _ := newTestAuthHandler(map[string]*models.User{
		"testuser": {ID: "user123", Username: "testuser", AuthKeyHash: "plain"},
	}, nil)

	w := httptest.NewRecorder()
	handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username:    "testuser",
		AuthKeyHash: "plain",
	}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandler_Login_UpdateLastLoginError(t *testing.T) {
	handler, userStorage, _ := newTestAuthHandler(map[string]*models.User{
		"testuser": storedUser(t, "hash123"),
	}, nil)
	userStorage.UpdateLastLoginFunc = func(context.Context, string, time.Time) error {
		return errors.New("update failed")
	}

	w := httptest.NewRecorder()
	handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username:    "testuser",
		AuthKeyHash: "hash123",
	}))

	// ошибка last_login не мешает входу
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Login_SaveTokenError(t *testing.T) {
	handler, _, tokenStorage := newTestAuthHandler(map[string]*models.User{
		"testuser": storedUser(t, "hash123"),
	}, nil)
	tokenStorage.SaveRefreshTokenFunc = failingSave(errors.New("save failed"))

	w := httptest.NewRecorder()
	handler.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username:    "testuser",
		AuthKeyHash: "hash123",
	}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func validRefreshToken(token string) map[string]*models.RefreshToken {
	return map[string]*models.RefreshToken{
		token: {
			Token:     token,
			UserID:    "user123",
			ExpiresAt: time.Now().Add(24 * time.Hour),
			CreatedAt: time.Now(),
		},
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	oldRefreshToken := "old-refresh-token"
	handler, _, tokenStorage := newTestAuthHandler(
		map[string]*models.User{"testuser": storedUser(t, "hash123")},
		validRefreshToken(oldRefreshToken),
	)

	w := httptest.NewRecorder()
	handler.Refresh(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/refresh", api.RefreshRequest{RefreshToken: oldRefreshToken}))

	assert.Equal(t, http.StatusOK, w.Code)

	var response api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEqual(t, oldRefreshToken, response.RefreshToken)
	assert.Equal(t, "user123", response.UserID)

	assert.Contains(t, tokenStorage.deleted(), oldRefreshToken)
	assert.Len(t, tokenStorage.saved(), 1)
}

func TestAuthHandler_Refresh_TokenReuse(t *testing.T) {
	oldRefreshToken := "old-refresh-token"
	handler, _, _ := newTestAuthHandler(
		map[string]*models.User{"testuser": storedUser(t, "hash123")},
		validRefreshToken(oldRefreshToken),
	)

	w := httptest.NewRecorder()
	handler.Refresh(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/refresh", api.RefreshRequest{RefreshToken: oldRefreshToken}))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.Refresh(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/refresh", api.RefreshRequest{RefreshToken: oldRefreshToken}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh_Errors(t *testing.T) {
	tests := []struct {
		name       string
		tokens     map[string]*models.RefreshToken
		token      string
		setup      func(u *userDB, ts *tokenDB)
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "empty token",
			token:      "",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "refresh_token is required",
		},
		{
			name:       "unknown token",
			token:      "unknown",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid refresh token",
		},
		{
			name: "expired token",
			tokens: map[string]*models.RefreshToken{
				"expired": {Token: "expired", UserID: "user123", ExpiresAt: time.Now().Add(-time.Hour)},
			},
			token:      "expired",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "refresh token expired",
		},
		{
			name:   "storage error",
			tokens: validRefreshToken("token"),
			token:  "token",
			setup: func(u *userDB, ts *tokenDB) {
				ts.GetRefreshTokenFunc = func(context.Context, string) (*models.RefreshToken, error) { return nil, errors.New("db down") }
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "user lookup error",
			tokens: validRefreshToken("token"),
			token:  "token",
			setup: func(u *userDB, ts *tokenDB) {
				u.failLookups(errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "save new token error",
			tokens: validRefreshToken("token"),
			token:  "token",
			setup: func(u *userDB, ts *tokenDB) {
				ts.SaveRefreshTokenFunc = failingSave(errors.New("save failed"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, userStorage, tokenStorage := newTestAuthHandler(
				map[string]*models.User{"testuser": storedUser(t, "hash123")},
				tt.tokens,
			)
			if tt.setup != nil {
				tt.setup(userStorage, tokenStorage)
			}

			w := httptest.NewRecorder()
			handler.Refresh(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/refresh", api.RefreshRequest{RefreshToken: tt.token}))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				assert.Contains(t, w.Body.String(), tt.wantMsg)
			}
		})
	}
}

func TestAuthHandler_Refresh_DeleteOldTokenError(t *testing.T) {
	handler, _, tokenStorage := newTestAuthHandler(
		map[string]*models.User{"testuser": storedUser(t, "hash123")},
		validRefreshToken("token"),
	)
	tokenStorage.DeleteRefreshTokenFunc = failingDelete(errors.New("delete failed"))

	w := httptest.NewRecorder()
	handler.Refresh(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/refresh", api.RefreshRequest{RefreshToken: "token"}))

	// сбой удаления старого токена логируется, новая пара выдаётся
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Logout_RevokesOnlyPresentedToken(t *testing.T) {
	tokens := validRefreshToken("device-1")
	tokens["device-2"] = &models.RefreshToken{Token: "device-2", UserID: "user123", ExpiresAt: time.Now().Add(time.Hour)}
	handler, _, tokenStorage := newTestAuthHandler(nil, tokens)

	w := httptest.NewRecorder()
	handler.Logout(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/logout", api.LogoutRequest{RefreshToken: "device-1"}))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"device-1"}, tokenStorage.deleted())
	assert.Contains(t, tokenStorage.rows, "device-2")
}

func TestAuthHandler_Logout_UnknownTokenIsIdempotent(t *testing.T) {
	handler, _, _ := newTestAuthHandler(nil, nil)

	w := httptest.NewRecorder()
	handler.Logout(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/logout", api.LogoutRequest{RefreshToken: "gone"}))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthHandler_Logout_Errors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		handler, _, _ := newTestAuthHandler(nil, nil)
		w := httptest.NewRecorder()
		handler.Logout(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/logout", api.LogoutRequest{}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		handler, _, _ := newTestAuthHandler(nil, nil)
		w := httptest.NewRecorder()
		handler.Logout(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", bytes.NewReader([]byte("{"))))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage error", func(t *testing.T) {
		handler, _, tokenStorage := newTestAuthHandler(nil, validRefreshToken("token"))
		tokenStorage.DeleteRefreshTokenFunc = failingDelete(errors.New("db down"))
		w := httptest.NewRecorder()
		handler.Logout(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/logout", api.LogoutRequest{RefreshToken: "token"}))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestJWT_RoundTrip(t *testing.T) {
	token, expiresIn, err := GenerateAccessToken(testJWTConfig, "user123", "testuser")
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := ValidateAccessToken(testJWTConfig, token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID())
	assert.Equal(t, "user123", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestJWT_Rejects(t *testing.T) {
	other := testJWTConfig
	other.Secret = []byte("another-secret-key-that-is-long-enough")
	foreign, _, err := GenerateAccessToken(other, "user123", "testuser")
	require.NoError(t, err)

	expiredCfg := testJWTConfig
	expiredCfg.AccessTokenTTL = -time.Minute
	expired, _, err := GenerateAccessToken(expiredCfg, "user123", "testuser")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": foreign,
		"expired":      expired,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateAccessToken(testJWTConfig, token)
			assert.Error(t, err)
		})
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	a, expiresAt, err := GenerateRefreshToken(testJWTConfig)
	require.NoError(t, err)
	b, _, err := GenerateRefreshToken(testJWTConfig)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.WithinDuration(t, time.Now().Add(testJWTConfig.RefreshTokenTTL), expiresAt, time.Minute)
}

func TestJWT_RequiresSubject(t *testing.T) {
	token, _, err := GenerateAccessToken(testJWTConfig, "", "testuser")
	require.NoError(t, err)

	_, err = ValidateAccessToken(testJWTConfig, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_UniqueTokenIDs(t *testing.T) {
	a, _, err := GenerateAccessToken(testJWTConfig, "user123", "testuser")
	require.NoError(t, err)
	b, _, err := GenerateAccessToken(testJWTConfig, "user123", "testuser")
	require.NoError(t, err)

	ca, err := ValidateAccessToken(testJWTConfig, a)
	require.NoError(t, err)
	cb, err := ValidateAccessToken(testJWTConfig, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}
