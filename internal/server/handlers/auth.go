package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/lifetracker/internal/crypto"
	"github.com/iudanet/lifetracker/internal/models"
	"github.com/iudanet/lifetracker/internal/server/storage"
	"github.com/iudanet/lifetracker/internal/validation"
	"github.com/iudanet/lifetracker/pkg/api"
)

var (
	errBadBody         = requestError(http.StatusBadRequest, "invalid request body")
	errBadCredentials  = requestError(http.StatusUnauthorized, "invalid credentials")
	errBadRefreshToken = requestError(http.StatusUnauthorized, "invalid refresh token")
	errRefreshExpired  = requestError(http.StatusUnauthorized, "refresh token expired")
	errUsernameTaken   = requestError(http.StatusConflict, "username already taken")
)

const msgRefreshTokenRequired = "refresh_token is required"

// AuthHandler обрабатывает регистрацию, вход и ротацию токенов
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	jwtConfig    JWTConfig
	now          func() time.Time
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		jwtConfig:    jwtConfig,
		now:          time.Now,
	}
}

// Register обрабатывает POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	resp, err := h.register(r)
	reply(h.logger, w, r, resp, http.StatusCreated, err)
}

// GetSalt обрабатывает GET /api/v1/auth/salt/{username}
func (h *AuthHandler) GetSalt(w http.ResponseWriter, r *http.Request) {
	resp, err := h.salt(r)
	reply(h.logger, w, r, resp, http.StatusOK, err)
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	resp, err := h.login(r)
	reply(h.logger, w, r, resp, http.StatusOK, err)
}

// Refresh обрабатывает POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	resp, err := h.refresh(r)
	reply(h.logger, w, r, resp, http.StatusOK, err)
}

// Logout обрабатывает POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	reply(h.logger, w, r, nil, http.StatusNoContent, h.logout(r))
}

func (h *AuthHandler) register(r *http.Request) (*api.RegisterResponse, error) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, errBadBody.with(err)
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, requestError(http.StatusBadRequest, err.Error())
	}
	switch {
	case req.AuthKeyHash == "":
		return nil, requestError(http.StatusBadRequest, "auth_key_hash is required")
	case req.PublicSalt == "":
		return nil, requestError(http.StatusBadRequest, "public_salt is required")
	}

	// в базе лежит только argon2id от присланного хеша
	credential, err := crypto.HashCredential(req.AuthKeyHash)
	if err != nil {
		return nil, internalError("hash credential", err)
	}

	user := &models.User{
		ID:          uuid.NewString(),
		Username:    req.Username,
		AuthKeyHash: credential,
		PublicSalt:  req.PublicSalt,
		CreatedAt:   h.now(),
	}
	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, errUsernameTaken
		}
		return nil, internalError("create user", err)
	}

	h.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))
	return &api.RegisterResponse{UserID: user.ID, Message: "User registered successfully"}, nil
}

func (h *AuthHandler) salt(r *http.Request) (*api.SaltResponse, error) {
	username := r.PathValue("username")
	if username == "" {
		return nil, requestError(http.StatusBadRequest, "username is required")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, requestError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userStorage.GetUserByUsername(r.Context(), username)
	switch {
	case errors.Is(err, storage.ErrUserNotFound):
		return nil, requestError(http.StatusNotFound, "user not found")
	case err != nil:
		return nil, internalError("get user", err)
	}
	return &api.SaltResponse{PublicSalt: user.PublicSalt}, nil
}

func (h *AuthHandler) login(r *http.Request) (*api.TokenResponse, error) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, errBadBody.with(err)
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, requestError(http.StatusBadRequest, err.Error())
	}
	if req.AuthKeyHash == "" {
		return nil, requestError(http.StatusBadRequest, "auth_key_hash is required")
	}

	user, err := h.userStorage.GetUserByUsername(ctx, req.Username)
	switch {
	case errors.Is(err, storage.ErrUserNotFound):
		// неизвестный пользователь неотличим от неверного ключа
		return nil, errBadCredentials.with(err)
	case err != nil:
		return nil, internalError("get user", err)
	}

	if err := crypto.VerifyCredential(req.AuthKeyHash, user.AuthKeyHash); err != nil {
		if errors.Is(err, crypto.ErrInvalidCredential) {
			return nil, errBadCredentials.with(err)
		}
		return nil, internalError("verify credential", err)
	}

	resp, err := h.issueTokens(r, user)
	if err != nil {
		return nil, err
	}
	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, h.now()); err != nil {
		h.logger.WarnContext(ctx, "failed to update last login", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))
	return resp, nil
}

// refresh погашает предъявленный refresh token и выдаёт новую пару
func (h *AuthHandler) refresh(r *http.Request) (*api.TokenResponse, error) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, errBadBody.with(err)
	}
	if req.RefreshToken == "" {
		return nil, requestError(http.StatusUnauthorized, msgRefreshTokenRequired)
	}

	stored, err := h.tokenStorage.GetRefreshToken(ctx, req.RefreshToken)
	switch {
	case errors.Is(err, storage.ErrTokenNotFound):
		return nil, errBadRefreshToken.with(err)
	case err != nil:
		return nil, internalError("get refresh token", err)
	}
	if stored.IsExpired(h.now()) {
		return nil, errRefreshExpired
	}

	// NotFound здесь значит, что параллельный запрос уже погасил этот токен
	if err := h.tokenStorage.DeleteRefreshToken(ctx, req.RefreshToken); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil, errBadRefreshToken.with(err)
		}
		h.logger.WarnContext(ctx, "failed to delete old refresh token", slog.Any("error", err))
	}

	user, err := h.userStorage.GetUserByID(ctx, stored.UserID)
	switch {
	case errors.Is(err, storage.ErrUserNotFound):
		return nil, errBadRefreshToken.with(err)
	case err != nil:
		return nil, internalError("get user", err)
	}

	resp, err := h.issueTokens(r, user)
	if err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "tokens rotated", slog.String("user_id", user.ID))
	return resp, nil
}

// logout отзывает только предъявленный refresh token, другие устройства
// остаются в системе. Access token к этому моменту может быть просрочен,
// владения refresh token достаточно.
func (h *AuthHandler) logout(r *http.Request) error {
	ctx := r.Context()

	var req api.LogoutRequest
	if err := decodeJSON(r, &req); err != nil {
		return errBadBody.with(err)
	}
	if req.RefreshToken == "" {
		return requestError(http.StatusBadRequest, msgRefreshTokenRequired)
	}

	err := h.tokenStorage.DeleteRefreshToken(ctx, req.RefreshToken)
	switch {
	case errors.Is(err, storage.ErrTokenNotFound):
		h.logger.DebugContext(ctx, "logout with unknown refresh token")
	case err != nil:
		return internalError("delete refresh token", err)
	default:
		h.logger.InfoContext(ctx, "refresh token revoked")
	}
	return nil
}

func (h *AuthHandler) issueTokens(r *http.Request, user *models.User) (*api.TokenResponse, error) {
	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		return nil, internalError("generate access token", err)
	}
	refreshToken, expiresAt, err := GenerateRefreshToken(h.jwtConfig)
	if err != nil {
		return nil, internalError("generate refresh token", err)
	}

	err = h.tokenStorage.SaveRefreshToken(r.Context(), &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		CreatedAt: h.now(),
	})
	if err != nil {
		return nil, internalError("save refresh token", err)
	}

	return &api.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		ExpiresIn:    expiresIn,
	}, nil
}
