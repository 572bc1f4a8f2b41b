package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/iudanet/lifetracker/internal/server/handlers"
	"github.com/iudanet/lifetracker/pkg/api"
)

var (
	errMissingToken = errors.New("missing token")
	errTokenFormat  = errors.New("invalid token format")
)

// AuthMiddleware пропускает запрос дальше только с валидным access token
// и кладёт пользователя из токена в контекст
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				logger.Warn("Rejected Authorization header", "error", err, "path", sanitizePath(r.URL.Path))
				unauthorized(w, err.Error())
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, token)
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				unauthorized(w, "invalid token")
				return
			}

			userID := claims.UserID()
			logger.Debug("User authenticated", "user_id", userID, "username", claims.Username)
			next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), userID, claims.Username)))
		})
	}
}

// bearerToken достаёт токен из "Authorization: Bearer <token>", схема без учёта регистра
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errTokenFormat
	}
	return token, nil
}

func unauthorized(w http.ResponseWriter, message string) {
	body, _ := json.Marshal(api.ErrorResponse{
		Error:   http.StatusText(http.StatusUnauthorized),
		Message: message,
	})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="lifetracker"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write(body)
}
