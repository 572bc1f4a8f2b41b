package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/iudanet/lifetracker/pkg/api"
)

// maxBodySize ограничивает тело запроса; документ целиком помещается с запасом
const maxBodySize = 4 << 20

// decodeJSON читает тело запроса в v
func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	body, err := json.MarshalNoEscape(data)
	if err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logger.Debug("failed to write response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// apiError несёт код и сообщение для клиента; cause попадает только в лог
type apiError struct {
	cause   error
	message string
	op      string
	status  int
}

func requestError(status int, message string) *apiError {
	return &apiError{status: status, message: message}
}

// internalError скрывает cause от клиента за общим 500
func internalError(op string, cause error) *apiError {
	return &apiError{status: http.StatusInternalServerError, message: "internal server error", op: op, cause: cause}
}

// with возвращает копию с причиной, общие значения не меняются
func (e *apiError) with(cause error) *apiError {
	cp := *e
	cp.cause = cause
	return &cp
}

func (e *apiError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *apiError) Unwrap() error {
	return e.cause
}

// reply пишет body со status, либо ответ об ошибке. body == nil даёт пустой ответ.
func reply(logger *slog.Logger, w http.ResponseWriter, r *http.Request, body any, status int, err error) {
	if err == nil {
		if body == nil {
			w.WriteHeader(status)
			return
		}
		sendJSON(logger, w, body, status)
		return
	}

	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = internalError(r.Pattern, err)
	}

	ctx := r.Context()
	if apiErr.status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request failed",
			slog.String("op", apiErr.op),
			slog.Any("error", apiErr.cause))
	} else {
		attrs := []any{slog.String("reason", apiErr.message)}
		if apiErr.cause != nil {
			attrs = append(attrs, slog.Any("error", apiErr.cause))
		}
		logger.WarnContext(ctx, "request rejected", attrs...)
	}
	sendError(logger, w, apiErr.message, apiErr.status)
}
