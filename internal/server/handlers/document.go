package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iudanet/lifetracker/internal/models"
	"github.com/iudanet/lifetracker/internal/server/hub"
	"github.com/iudanet/lifetracker/internal/server/storage"
	"github.com/iudanet/lifetracker/pkg/api"
)

var mergeTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "lifetracker_server_merge_total",
		Help: "The total number of merge writes applied to state documents",
	},
)

// параметры websocket-подписки
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// DocumentHandler serves the per-user state document: read, merge write
// and live subscription.
type DocumentHandler struct {
	logger   *slog.Logger
	storage  storage.DocumentStorage
	hub      *hub.Hub
	now      func() time.Time
	upgrader websocket.Upgrader
}

// NewDocumentHandler создает handler документа пользователя
func NewDocumentHandler(logger *slog.Logger, documents storage.DocumentStorage, h *hub.Hub) *DocumentHandler {
	return &DocumentHandler{
		logger:  logger,
		storage: documents,
		hub:     h,
		now:     time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Get обрабатывает GET /api/v1/users/{uid}/lifeTracker/state
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	rec, err := h.storage.GetDocument(r.Context(), userID)
	switch {
	case errors.Is(err, storage.ErrDocumentNotFound):
		reply(h.logger, w, r, nil, 0, requestError(http.StatusNotFound, "document not found"))
	case err != nil:
		reply(h.logger, w, r, nil, 0, internalError("get document", err))
	default:
		reply(h.logger, w, r, toResponse(rec), http.StatusOK, nil)
	}
}

// Merge обрабатывает PATCH /api/v1/users/{uid}/lifeTracker/state.
// Ключи верхнего уровня заменяются целиком, остальные сохраняются;
// updatedAt ставится часами сервера.
func (h *DocumentHandler) Merge(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	resp, err := h.merge(r, userID)
	reply(h.logger, w, r, resp, http.StatusOK, err)
}

func (h *DocumentHandler) merge(r *http.Request, userID string) (*api.DocumentResponse, error) {
	ctx := r.Context()

	var req api.MergeRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, errBadBody.with(err)
	}
	if req.State == nil {
		return nil, requestError(http.StatusBadRequest, "state is required")
	}

	// подписчики, включая автора записи, получают новое состояние в порядке коммитов
	rec, err := h.hub.Commit(userID, func() (*models.Record, error) {
		return h.storage.MergeDocument(ctx, userID, models.Document(req.State), h.now())
	})
	if err != nil {
		return nil, internalError("merge document", err)
	}
	mergeTotal.Inc()

	h.logger.DebugContext(ctx, "document merged",
		slog.String("user_id", userID),
		slog.Int("keys", len(req.State)))

	resp := toResponse(rec)
	return &resp, nil
}

// Subscribe обрабатывает GET /api/v1/users/{uid}/lifeTracker/state/subscribe.
// Сразу после подключения отправляет текущее состояние, затем событие
// на каждое изменение документа.
func (h *DocumentHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту
		h.logger.WarnContext(ctx, "websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// подписываемся до чтения документа, чтобы не пропустить запись между ними
	sub := h.hub.Subscribe(userID)
	defer sub.Close()

	logger := h.logger.With(slog.String("user_id", userID), slog.String("subscription_id", sub.ID))
	logger.InfoContext(ctx, "subscriber connected")

	initial, err := h.initialEvent(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read document for subscriber", slog.Any("error", err))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "internal server error"),
			time.Now().Add(writeWait))
		return
	}
	if err := writeEvent(conn, initial); err != nil {
		logger.DebugContext(ctx, "failed to send initial event", slog.Any("error", err))
		return
	}

	closed := readPump(conn)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case rec, ok := <-sub.C():
			if !ok {
				return
			}
			if err := writeEvent(conn, eventOf(rec)); err != nil {
				logger.DebugContext(ctx, "failed to send event", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logger.DebugContext(ctx, "ping failed", slog.Any("error", err))
				return
			}
		case <-closed:
			logger.InfoContext(ctx, "subscriber disconnected")
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *DocumentHandler) initialEvent(ctx context.Context, userID string) (api.DocumentEvent, error) {
	rec, err := h.storage.GetDocument(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return api.DocumentEvent{Exists: false}, nil
		}
		return api.DocumentEvent{}, err
	}
	return eventOf(rec), nil
}

// authorize сверяет uid из пути с владельцем токена
func (h *DocumentHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()

	tokenUserID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	userID := r.PathValue("uid")
	if userID != tokenUserID {
		h.logger.WarnContext(ctx, "document access denied",
			slog.String("user_id", tokenUserID),
			slog.String("requested_user_id", userID))
		sendError(h.logger, w, "access denied", http.StatusForbidden)
		return "", false
	}
	return userID, true
}

// readPump читает входящие фреймы, чтобы обрабатывать pong и close.
// Возвращённый канал закрывается, когда соединение закрыто.
func readPump(conn *websocket.Conn) <-chan struct{} {
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return closed
}

func writeEvent(conn *websocket.Conn, ev api.DocumentEvent) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(ev)
}

func eventOf(rec *models.Record) api.DocumentEvent {
	return api.DocumentEvent{
		UpdatedAt: rec.UpdatedAt,
		State:     rec.State,
		Exists:    true,
	}
}

func toResponse(rec *models.Record) api.DocumentResponse {
	return api.DocumentResponse{
		UpdatedAt: rec.UpdatedAt,
		State:     rec.State,
	}
}
