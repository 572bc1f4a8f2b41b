package remote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	gosync "sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/lifetracker/internal/client/api"
	"github.com/iudanet/lifetracker/internal/client/sync"
	"github.com/iudanet/lifetracker/internal/models"
	pkgapi "github.com/iudanet/lifetracker/pkg/api"
)

var testOptions = Options{
	MaxRetries:      2,
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
}

var testSession = sync.Session{UserID: "user-1", AccessToken: "access"}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestChannel_Read(t *testing.T) {
	updated := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock := &DocumentAPIMock{
		GetDocumentFunc: func(ctx context.Context, accessToken, userID string) (*pkgapi.DocumentResponse, error) {
			assert.Equal(t, "access", accessToken)
			assert.Equal(t, "user-1", userID)
			return &pkgapi.DocumentResponse{UpdatedAt: updated, State: map[string]any{"theme": "dark"}}, nil
		},
	}
	ch := NewChannel(mock, testOptions, setupTestLogger())

	rec, err := ch.Read(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, models.Document{"theme": "dark"}, rec.State)
	assert.Equal(t, updated, rec.UpdatedAt)
}

func TestChannel_Read_NotFound(t *testing.T) {
	mock := &DocumentAPIMock{
		GetDocumentFunc: func(ctx context.Context, accessToken, userID string) (*pkgapi.DocumentResponse, error) {
			return nil, &api.StatusError{Code: http.StatusNotFound, Message: "document not found"}
		},
	}
	ch := NewChannel(mock, testOptions, setupTestLogger())

	rec, err := ch.Read(context.Background(), testSession)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, sync.ErrRecordNotFound)
	assert.Len(t, mock.GetDocumentCalls(), 1, "404 is not retried")
}

func TestChannel_Read_RetriesTransientErrors(t *testing.T) {
	attempts := 0
	mock := &DocumentAPIMock{
		GetDocumentFunc: func(ctx context.Context, accessToken, userID string) (*pkgapi.DocumentResponse, error) {
			attempts++
			if attempts < 3 {
				return nil, &api.StatusError{Code: http.StatusServiceUnavailable}
			}
			return &pkgapi.DocumentResponse{State: map[string]any{}}, nil
		},
	}
	ch := NewChannel(mock, testOptions, setupTestLogger())

	_, err := ch.Read(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestChannel_Read_GivesUpAfterMaxRetries(t *testing.T) {
	mock := &DocumentAPIMock{
		GetDocumentFunc: func(ctx context.Context, accessToken, userID string) (*pkgapi.DocumentResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	ch := NewChannel(mock, testOptions, setupTestLogger())

	_, err := ch.Read(context.Background(), testSession)
	assert.ErrorContains(t, err, "connection refused")
	assert.Len(t, mock.GetDocumentCalls(), 3)
}

func TestChannel_Write(t *testing.T) {
	mock := &DocumentAPIMock{
		MergeDocumentFunc: func(ctx context.Context, accessToken, userID string, req pkgapi.MergeRequest) (*pkgapi.DocumentResponse, error) {
			return &pkgapi.DocumentResponse{State: req.State}, nil
		},
	}
	ch := NewChannel(mock, testOptions, setupTestLogger())

	err := ch.Write(context.Background(), testSession, models.Record{
		State:     models.Document{"weightGoal": "180"},
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	calls := mock.MergeDocumentCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"weightGoal": "180"}, calls[0].Req.State)
}

func TestChannel_Write_PermanentError(t *testing.T) {
	mock := &DocumentAPIMock{
		MergeDocumentFunc: func(ctx context.Context, accessToken, userID string, req pkgapi.MergeRequest) (*pkgapi.DocumentResponse, error) {
			return nil, &api.StatusError{Code: http.StatusForbidden, Message: "access denied"}
		},
	}
	ch := NewChannel(mock, testOptions, setupTestLogger())

	err := ch.Write(context.Background(), testSession, models.Record{State: models.Document{}})
	assert.ErrorContains(t, err, "access denied")
	assert.Len(t, mock.MergeDocumentCalls(), 1)
}

func TestChannel_Write_Unauthorized(t *testing.T) {
	mock := &DocumentAPIMock{
		MergeDocumentFunc: func(ctx context.Context, accessToken, userID string, req pkgapi.MergeRequest) (*pkgapi.DocumentResponse, error) {
			return nil, &api.StatusError{Code: http.StatusUnauthorized, Message: "invalid token"}
		},
	}
	ch := NewChannel(mock, testOptions, setupTestLogger())

	err := ch.Write(context.Background(), testSession, models.Record{State: models.Document{}})
	assert.ErrorIs(t, err, sync.ErrUnauthorized)
	assert.ErrorContains(t, err, "invalid token")
	assert.Len(t, mock.MergeDocumentCalls(), 1)
}

func TestChannel_Write_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mock := &DocumentAPIMock{
		MergeDocumentFunc: func(ctx context.Context, accessToken, userID string, req pkgapi.MergeRequest) (*pkgapi.DocumentResponse, error) {
			cancel()
			return nil, errors.New("timeout")
		},
	}
	ch := NewChannel(mock, Options{MaxRetries: 10, InitialInterval: 50 * time.Millisecond}, setupTestLogger())

	err := ch.Write(ctx, testSession, models.Record{State: models.Document{}})
	assert.Error(t, err)
	assert.Len(t, mock.MergeDocumentCalls(), 1)
}

// eventServer отдаёт подписчику события из канала
type eventServer struct {
	events   chan pkgapi.DocumentEvent
	server   *httptest.Server
	token    string
	conns    int
	upgrader websocket.Upgrader
	mu       gosync.Mutex
}

func newEventServer(t *testing.T) *eventServer {
	t.Helper()
	s := &eventServer{events: make(chan pkgapi.DocumentEvent, 16)}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/subscribe") {
			http.NotFound(w, r)
			return
		}
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()

		s.mu.Lock()
		s.conns++
		events := s.events
		s.mu.Unlock()

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					// имитируем обрыв соединения
					return
				}
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-r.Context().Done():
				return
			}
		}
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *eventServer) connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// accept оставляет в силе только указанный токен
func (s *eventServer) accept(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// drop рвёт текущие соединения; новые получают свежий канал событий
func (s *eventServer) drop() {
	s.mu.Lock()
	old := s.events
	s.events = make(chan pkgapi.DocumentEvent, 16)
	s.mu.Unlock()
	close(old)
}

func (s *eventServer) send(ev pkgapi.DocumentEvent) {
	s.mu.Lock()
	events := s.events
	s.mu.Unlock()
	events <- ev
}

type recorder struct {
	got []*models.Record
	mu  gosync.Mutex
}

func (r *recorder) onChange(rec *models.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, rec)
}

func (r *recorder) records() []*models.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Record(nil), r.got...)
}

func TestChannel_Subscribe(t *testing.T) {
	srv := newEventServer(t)
	ch := NewChannel(api.NewClient(srv.server.URL), testOptions, setupTestLogger())
	rec := &recorder{}

	sub, err := ch.Subscribe(context.Background(), testSession, rec.onChange)
	require.NoError(t, err)

	srv.events <- pkgapi.DocumentEvent{Exists: false}
	srv.events <- pkgapi.DocumentEvent{Exists: true, State: map[string]any{"theme": "dark"}}

	assert.Eventually(t, func() bool { return len(rec.records()) == 2 }, time.Second, 5*time.Millisecond)
	got := rec.records()
	assert.Nil(t, got[0])
	require.NotNil(t, got[1])
	assert.Equal(t, models.Document{"theme": "dark"}, got[1].State)

	require.NoError(t, sub.Close())
	assert.NoError(t, sub.Close(), "second close is a no-op")
}

func TestChannel_Subscribe_Reconnects(t *testing.T) {
	srv := newEventServer(t)
	ch := NewChannel(api.NewClient(srv.server.URL), testOptions, setupTestLogger())
	rec := &recorder{}

	sub, err := ch.Subscribe(context.Background(), testSession, rec.onChange)
	require.NoError(t, err)
	defer func() { _ = sub.Close() }()

	assert.Eventually(t, func() bool { return srv.connections() == 1 }, time.Second, 5*time.Millisecond)

	// сервер рвёт соединение, клиент переподключается
	srv.drop()

	assert.Eventually(t, func() bool { return srv.connections() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestChannel_Subscribe_RenewsTokenOnReconnect(t *testing.T) {
	srv := newEventServer(t)
	srv.accept("access")
	ch := NewChannel(api.NewClient(srv.server.URL), testOptions, setupTestLogger())
	rec := &recorder{}

	var mu gosync.Mutex
	var rejected []string
	session := testSession
	session.Renew = func(ctx context.Context, token string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		rejected = append(rejected, token)
		return "access-2", nil
	}

	sub, err := ch.Subscribe(context.Background(), session, rec.onChange)
	require.NoError(t, err)
	defer func() { _ = sub.Close() }()
	assert.Eventually(t, func() bool { return srv.connections() == 1 }, time.Second, 5*time.Millisecond)

	// токен истёк посреди сессии: соединение рвётся, старый токен больше не принимается
	srv.accept("access-2")
	srv.drop()

	assert.Eventually(t, func() bool { return srv.connections() == 2 }, 2*time.Second, 5*time.Millisecond)
	srv.send(pkgapi.DocumentEvent{Exists: true, State: map[string]any{"theme": "dark"}})
	assert.Eventually(t, func() bool { return len(rec.records()) == 1 }, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"access"}, rejected)
}

func TestChannel_Subscribe_StopsWhenRenewalFails(t *testing.T) {
	srv := newEventServer(t)
	srv.accept("access")
	ch := NewChannel(api.NewClient(srv.server.URL), testOptions, setupTestLogger())

	session := testSession
	session.Renew = func(ctx context.Context, token string) (string, error) {
		return "", errors.New("refresh token revoked")
	}
	sub, err := ch.Subscribe(context.Background(), session, func(*models.Record) {})
	require.NoError(t, err)

	srv.accept("someone-else")
	srv.drop()

	done := sub.(*subscription).done
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription kept reconnecting with a rejected token")
	}
	assert.Equal(t, 1, srv.connections())
	assert.NoError(t, sub.Close())
}

func TestChannel_Subscribe_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	ch := NewChannel(api.NewClient(server.URL), testOptions, setupTestLogger())
	sub, err := ch.Subscribe(context.Background(), testSession, func(*models.Record) {})
	assert.Nil(t, sub)
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
}
