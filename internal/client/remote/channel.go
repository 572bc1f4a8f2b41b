// Package remote связывает движок синхронизации с сервером: точечное
// чтение, merge-запись и websocket-подписка с повторами через backoff.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	gosync "sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iudanet/lifetracker/internal/client/api"
	"github.com/iudanet/lifetracker/internal/client/sync"
	"github.com/iudanet/lifetracker/internal/models"
	pkgapi "github.com/iudanet/lifetracker/pkg/api"
)

//go:generate moq -out documentapi_mock.go . DocumentAPI

// DocumentAPI - часть HTTP клиента, нужная каналу
type DocumentAPI interface {
	GetDocument(ctx context.Context, accessToken, userID string) (*pkgapi.DocumentResponse, error)
	MergeDocument(ctx context.Context, accessToken, userID string, req pkgapi.MergeRequest) (*pkgapi.DocumentResponse, error)
	Subscribe(ctx context.Context, accessToken, userID string) (*api.Stream, error)
}

// Options configures retries.
type Options struct {
	// MaxRetries - число повторов после первой попытки
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultOptions: три попытки с экспоненциальной задержкой
var DefaultOptions = Options{
	MaxRetries:      2,
	InitialInterval: 200 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

// Channel implements sync.RemoteChannel over the HTTP API.
type Channel struct {
	api    DocumentAPI
	logger *slog.Logger
	opts   Options
}

var _ sync.RemoteChannel = (*Channel)(nil)

// NewChannel creates a remote channel.
func NewChannel(client DocumentAPI, opts Options, logger *slog.Logger) *Channel {
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = DefaultOptions.InitialInterval
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = DefaultOptions.MaxInterval
	}
	return &Channel{api: client, opts: opts, logger: logger}
}

// Read returns the user's record or sync.ErrRecordNotFound.
func (c *Channel) Read(ctx context.Context, session sync.Session) (*models.Record, error) {
	resp, err := backoff.RetryWithData(func() (*pkgapi.DocumentResponse, error) {
		resp, err := c.api.GetDocument(ctx, session.AccessToken, session.UserID)
		return resp, classify(err)
	}, c.policy(ctx))
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, sync.ErrRecordNotFound
		}
		return nil, err
	}
	return &models.Record{UpdatedAt: resp.UpdatedAt, State: models.Document(resp.State)}, nil
}

// Write sends a merge write. UpdatedAt is assigned by the server.
func (c *Channel) Write(ctx context.Context, session sync.Session, rec models.Record) error {
	req := pkgapi.MergeRequest{State: rec.State}
	return backoff.Retry(func() error {
		_, err := c.api.MergeDocument(ctx, session.AccessToken, session.UserID, req)
		return classify(err)
	}, c.policy(ctx))
}

// Subscribe opens the change stream. The first connection is made
// synchronously; after a dropped connection the channel reconnects with
// backoff until the subscription is closed. A reconnect rejected with 401
// renews the token through session.Renew once per rejected token.
func (c *Channel) Subscribe(ctx context.Context, session sync.Session, onChange func(*models.Record)) (sync.Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)

	stream, err := backoff.RetryWithData(func() (*api.Stream, error) {
		stream, err := c.api.Subscribe(subCtx, session.AccessToken, session.UserID)
		return stream, classify(err)
	}, c.policy(subCtx))
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &subscription{cancel: cancel, done: make(chan struct{})}
	sub.setStream(stream)

	go c.run(subCtx, sub, session, onChange)
	return sub, nil
}

func (c *Channel) run(ctx context.Context, sub *subscription, session sync.Session, onChange func(*models.Record)) {
	defer close(sub.done)

	reconnect := backoff.NewExponentialBackOff()
	reconnect.InitialInterval = c.opts.InitialInterval
	reconnect.MaxInterval = c.opts.MaxInterval
	reconnect.MaxElapsedTime = 0
	renewed := false

	for {
		stream := sub.current()
		if stream != nil {
			c.consume(stream, onChange)
			_ = stream.Close()
			sub.setStream(nil)
		}
		if ctx.Err() != nil {
			return
		}

		wait := reconnect.NextBackOff()
		c.logger.Warn("Subscription lost, reconnecting", "after", wait)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		next, err := c.api.Subscribe(ctx, session.AccessToken, session.UserID)
		if err != nil {
			var statusErr *api.StatusError
			if !errors.As(err, &statusErr) || statusErr.Temporary() {
				c.logger.Warn("Failed to resubscribe", "error", err)
				continue
			}
			if statusErr.Code == http.StatusUnauthorized && session.Renew != nil && !renewed {
				token, renewErr := session.Renew(ctx, session.AccessToken)
				if renewErr == nil {
					session.AccessToken = token
					renewed = true
					continue
				}
				err = renewErr
			}
			// токен отозван или доступ запрещён: повторять бессмысленно
			c.logger.Error("Subscription closed", "error", err)
			return
		}
		if !sub.setStream(next) {
			_ = next.Close()
			return
		}
		reconnect.Reset()
		renewed = false
	}
}

func (c *Channel) consume(stream *api.Stream, onChange func(*models.Record)) {
	for {
		ev, err := stream.Next()
		if err != nil {
			c.logger.Debug("Subscription stream ended", "error", err)
			return
		}
		if !ev.Exists {
			onChange(nil)
			continue
		}
		onChange(&models.Record{UpdatedAt: ev.UpdatedAt, State: models.Document(ev.State)})
	}
}

func (c *Channel) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.opts.InitialInterval
	b.MaxInterval = c.opts.MaxInterval
	return backoff.WithContext(backoff.WithMaxRetries(b, c.opts.MaxRetries), ctx)
}

// classify помечает ошибки, которые не имеет смысла повторять
func classify(err error) error {
	if err == nil {
		return nil
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && !statusErr.Temporary() {
		if statusErr.Code == http.StatusUnauthorized {
			err = fmt.Errorf("%w: %w", sync.ErrUnauthorized, err)
		}
		return backoff.Permanent(err)
	}
	return err
}

type subscription struct {
	stream *api.Stream
	cancel context.CancelFunc
	done   chan struct{}
	mu     gosync.Mutex
	closed bool
}

// setStream возвращает false, если подписка уже закрыта
func (s *subscription) setStream(stream *api.Stream) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed && stream != nil {
		return false
	}
	s.stream = stream
	return true
}

func (s *subscription) current() *api.Stream {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream
}

// Close stops the subscription and waits for the reader to exit.
func (s *subscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	stream := s.stream
	s.mu.Unlock()

	s.cancel()
	var err error
	if stream != nil {
		err = stream.Close()
	}
	<-s.done
	if err != nil {
		return fmt.Errorf("failed to close subscription: %w", err)
	}
	return nil
}
