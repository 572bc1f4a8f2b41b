// Package hub раздаёт изменения документа всем подпискам его владельца.
package hub

import (
	"crypto/rand"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zeebo/xxh3"

	"github.com/iudanet/lifetracker/internal/models"
)

var (
	subscribersGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lifetracker_server_subscribers",
			Help: "Open document subscriptions",
		},
	)
	publishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifetracker_server_events_published_total",
			Help: "The total number of document change events delivered to subscribers",
		},
	)
)

// writerStripes - число блокировок записи; пользователи делят их по хешу id
const writerStripes = 64

// Hub fans document changes out to per-user subscribers.
type Hub struct {
	logger  *slog.Logger
	subs    map[string]map[string]*Subscription // userID -> subscription ID -> sub
	entropy *ulid.MonotonicEntropy
	writers [writerStripes]sync.Mutex
	mu      sync.Mutex
}

// New создает пустой hub
func New(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		subs:    make(map[string]map[string]*Subscription),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Subscription получает последнее состояние документа своего пользователя.
// Медленный подписчик теряет промежуточные состояния, но не последнее.
type Subscription struct {
	hub    *Hub
	ch     chan *models.Record
	ID     string
	UserID string
	once   sync.Once
}

// C returns the channel of document changes. It is closed by Close.
func (s *Subscription) C() <-chan *models.Record {
	return s.ch
}

// Close отписывает подписчика; повторный вызов ничего не делает
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Subscribe registers a new subscriber for userID's document.
func (h *Hub) Subscribe(userID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscription{
		hub:    h,
		ch:     make(chan *models.Record, 1),
		ID:     ulid.MustNew(ulid.Timestamp(time.Now()), h.entropy).String(),
		UserID: userID,
	}

	byUser, ok := h.subs[userID]
	if !ok {
		byUser = make(map[string]*Subscription)
		h.subs[userID] = byUser
	}
	byUser[sub.ID] = sub
	subscribersGauge.Inc()

	h.logger.Debug("subscriber added", slog.String("user_id", userID), slog.String("subscription_id", sub.ID))
	return sub
}

// Commit runs write under userID's writer lock and publishes the resulting
// record before the lock is released. Subscribers therefore see changes in
// the order they were committed. Nothing is published when write fails.
func (h *Hub) Commit(userID string, write func() (*models.Record, error)) (*models.Record, error) {
	mu := &h.writers[xxh3.HashString(userID)%writerStripes]
	mu.Lock()
	defer mu.Unlock()

	rec, err := write()
	if err != nil {
		return nil, err
	}
	h.Publish(userID, rec)
	return rec, nil
}

// Publish delivers rec to every subscriber of userID without blocking.
// Concurrent writers of one user must go through Commit.
func (h *Hub) Publish(userID string, rec *models.Record) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs[userID] {
		// буфер на одно значение: вытесняем устаревшее состояние
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- rec
		publishedTotal.Inc()
	}
}

// Subscribers returns the number of open subscriptions for userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	byUser := h.subs[sub.UserID]
	if _, ok := byUser[sub.ID]; !ok {
		return
	}
	delete(byUser, sub.ID)
	if len(byUser) == 0 {
		delete(h.subs, sub.UserID)
	}
	close(sub.ch)
	subscribersGauge.Dec()

	h.logger.Debug("subscriber removed", slog.String("user_id", sub.UserID), slog.String("subscription_id", sub.ID))
}
