// Package sync реализует движок синхронизации локальных слайсов с удалённым
// документом пользователя: начальный pull, отложенные (debounce) merge-записи
// и живую подписку с подавлением эха собственных записей.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/iudanet/lifetracker/internal/client/slices"
	"github.com/iudanet/lifetracker/internal/client/storage"
	"github.com/iudanet/lifetracker/internal/codec"
	"github.com/iudanet/lifetracker/internal/models"
)

// DefaultDebounce is the quiet period after the last queued write before
// the buffer is flushed.
const DefaultDebounce = 300 * time.Millisecond

// Engine states
const (
	StateDisabled   = "disabled"
	StatePulling    = "pulling"
	StateSubscribed = "subscribed"
)

// Engine events
const (
	EventSignIn  = "sign_in"
	EventPulled  = "pulled"
	EventSignOut = "sign_out"
)

var (
	// ErrEngineStopped возвращается при попытке повторного запуска движка
	ErrEngineStopped = errors.New("sync engine stopped")

	errCannotRenew = errors.New("session cannot be renewed")
)

// Config holds engine tuning.
type Config struct {
	// Now is the clock used for Record.UpdatedAt; defaults to time.Now
	Now      func() time.Time
	Debounce time.Duration
}

// Engine synchronizes the local slice store of one signed-in user with the
// user's remote record. Engines are single-use: Stop is final.
type Engine struct {
	remote   RemoteChannel
	store    *slices.Store
	metadata storage.MetadataStorage
	logger   *slog.Logger
	machine  *fsm.FSM
	now      func() time.Time
	inbox    *mailbox

	// guarded by mu
	runCtx      context.Context
	cancel      context.CancelFunc
	sub         Subscription
	timer       *time.Timer
	pending     map[string]any
	session     Session
	fingerprint codec.Fingerprint
	timerGen    uint64
	stopped     bool

	debounce time.Duration
	mu       gosync.Mutex
	// writeMu сериализует flush: записи уходят на сервер в порядке подготовки
	writeMu gosync.Mutex
	renewMu gosync.Mutex
}

// NewEngine creates a disabled engine for session. metadata may be nil.
func NewEngine(
	session Session,
	remote RemoteChannel,
	store *slices.Store,
	metadata storage.MetadataStorage,
	cfg Config,
	logger *slog.Logger,
) *Engine {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	e := &Engine{
		session:  session,
		remote:   remote,
		store:    store,
		metadata: metadata,
		logger:   logger.With("user_id", session.UserID),
		debounce: cfg.Debounce,
		now:      cfg.Now,
		pending:  make(map[string]any),
		inbox:    newMailbox(),
	}

	e.machine = fsm.NewFSM(
		StateDisabled,
		fsm.Events{
			{Name: EventSignIn, Src: []string{StateDisabled}, Dst: StatePulling},
			{Name: EventPulled, Src: []string{StatePulling}, Dst: StateSubscribed},
			{Name: EventSignOut, Src: []string{StatePulling, StateSubscribed}, Dst: StateDisabled},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				e.logger.Debug("Sync state changed", "from", ev.Src, "to", ev.Dst, "event", ev.Event)
			},
		},
	)

	return e
}

// State returns the current engine state.
func (e *Engine) State() string {
	return e.machine.Current()
}

// Session returns the identity the engine was created for.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// SetAccessToken replaces the token used for remote calls, e.g. after refresh.
func (e *Engine) SetAccessToken(token string) {
	e.mu.Lock()
	e.session.AccessToken = token
	e.mu.Unlock()
}

// Start pulls the remote record, bootstraps it from the local snapshot
// when absent, and opens the live subscription. Background work lives
// until Stop or until ctx is cancelled.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return ErrEngineStopped
	}
	if err := e.machine.Event(ctx, EventSignIn); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to start sync: %w", err)
	}
	e.runCtx, e.cancel = context.WithCancel(ctx)
	runCtx := e.runCtx
	e.mu.Unlock()

	// 1. Pull
	pullTotal.Inc()
	var rec *models.Record
	err := e.withSession(runCtx, func(session Session) error {
		var rerr error
		rec, rerr = e.remote.Read(runCtx, session)
		return rerr
	})
	exists := true
	if err != nil {
		if !errors.Is(err, ErrRecordNotFound) {
			// локальные данные не трогаем; движок без pull не переходит в
			// subscribed, владелец должен его остановить
			e.logger.Error("Failed to pull remote record", "error", err)
			return fmt.Errorf("failed to pull remote record: %w", err)
		}
		exists = false
	}

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return ErrEngineStopped
	}
	if exists && rec != nil {
		if err := e.applyLocked(runCtx, rec.State); err != nil {
			e.mu.Unlock()
			e.logger.Error("Failed to apply pulled record", "error", err)
			return fmt.Errorf("failed to apply pulled record: %w", err)
		}
		e.saveLastSync(runCtx)
	}
	if err := e.machine.Event(runCtx, EventPulled); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to enter subscribed state: %w", err)
	}
	e.mu.Unlock()

	// 2. Bootstrap: у пользователя ещё нет записи, публикуем локальный снимок
	if !exists {
		e.logger.Info("Remote record absent, pushing local snapshot")
		bootstrapTotal.Inc()
		if err := e.flush(runCtx, true); err != nil {
			e.logger.Error("Bootstrap push failed", "error", err)
		}
	}

	// 3. Subscribe
	go e.applyLoop(runCtx)

	var sub Subscription
	err = e.withSession(runCtx, func(session Session) error {
		// переподключения подписки обновляют токен через движок
		session.Renew = e.renew
		var serr error
		sub, serr = e.remote.Subscribe(runCtx, session, e.inbox.put)
		return serr
	})
	if err != nil {
		e.logger.Error("Failed to subscribe to remote record", "error", err)
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		_ = sub.Close()
		return ErrEngineStopped
	}
	e.sub = sub
	// записи, поставленные в очередь во время pull
	if len(e.pending) > 0 {
		e.armTimerLocked()
	}
	e.mu.Unlock()

	e.logger.Info("Sync started", "bootstrap", !exists)
	return nil
}

// QueueWrite records a slice value for the next flush and restarts the
// debounce timer. The value is copied. Writes queued while the engine is
// disabled are ignored.
func (e *Engine) QueueWrite(key string, value any) error {
	normalized, err := normalizeWrite(key, value)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.queueLocked(key, normalized)
	return nil
}

// Write stores the slice locally and queues it in one step under the
// engine lock, so a remote notification cannot land between the two.
// A stopped engine still writes locally.
func (e *Engine) Write(ctx context.Context, key string, value any) error {
	normalized, err := normalizeWrite(key, value)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Write(ctx, key, value); err != nil {
		return err
	}
	e.queueLocked(key, normalized)
	return nil
}

func normalizeWrite(key string, value any) (any, error) {
	if !models.IsKnownSlice(key) {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownSlice, key)
	}
	normalized, err := codec.Normalize(value)
	if err != nil {
		return nil, fmt.Errorf("failed to copy value for %s: %w", key, err)
	}
	return normalized, nil
}

func (e *Engine) queueLocked(key string, normalized any) {
	if e.stopped || e.machine.Current() == StateDisabled {
		return
	}

	e.pending[key] = normalized
	pendingWrites.Set(float64(len(e.pending)))

	// во время pull таймер не взводим: Start взведёт его после подписки
	if e.machine.Current() == StateSubscribed {
		e.armTimerLocked()
	}
}

// Flush pushes buffered writes immediately. It is a no-op when the buffer
// is empty or the engine is not subscribed. A failed write is reported
// and not retried; the buffer is not restored.
func (e *Engine) Flush(ctx context.Context) error {
	return e.flush(ctx, false)
}

// Stop cancels the subscription and the pending timer and discards
// buffered writes. The local store is left as is.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	if e.machine.Can(EventSignOut) {
		if err := e.machine.Event(context.Background(), EventSignOut); err != nil {
			e.logger.Warn("Sign-out transition failed", "error", err)
		}
	}
	e.stopTimerLocked()
	if len(e.pending) > 0 {
		e.logger.Warn("Discarding unflushed writes", "count", len(e.pending))
	}
	e.pending = make(map[string]any)
	pendingWrites.Set(0)
	e.fingerprint = codec.Fingerprint{}
	sub := e.sub
	e.sub = nil
	if e.cancel != nil {
		e.cancel()
	}
	e.mu.Unlock()

	if sub != nil {
		if err := sub.Close(); err != nil {
			e.logger.Warn("Failed to close subscription", "error", err)
		}
	}
	e.logger.Info("Sync stopped")
}

// flush готовит документ под mu и отправляет его без mu.
// force публикует снимок даже при пустом буфере (bootstrap).
func (e *Engine) flush(ctx context.Context, force bool) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.Lock()
	if e.stopped || e.machine.Current() != StateSubscribed || (!force && len(e.pending) == 0) {
		e.mu.Unlock()
		return nil
	}
	e.stopTimerLocked()

	doc, err := e.store.BuildSnapshot(ctx)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to build snapshot: %w", err)
	}
	// буфер поверх снимка: Gate пишет локально раньше, но значения буфера
	// авторитетны для этого flush
	for k, v := range e.pending {
		doc[k] = v
	}
	e.pending = make(map[string]any)
	pendingWrites.Set(0)

	fp, err := codec.FingerprintOf(doc)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to fingerprint document: %w", err)
	}
	// отпечаток выставляется до записи: уведомление может прийти раньше ответа
	e.fingerprint = fp
	e.mu.Unlock()

	flushTotal.Inc()
	rec := models.Record{State: doc, UpdatedAt: e.now().UTC()}
	err = e.withSession(ctx, func(session Session) error {
		return e.remote.Write(ctx, session, rec)
	})
	if err != nil {
		flushFailedTotal.Inc()
		e.logger.Error("Remote write failed", "error", err, "keys", len(doc))
		return fmt.Errorf("failed to write remote record: %w", err)
	}

	e.logger.Debug("Flushed document", "keys", len(doc), "fingerprint", fp.String())
	e.saveLastSync(ctx)
	return nil
}

// applyLoop применяет только последнее уведомление из почтового ящика
func (e *Engine) applyLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.inbox.signal:
			rec, ok := e.inbox.take()
			if !ok {
				continue
			}
			e.applyRemote(ctx, rec)
		}
	}
}

// applyRemote handles one change notification.
func (e *Engine) applyRemote(ctx context.Context, rec *models.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped || e.machine.Current() != StateSubscribed {
		return
	}
	if rec == nil {
		// документ отсутствует: нечего применять
		return
	}

	fp, err := codec.FingerprintOf(rec.State)
	if err != nil {
		e.logger.Error("Failed to fingerprint remote record", "error", err)
		return
	}
	if fp.Equal(e.fingerprint) {
		echoSuppressedTotal.Inc()
		e.logger.Debug("Ignoring echo of own write", "fingerprint", fp.String())
		return
	}

	if err := e.applyLocked(ctx, rec.State); err != nil {
		e.logger.Error("Failed to apply remote record", "error", err)
		return
	}
	remoteAppliedTotal.Inc()
	e.saveLastSync(ctx)
}

// applyLocked записывает удалённое состояние в локальное хранилище и
// запоминает его отпечаток. Ключи с неотправленными локальными записями
// пропускаются: ближайший flush перезапишет их на сервере.
func (e *Engine) applyLocked(ctx context.Context, state models.Document) error {
	fp, err := codec.FingerprintOf(state)
	if err != nil {
		return fmt.Errorf("failed to fingerprint state: %w", err)
	}

	doc := state
	if len(e.pending) > 0 {
		doc = state.Clone()
		for k := range e.pending {
			delete(doc, k)
		}
	}

	written, err := e.store.ApplyDocument(ctx, doc)
	if err != nil {
		return err
	}
	e.fingerprint = fp
	e.logger.Debug("Applied remote state", "slices", len(written), "fingerprint", fp.String())
	return nil
}

// withSession вызывает call с текущим токеном. Если сервер отверг токен,
// он обновляется и вызов повторяется один раз.
func (e *Engine) withSession(ctx context.Context, call func(Session) error) error {
	session := e.Session()
	err := call(session)
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}

	token, renewErr := e.renew(ctx, session.AccessToken)
	if renewErr != nil {
		return errors.Join(err, renewErr)
	}
	session.AccessToken = token
	return call(session)
}

// renew заменяет отвергнутый токен. Параллельные вызовы с одним и тем же
// rejected обновляют токен один раз.
func (e *Engine) renew(ctx context.Context, rejected string) (string, error) {
	e.renewMu.Lock()
	defer e.renewMu.Unlock()

	session := e.Session()
	if session.AccessToken != rejected {
		return session.AccessToken, nil
	}
	if session.Renew == nil {
		return "", errCannotRenew
	}

	token, err := session.Renew(ctx, rejected)
	if err != nil {
		e.logger.Error("Failed to renew access token", "error", err)
		return "", fmt.Errorf("failed to renew access token: %w", err)
	}
	e.SetAccessToken(token)
	tokenRenewedTotal.Inc()
	e.logger.Info("Access token renewed")
	return token, nil
}

func (e *Engine) armTimerLocked() {
	e.stopTimerLocked()
	e.timerGen++
	gen := e.timerGen
	e.timer = time.AfterFunc(e.debounce, func() { e.onTimer(gen) })
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	// устаревший таймер, уже запущенный рантаймом, станет no-op
	e.timerGen++
}

func (e *Engine) onTimer(gen uint64) {
	e.mu.Lock()
	if gen != e.timerGen || e.stopped {
		e.mu.Unlock()
		return
	}
	ctx := e.runCtx
	e.mu.Unlock()

	if err := e.flush(ctx, false); err != nil {
		// ошибка уже залогирована, повтора нет
		return
	}
}

func (e *Engine) saveLastSync(ctx context.Context) {
	if e.metadata == nil {
		return
	}
	if err := e.metadata.SaveLastSyncTimestamp(ctx, e.now().Unix()); err != nil {
		e.logger.Warn("Failed to save last sync timestamp", "error", err)
	}
}
