package sync

import (
	"context"
	"fmt"
	"log/slog"
	gosync "sync"

	"github.com/iudanet/lifetracker/internal/client/slices"
	"github.com/iudanet/lifetracker/internal/client/storage"
)

// Gate owns the engine lifecycle: at most one engine exists, bound to the
// currently signed-in identity. UI code writes through the gate.
type Gate struct {
	remote   RemoteChannel
	store    *slices.Store
	metadata storage.MetadataStorage
	logger   *slog.Logger
	engine   *Engine
	cfg      Config
	mu       gosync.Mutex
}

// NewGate creates a gate with no signed-in identity.
func NewGate(
	store *slices.Store,
	remote RemoteChannel,
	metadata storage.MetadataStorage,
	cfg Config,
	logger *slog.Logger,
) *Gate {
	return &Gate{
		store:    store,
		remote:   remote,
		metadata: metadata,
		cfg:      cfg,
		logger:   logger,
	}
}

// OnSessionChange reacts to sign-in, sign-out and account switches.
// A nil session stops the current engine. A session for a different user
// stops the current engine and starts a fresh one. The same user with a
// new token keeps the running engine.
func (g *Gate) OnSessionChange(ctx context.Context, session *Session) error {
	g.mu.Lock()
	if g.engine != nil {
		current := g.engine.Session()
		if session != nil && current.UserID == session.UserID && g.engine.State() == StateSubscribed {
			g.engine.SetAccessToken(session.AccessToken)
			g.mu.Unlock()
			return nil
		}
		g.engine.Stop()
		g.engine = nil
	}

	if session == nil {
		g.mu.Unlock()
		g.logger.Info("Signed out, sync disabled")
		return nil
	}

	engine := NewEngine(*session, g.remote, g.store, g.metadata, g.cfg, g.logger)
	g.engine = engine
	g.mu.Unlock()

	// pull идёт без блокировки шлюза: локальные записи не ждут сеть
	if err := engine.Start(ctx); err != nil {
		g.discard(engine)
		return fmt.Errorf("failed to start sync for %s: %w", session.UserID, err)
	}
	return nil
}

// discard останавливает движок, не дошедший до subscribed, если его ещё
// не заменила другая сессия. Записи дальше идут только в локальное хранилище.
func (g *Gate) discard(engine *Engine) {
	g.mu.Lock()
	if g.engine == engine {
		g.engine = nil
	}
	g.mu.Unlock()

	engine.Stop()
	g.logger.Warn("Sync engine failed to start, continuing offline")
}

// QueueWrite writes the slice to the local store and, when signed in,
// queues it for the next flush.
func (g *Gate) QueueWrite(ctx context.Context, key string, value any) error {
	g.mu.Lock()
	engine := g.engine
	g.mu.Unlock()

	if engine == nil {
		return g.store.Write(ctx, key, value)
	}
	return engine.Write(ctx, key, value)
}

// Remove deletes the slice locally. Merge writes cannot express deletion,
// so the remote value survives and returns on the next pull.
func (g *Gate) Remove(ctx context.Context, key string) error {
	return g.store.Remove(ctx, key)
}

// Flush forces the current engine to push buffered writes.
func (g *Gate) Flush(ctx context.Context) error {
	g.mu.Lock()
	engine := g.engine
	g.mu.Unlock()

	if engine == nil {
		return nil
	}
	return engine.Flush(ctx)
}

// Engine returns the running engine or nil.
func (g *Gate) Engine() *Engine {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine
}

// Close stops the current engine without flushing.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.engine != nil {
		g.engine.Stop()
		g.engine = nil
	}
}
