package sync

import (
	gosync "sync"

	"github.com/iudanet/lifetracker/internal/models"
)

// mailbox хранит только последнее уведомление: промежуточные состояния
// перезаписываются и никогда не применяются
type mailbox struct {
	signal chan struct{}
	rec    *models.Record
	mu     gosync.Mutex
	full   bool
}

func newMailbox() *mailbox {
	return &mailbox{signal: make(chan struct{}, 1)}
}

// put replaces any undelivered record with rec
func (m *mailbox) put(rec *models.Record) {
	m.mu.Lock()
	m.rec = rec
	m.full = true
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// take returns the latest record and empties the mailbox
func (m *mailbox) take() (*models.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.full {
		return nil, false
	}
	rec := m.rec
	m.rec = nil
	m.full = false
	return rec, true
}
